package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// curriculumWatchCmd represents the curriculum watch command
var curriculumWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a YAML file and reload the curriculum when it changes",
	Long: `Watch a curriculum YAML file and replace the stored tree every time the
file is written. The file is loaded once on start.

Editors often save by renaming a temporary file over the original, so the
directory holding the file is watched rather than the file itself.

Example:
  ppactl curriculum watch /etc/ppa/curriculo.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := curriculumStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := watchCurriculum(st, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch curriculum: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	curriculumCmd.AddCommand(curriculumWatchCmd)
}

func watchCurriculum(st store.CurriculumStore, filename string) error {
	filename, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	reload := func() {
		n, err := loadCurriculumFile(st, filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s] Error loading curriculum: %v\n", time.Now().Format(time.RFC3339), err)
			return
		}
		fmt.Printf("[%s] Loaded %d curriculum entries from %s\n", time.Now().Format(time.RFC3339), n, filename)
	}
	reload()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for curriculum changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				reload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
