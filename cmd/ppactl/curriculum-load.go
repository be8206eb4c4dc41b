package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/curriculum"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// curriculumLoadCmd represents the curriculum load command
var curriculumLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Replace the curriculum tree with a YAML file",
	Long: `Replace the stored curriculum tree with the contents of a YAML file.

Without a file argument the curriculum embedded in the binary is loaded,
which restores the default tree.

Example:
  ppactl curriculum load curriculo.yml
  ppactl curriculum load`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		st, err := curriculumStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var n int
		if len(args) == 0 {
			n, err = loadDefaultCurriculum(st)
		} else {
			n, err = loadCurriculumFile(st, args[0])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load curriculum: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d curriculum entries\n", n)
	},
}

func init() {
	curriculumCmd.AddCommand(curriculumLoadCmd)
}

func loadDefaultCurriculum(st store.CurriculumStore) (int, error) {
	entries, err := curriculum.Default()
	if err != nil {
		return 0, err
	}
	if err := st.ReplaceAll(entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func loadCurriculumFile(st store.CurriculumStore, filename string) (int, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return curriculum.Load(st, data)
}
