package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/library"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the document library",
	Long:  `Manage the official document library used as context for lesson plans.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'library' requires a subcommand (init, ls)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// libraryInitCmd represents the library init command
var libraryInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the canonical library folders",
	Long: `Create the class folders and the document centre categories, and
remove legacy folders. Running it again changes nothing.

Example:
  ppactl library init`,
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := configuredLibrary()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := library.Init(context.Background(), lib); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialise library: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Library ready (%d folders)\n", len(library.CanonicalFolders()))
	},
}

// libraryListCmd represents the library ls command
var libraryListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the library files",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := configuredLibrary()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		tree, err := lib.Tree(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list library: %v\n", err)
			os.Exit(1)
		}
		for _, f := range library.Files(tree) {
			fmt.Println(f.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryInitCmd)
	libraryCmd.AddCommand(libraryListCmd)
}

func configuredLibrary() (library.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openLibrary(context.Background(), cfg)
}
