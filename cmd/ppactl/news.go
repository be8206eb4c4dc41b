package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newsCmd represents the news command
var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Manage the news feed",
	Long:  `Manage the news feed shown on the teachers' dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'news' requires a subcommand (sync)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
}
