package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ppactl",
	Short: "Portal Pedagógico Angola server and administration tool",
	Long: `Run and administer the Portal Pedagógico Angola: the HTTP server,
database migrations, the curriculum tree, the document library and the
maintenance jobs.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
