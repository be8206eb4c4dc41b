package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/curriculum"
)

// curriculumExportCmd represents the curriculum export command
var curriculumExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the curriculum tree as YAML",
	Long: `Write the stored curriculum tree as YAML, in the format accepted by
"ppactl curriculum load".

Example:
  ppactl curriculum export > curriculo.yml
  ppactl curriculum export --out curriculo.yml`,
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		st, err := curriculumStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		entries, err := st.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read curriculum: %v\n", err)
			os.Exit(1)
		}
		data, err := curriculum.Export(entries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode curriculum: %v\n", err)
			os.Exit(1)
		}

		if out == "" {
			_, _ = os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", out, err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d curriculum entries to %s\n", len(entries), out)
	},
}

func init() {
	curriculumCmd.AddCommand(curriculumExportCmd)
	curriculumExportCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
}
