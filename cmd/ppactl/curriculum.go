package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

// curriculumCmd represents the curriculum command
var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Manage the curriculum tree",
	Long: `Manage the classe / disciplina / tema / subtema / sumário tree used by
the lesson plan form.

The tree is exchanged as YAML: a mapping of classes to disciplinas to
temas to subtemas, each holding a list of sumários.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'curriculum' requires a subcommand (load, export, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(curriculumCmd)
}

// curriculumStore opens the configured database and returns its curriculum
// store.
func curriculumStore() (*gormstore.CurriculumStore, error) {
	database, err := connect()
	if err != nil {
		return nil, err
	}
	return gormstore.NewCurriculumStore(database), nil
}
