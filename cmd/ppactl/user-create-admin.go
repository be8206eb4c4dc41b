package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator/password"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

// userCreateAdminCmd represents the user create-admin command
var userCreateAdminCmd = &cobra.Command{
	Use:   "create-admin <email>",
	Short: "Create an administrator account",
	Long: `Create an active administrator account with the given e-mail.

The password is read from PPA_ADMIN_PASSWORD. When it is not set a
temporary password is generated and printed. Nothing is changed when an
account with the e-mail already exists.

Example:
  PPA_ADMIN_PASSWORD=segredo ppactl user create-admin admin@escola.ao`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]

		database, err := connect()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		plain := os.Getenv("PPA_ADMIN_PASSWORD")
		generated := plain == ""
		if generated {
			if plain, err = tempPassword(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}

		created, err := password.EnsureAdmin(gormstore.NewUsersStore(database), email, plain)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create administrator %s: %v\n", email, err)
			os.Exit(1)
		}
		if !created {
			fmt.Fprintf(os.Stderr, "An account with e-mail %s already exists\n", email)
			os.Exit(1)
		}
		if generated {
			fmt.Println(plain)
			return
		}
		fmt.Printf("Administrator %s created\n", email)
	},
}

func init() {
	userCmd.AddCommand(userCreateAdminCmd)
}
