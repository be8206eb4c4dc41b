package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator/password"
	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <email-or-phone>",
	Short: "Reset an account password",
	Long: `Replace the password of an account with a new temporary one.

The account is looked up by e-mail or telephone. The new password is
printed to stdout.

Example:
  ppactl user reset-password ana@escola.ao`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, err := resetPassword(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Println(plain)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}

func tempPassword() (string, error) {
	plain, err := crypt.TempPassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return plain, nil
}

func resetPassword(identifier string) (string, error) {
	database, err := connect()
	if err != nil {
		return "", err
	}
	users := gormstore.NewUsersStore(database)

	user, err := users.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", fmt.Errorf("user not found: %s", identifier)
		}
		return "", err
	}

	plain, err := password.Reset(users, user.ID)
	event := audit.PasswordResetEvent{TargetID: user.ID, ClientIP: "cli", Reason: "ppactl", Success: err == nil}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)
	return plain, err
}
