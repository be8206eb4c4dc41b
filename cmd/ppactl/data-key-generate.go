package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/crypt"
)

// dataKeyGenerateCmd represents the data-key > generate command
var dataKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a data encryption key",
	Long: `
Generate a data encryption key

Use this command to generate a new Base64-encoded 256 bit data encryption key.
Once generated, this key should be placed into the environment of the PPA
server. It encrypts the sensitive settings stored in the database, such as
the SMTP password.

Example:

$ export PPA_DATA_KEY="$(ppactl data-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := crypt.GenerateKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(key))
	},
}

func init() {
	dataKeyCmd.AddCommand(dataKeyGenerateCmd)
}
