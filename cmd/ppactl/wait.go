package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/config"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the PPA server to be ready",
	Long: `Wait for the PPA server to be ready by polling the health endpoint.

This command will repeatedly check /api/health until it responds
successfully or the maximum number of retries is reached.

Example:
  ppactl wait
  ppactl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		retries, _ := cmd.Flags().GetInt("retries")
		if port == "" {
			port = config.Get().Port
		}

		if err := waitForServer(port, retries); err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().StringP("port", "p", "", "Server port to check (default from configuration)")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForServer(port string, retries int) error {
	url := fmt.Sprintf("http://localhost:%s/api/health", port)
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Println("Waiting for PPA to be ready...")

	for i := 0; i < retries; i++ {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode < 300 {
				fmt.Println()
				fmt.Println("PPA is ready!")
				return nil
			}
		}

		fmt.Print(".")
		time.Sleep(1 * time.Second)
	}

	fmt.Println()
	return fmt.Errorf("PPA is not ready after %d seconds", retries)
}
