package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/news"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

// newsSyncCmd represents the news sync command
var newsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the latest education news with the AI model",
	Long: `Ask the AI model for recent news about the Angolan Ministry of
Education and insert every item whose title is not in the feed yet.

Requires GEMINI_API_KEY.

Example:
  ppactl news sync`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log, err := newLogger(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer log.Sync()

		database, err := openDatabase(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		syncer := news.NewSyncer(gormstore.NewNewsStore(database), newGenerator(ctx, cfg, log),
			time.Duration(cfg.NewsTTLDays)*24*time.Hour, log)
		n, err := syncer.Sync(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "News sync failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Inserted %d news item(s)\n", n)
	},
}

func init() {
	newsCmd.AddCommand(newsSyncCmd)
}
