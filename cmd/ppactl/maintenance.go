package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppa-angola/portal-pedagogico/pkg/jobs"
	"github.com/ppa-angola/portal-pedagogico/pkg/news"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
)

// maintenanceCmd represents the maintenance command
var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Run periodic maintenance",
	Long:  `Run the maintenance tasks the server otherwise runs on a schedule.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'maintenance' requires a subcommand (run)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// maintenanceRunCmd represents the maintenance run command
var maintenanceRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one maintenance pass",
	Long: `Run one maintenance pass: delete plan history older than
plan_retention_days, delete expired news and refresh the news feed.

Use --skip-news to leave the feed untouched, for example when no AI key is
configured.

Example:
  ppactl maintenance run
  ppactl maintenance run --skip-news`,
	Run: func(cmd *cobra.Command, args []string) {
		skipNews, _ := cmd.Flags().GetBool("skip-news")

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

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		newsStore := gormstore.NewNewsStore(database)
		cleanup := &jobs.Cleanup{
			Plans:     gormstore.NewPlansStore(database),
			News:      newsStore,
			Retention: time.Duration(cfg.PlanRetentionDays) * 24 * time.Hour,
			Log:       log,
		}
		if !skipNews {
			cleanup.Syncer = news.NewSyncer(newsStore, newGenerator(ctx, cfg, log),
				time.Duration(cfg.NewsTTLDays)*24*time.Hour, log)
		}

		res, err := cleanup.RunOnce(ctx)
		fmt.Printf("Plans deleted: %d\nNews deleted: %d\nNews inserted: %d\n",
			res.PlansDeleted, res.NewsDeleted, res.NewsInserted)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Maintenance finished with errors: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(maintenanceCmd)
	maintenanceCmd.AddCommand(maintenanceRunCmd)
	maintenanceRunCmd.Flags().Bool("skip-news", false, "do not refresh the news feed")
}
