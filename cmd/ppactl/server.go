package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator/password"
	"github.com/ppa-angola/portal-pedagogico/pkg/config"
	"github.com/ppa-angola/portal-pedagogico/pkg/curriculum"
	"github.com/ppa-angola/portal-pedagogico/pkg/db"
	"github.com/ppa-angola/portal-pedagogico/pkg/gdrive"
	"github.com/ppa-angola/portal-pedagogico/pkg/jobs"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/mailer"
	"github.com/ppa-angola/portal-pedagogico/pkg/news"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/endpoints"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

const shutdownTimeout = 15 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the PPA application server",
	Long: `Run the PPA application server.

On start the server applies pending database migrations, creates the
document library folders, seeds the curriculum and the news feed when they
are empty and makes sure the administrator account exists. The maintenance
loop then prunes old plans and expired news and refreshes the feed.

Use --no-migrate to skip migrations and --no-jobs to disable the
maintenance loop.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		noJobs, _ := cmd.Flags().GetBool("no-jobs")
		if host != "" {
			cfg.BindAddress = host
		}
		if port != "" {
			cfg.Port = port
		}

		if err := runServer(cfg, !noMigrate, !noJobs); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", "", "server listen port (default from configuration)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (default from configuration)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("no-jobs", false, "disable the periodic maintenance loop")
}

func runServer(cfg *config.PPAConfig, migrate, runJobs bool) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if migrate {
		log.Info("running database migrations")
		version, changed, err := db.Migrate(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		log.Info("database schema ready", "version", version, "changed", changed)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := buildServer(ctx, cfg, log, database)
	if err != nil {
		return err
	}
	if err := bootstrapData(ctx, cfg, log, s); err != nil {
		return err
	}

	if cfg.IsPostgres() {
		st, err := audit.NewStore(cfg.DatabaseURL)
		if err != nil {
			log.Warn("audit persistence disabled", "error", err)
		}
		audit.UseStore(st)
	}

	if runJobs {
		cleanup := &jobs.Cleanup{
			Plans:     s.PlansStore,
			News:      s.NewsStore,
			Syncer:    s.News,
			Retention: time.Duration(cfg.PlanRetentionDays) * 24 * time.Hour,
			Interval:  cfg.CleanupInterval(),
			Log:       log.With("component", "jobs"),
		}
		go cleanup.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("running server", "addr", "http://"+s.Addr())
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// buildServer wires every store and collaborator and registers the routes.
func buildServer(ctx context.Context, cfg *config.PPAConfig, log *logger.Logger, database *gorm.DB) (*server.Server, error) {
	sessions, ok, err := session.NewManager(cfg.JWTSecret, cfg.SessionTTL())
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warn("jwt_secret not set; using a random secret, sessions end on restart")
	}

	lib, err := openLibrary(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := server.NewServer(cfg, log, database, sessions, cfg.BindAddress, cfg.Port)

	users := gormstore.NewUsersStore(database)
	s.UsersStore = users
	s.PlansStore = gormstore.NewPlansStore(database)
	s.SettingsStore = gormstore.NewSettingsStore(database)
	s.CurriculumStore = gormstore.NewCurriculumStore(database)
	s.StudentsStore = gormstore.NewStudentsStore(database)
	s.CalendarStore = gormstore.NewCalendarStore(database)
	s.QuestionsStore = gormstore.NewQuestionsStore(database)
	s.NewsStore = gormstore.NewNewsStore(database)
	s.FeedbackStore = gormstore.NewFeedbackStore(database)
	s.CommunityStore = gormstore.NewCommunityStore(database)
	s.StatsStore = gormstore.NewStatsStore(database)
	s.HealthStore = gormstore.NewHealthStore(database)
	s.Login = password.New(users)

	s.Library = lib
	s.AI = newGenerator(ctx, cfg, log)
	s.Notifier = mailer.NewNotifier(s.SettingsStore, mailer.Config{
		Backend: cfg.MailBackend,
		SMTP: mailer.SMTPConfig{
			Host:   cfg.SMTPHost,
			Port:   cfg.SMTPPort,
			Secure: cfg.SMTPSecure,
			User:   cfg.SMTPUser,
			Pass:   cfg.SMTPPass,
		},
		AdminEmail:  cfg.AdminEmail,
		SendgridKey: cfg.SendgridAPIKey,
	}, log.With("component", "mailer"))
	s.Drive = gdrive.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectURL())
	s.News = news.NewSyncer(s.NewsStore, s.AI, time.Duration(cfg.NewsTTLDays)*24*time.Hour, log.With("component", "news"))

	endpoints.RegisterAll(s)
	return s, nil
}

// bootstrapData prepares the library folders and seeds the reference data.
func bootstrapData(ctx context.Context, cfg *config.PPAConfig, log *logger.Logger, s *server.Server) error {
	if err := library.Init(ctx, s.Library); err != nil {
		return fmt.Errorf("failed to initialise library: %w", err)
	}

	n, err := curriculum.Seed(s.CurriculumStore)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("curriculum seeded", "entries", n)
	}

	n, err = news.Seed(s.NewsStore)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("news feed seeded", "items", n)
	}

	created, err := password.EnsureAdmin(s.UsersStore, cfg.AdminSeedEmail, cfg.AdminSeedPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info("administrator account created", "email", cfg.AdminSeedEmail)
	} else if cfg.AdminSeedPassword == "" {
		log.Debug("admin_seed_password not set; skipping administrator seed")
	}
	return nil
}
