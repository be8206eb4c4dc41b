package integration

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator/password"
	"github.com/ppa-angola/portal-pedagogico/pkg/config"
	"github.com/ppa-angola/portal-pedagogico/pkg/curriculum"
	"github.com/ppa-angola/portal-pedagogico/pkg/db"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/mailer"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/endpoints"
	gormstore "github.com/ppa-angola/portal-pedagogico/pkg/server/store/gorm"
	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

const (
	adminEmail    = "admin@ppa.test"
	adminPassword = "admin-secret"
	jwtSecret     = "integration-secret"
	serverPort    = "18080"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server
	libraryDir    string
}

// NewTestContext creates a new test context with PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set PPA_BINARY to the path of the ppactl binary
//   - Inline mode: Set PPA_INLINE=1 to run the server in-process (no binary needed)
func NewTestContext(ctx context.Context) (*TestContext, error) {
	inlineMode := os.Getenv("PPA_INLINE") == "1"
	binaryPath := os.Getenv("PPA_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either PPA_BINARY or PPA_INLINE=1 is required.\n\nBinary mode:\n  go build -o ppactl ./cmd/ppactl\n  INTEGRATION_TEST=1 PPA_BINARY=$(pwd)/ppactl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 PPA_INLINE=1 go test -v ./test/integration/...")
	}

	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("PPA_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ppa_test"),
		tcpostgres.WithUsername("ppa"),
		tcpostgres.WithPassword("ppa"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://ppa:ppa@%s:%s/ppa_test?sslmode=disable", host, port.Port())

	if _, _, err := db.Migrate(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	libraryDir, err := os.MkdirTemp("", "ppa-library-")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%s", serverPort)

	var serverProcess *exec.Cmd
	var inlineServer *server.Server
	var cancel context.CancelFunc

	if inlineMode {
		inlineServer, cancel, err = startInlineServer(database, libraryDir, serverPort)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			return nil, fmt.Errorf("failed to start inline server: %w", err)
		}
	} else {
		serverProcess, cancel, err = startBinary(binaryPath, connStr, libraryDir, serverPort)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			return nil, fmt.Errorf("failed to start server binary: %w", err)
		}
	}

	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		cancel()
		if serverProcess != nil && serverProcess.Process != nil {
			_ = serverProcess.Process.Kill()
		}
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            database,
		Container:     pgContainer,
		ServerURL:     serverURL,
		DatabaseURL:   connStr,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		Cancel:        cancel,
		ServerProcess: serverProcess,
		InlineServer:  inlineServer,
		libraryDir:    libraryDir,
	}, nil
}

// startInlineServer wires the server in-process the same way ppactl does,
// without an AI key or mail transport.
func startInlineServer(database *gorm.DB, libraryDir, port string) (*server.Server, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	sessions, _, err := session.NewManager(jwtSecret, 24*time.Hour)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	lib, err := library.NewLocal(libraryDir)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	if err := library.Init(ctx, lib); err != nil {
		cancel()
		return nil, nil, err
	}

	log := logger.Nop()
	cfg := &config.PPAConfig{Port: port, BindAddress: "127.0.0.1"}
	s := server.NewServer(cfg, log, database, sessions, "127.0.0.1", port)

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
	s.Notifier = mailer.NewNotifier(s.SettingsStore, mailer.Config{Backend: mailer.BackendConsole}, log)

	endpoints.RegisterAll(s)

	if _, err := curriculum.Seed(s.CurriculumStore); err != nil {
		cancel()
		return nil, nil, err
	}
	if _, err := password.EnsureAdmin(users, adminEmail, adminPassword); err != nil {
		cancel()
		return nil, nil, err
	}

	go func() {
		_ = s.Start()
	}()

	return s, func() {
		cancel()
		_ = s.Shutdown(context.Background())
	}, nil
}

// startBinary starts the ppactl server binary
func startBinary(binaryPath, dbURL, libraryDir, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Migrations already ran in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "--no-jobs", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"PPA_DATA_DIR="+libraryDir,
		"PPA_JWT_SECRET="+jwtSecret,
		"PPA_ADMIN_EMAIL="+adminEmail,
		"PPA_ADMIN_PASSWORD="+adminPassword,
		"PPA_MAIL_BACKEND=console",
		"PPA_LOG_LEVEL=warn",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the health endpoint until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/api/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.DB != nil {
		if raw, err := tc.DB.DB(); err == nil {
			_ = raw.Close()
		}
	}
	if tc.libraryDir != "" {
		_ = os.RemoveAll(tc.libraryDir)
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
