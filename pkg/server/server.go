package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator"
	"github.com/ppa-angola/portal-pedagogico/pkg/config"
	"github.com/ppa-angola/portal-pedagogico/pkg/gdrive"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/middleware"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/session"
)

// AdminNotifier delivers messages to the administrator mailbox. simulated
// is true when no transport was configured and the message was only logged.
type AdminNotifier interface {
	NotifyAdmin(ctx context.Context, subject, body string) (simulated bool, err error)
}

// NewsSyncer refreshes the news feed from the AI model.
type NewsSyncer interface {
	Sync(ctx context.Context) (int, error)
}

type Server struct {
	Config *config.PPAConfig
	Log    *logger.Logger
	Router *mux.Router
	DB     *gorm.DB

	Sessions      *session.Manager
	Authenticator *middleware.Authenticator
	Login         authenticator.Authenticator

	// Stores
	UsersStore      store.UsersStore
	PlansStore      store.PlansStore
	SettingsStore   store.SettingsStore
	CurriculumStore store.CurriculumStore
	StudentsStore   store.StudentsStore
	CalendarStore   store.CalendarStore
	QuestionsStore  store.QuestionsStore
	NewsStore       store.NewsStore
	FeedbackStore   store.FeedbackStore
	CommunityStore  store.CommunityStore
	StatsStore      store.StatsStore
	HealthStore     store.HealthStore

	// Collaborators
	Library  library.Storage
	AI       ai.Generator
	Notifier AdminNotifier
	Drive    gdrive.Uploader
	News     NewsSyncer

	srv *http.Server
}

func NewServer(
	cfg *config.PPAConfig,
	log *logger.Logger,
	db *gorm.DB,
	sessions *session.Manager,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()

	s := &Server{
		Config:        cfg,
		Log:           log,
		Router:        router,
		DB:            db,
		Sessions:      sessions,
		Authenticator: middleware.NewAuthenticator(sessions),
		AI:            ai.Unconfigured{},
	}
	s.Authenticator.WithUsers(serverUsers{s})

	s.srv = &http.Server{
		Handler: s.Handler(),
		Addr:    host + ":" + port,
		// Plan generation waits on the model, so writes get more room than reads.
		WriteTimeout: 3 * time.Minute,
		ReadTimeout:  2 * time.Minute,
	}
	return s
}

// serverUsers resolves UsersStore per request, since stores are attached
// after NewServer returns.
type serverUsers struct{ s *Server }

func (u serverUsers) FindByID(id int64) (*model.User, error) {
	if u.s.UsersStore == nil {
		return nil, store.ErrUserNotFound
	}
	return u.s.UsersStore.FindByID(id)
}

// Handler wraps the router with request ids, panic recovery, CORS and the
// access log.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	h = middleware.RequestID(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
	)(h)
	return handlers.LoggingHandler(os.Stdout, h)
}

// Protected requires a valid session token.
func (s *Server) Protected(h http.HandlerFunc) http.Handler {
	return s.Authenticator.Middleware(h)
}

// AdminOnly requires a valid session token of an administrator.
func (s *Server) AdminOnly(h http.HandlerFunc) http.Handler {
	return s.Authenticator.Middleware(middleware.RequireAdmin(h))
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
