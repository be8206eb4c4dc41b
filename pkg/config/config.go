package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/ppa"
	ConfigFileName    = "ppa.yml"
	DefaultDotEnv     = ".env"

	DefaultGeminiModel = "gemini-3-flash-preview"
)

// ValidLibraryBackends lists the supported document library backends
var ValidLibraryBackends = []string{"local", "gcs"}

// ValidMailBackends lists the supported notification transports
var ValidMailBackends = []string{"smtp", "sendgrid", "console"}

// PPAConfig holds all portal configuration settings
type PPAConfig struct {
	// DataDir holds the embedded database and the local document library
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// DatabaseURL selects the backend: sqlite3://path or postgres://...
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	LogLevel string `yaml:"log_level" json:"log_level"`
	LogMode  string `yaml:"log_mode" json:"log_mode"`

	Port        string `yaml:"port" json:"port"`
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// AppURL is the public origin, used to build the Google OAuth redirect
	AppURL    string `yaml:"app_url" json:"app_url"`
	StaticDir string `yaml:"static_dir" json:"static_dir"`

	LibraryBackend string `yaml:"library_backend" json:"library_backend"`
	LibraryBucket  string `yaml:"library_bucket" json:"library_bucket"`

	JWTSecret string `yaml:"jwt_secret" json:"-"`
	// SessionTTLHours is the lifetime of issued session tokens
	SessionTTLHours int `yaml:"session_ttl" json:"session_ttl"`

	// DataKeyB64 is a base64 AES-256 key used to encrypt sensitive settings
	DataKeyB64 string `yaml:"data_key" json:"-"`

	GeminiAPIKey string `yaml:"gemini_api_key" json:"-"`
	GeminiModel  string `yaml:"gemini_model" json:"gemini_model"`

	GoogleClientID     string `yaml:"google_client_id" json:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret" json:"-"`

	SMTPHost   string `yaml:"smtp_host" json:"smtp_host"`
	SMTPPort   int    `yaml:"smtp_port" json:"smtp_port"`
	SMTPSecure bool   `yaml:"smtp_secure" json:"smtp_secure"`
	SMTPUser   string `yaml:"smtp_user" json:"smtp_user"`
	SMTPPass   string `yaml:"smtp_pass" json:"-"`
	AdminEmail string `yaml:"admin_email" json:"admin_email"`

	MailBackend    string `yaml:"mail_backend" json:"mail_backend"`
	SendgridAPIKey string `yaml:"sendgrid_api_key" json:"-"`

	AdminSeedEmail    string `yaml:"admin_seed_email" json:"admin_seed_email"`
	AdminSeedPassword string `yaml:"admin_seed_password" json:"-"`

	// CleanupIntervalHours is the period of the maintenance loop
	CleanupIntervalHours int `yaml:"cleanup_interval" json:"cleanup_interval"`
	PlanRetentionDays    int `yaml:"plan_retention_days" json:"plan_retention_days"`
	NewsTTLDays          int `yaml:"news_ttl_days" json:"news_ttl_days"`

	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *PPAConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *PPAConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *PPAConfig {
	return &PPAConfig{
		DataDir:              "./data",
		LogLevel:             "info",
		LogMode:              "dev",
		Port:                 "3000",
		BindAddress:          "0.0.0.0",
		AppURL:               "http://localhost:3000",
		StaticDir:            "./dist",
		LibraryBackend:       "local",
		SessionTTLHours:      168,
		GeminiModel:          DefaultGeminiModel,
		SMTPPort:             587,
		MailBackend:          "smtp",
		AdminSeedEmail:       "admin@ppa.ao",
		CleanupIntervalHours: 24,
		PlanRetentionDays:    30,
		NewsTTLDays:          14,
		AuditEnabled:         true,
		sources:              make(map[string]string),
	}
}

// Load loads configuration from file, .env and environment variables.
// Environment variables take precedence over file values.
func Load() (*PPAConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	// .env never overrides variables that are already exported
	dotEnv := os.Getenv("PPA_DOTENV")
	if dotEnv == "" {
		dotEnv = DefaultDotEnv
	}
	if _, err := os.Stat(dotEnv); err == nil {
		if err := godotenv.Load(dotEnv); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
		}
	}

	configPath := os.Getenv("PPA_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig PPAConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	if config.DatabaseURL == "" {
		config.DatabaseURL = "sqlite3://" + filepath.ToSlash(filepath.Join(config.DataDir, "ppa.db"))
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"data_dir", "database_url", "log_level", "log_mode", "port",
		"bind_address", "app_url", "static_dir", "library_backend",
		"library_bucket", "jwt_secret", "session_ttl", "data_key",
		"gemini_api_key", "gemini_model", "google_client_id",
		"google_client_secret", "smtp_host", "smtp_port", "smtp_secure",
		"smtp_user", "smtp_pass", "admin_email", "mail_backend",
		"sendgrid_api_key", "admin_seed_email", "admin_seed_password",
		"cleanup_interval", "plan_retention_days", "news_ttl_days",
		"audit_enabled",
	}
}

// secretAttributes are masked in Attributes output
var secretAttributes = map[string]bool{
	"jwt_secret":           true,
	"data_key":             true,
	"gemini_api_key":       true,
	"google_client_secret": true,
	"smtp_pass":            true,
	"sendgrid_api_key":     true,
	"admin_seed_password":  true,
}

type stringField struct {
	name string
	dst  *string
	env  string
}

func (c *PPAConfig) stringFields() []stringField {
	return []stringField{
		{"data_dir", &c.DataDir, "PPA_DATA_DIR"},
		{"database_url", &c.DatabaseURL, "DATABASE_URL"},
		{"log_level", &c.LogLevel, "PPA_LOG_LEVEL"},
		{"log_mode", &c.LogMode, "PPA_LOG_MODE"},
		{"port", &c.Port, "PORT"},
		{"bind_address", &c.BindAddress, "BIND_ADDRESS"},
		{"app_url", &c.AppURL, "APP_URL"},
		{"static_dir", &c.StaticDir, "PPA_STATIC_DIR"},
		{"library_backend", &c.LibraryBackend, "PPA_LIBRARY_BACKEND"},
		{"library_bucket", &c.LibraryBucket, "PPA_LIBRARY_BUCKET"},
		{"jwt_secret", &c.JWTSecret, "PPA_JWT_SECRET"},
		{"data_key", &c.DataKeyB64, "PPA_DATA_KEY"},
		{"gemini_api_key", &c.GeminiAPIKey, "GEMINI_API_KEY"},
		{"gemini_model", &c.GeminiModel, "GEMINI_MODEL"},
		{"google_client_id", &c.GoogleClientID, "GOOGLE_CLIENT_ID"},
		{"google_client_secret", &c.GoogleClientSecret, "GOOGLE_CLIENT_SECRET"},
		{"smtp_host", &c.SMTPHost, "SMTP_HOST"},
		{"smtp_user", &c.SMTPUser, "SMTP_USER"},
		{"smtp_pass", &c.SMTPPass, "SMTP_PASS"},
		{"admin_email", &c.AdminEmail, "ADMIN_EMAIL"},
		{"mail_backend", &c.MailBackend, "PPA_MAIL_BACKEND"},
		{"sendgrid_api_key", &c.SendgridAPIKey, "SENDGRID_API_KEY"},
		{"admin_seed_email", &c.AdminSeedEmail, "PPA_ADMIN_EMAIL"},
		{"admin_seed_password", &c.AdminSeedPassword, "PPA_ADMIN_PASSWORD"},
	}
}

type intField struct {
	name string
	dst  *int
	env  string
}

func (c *PPAConfig) intFields() []intField {
	return []intField{
		{"session_ttl", &c.SessionTTLHours, "PPA_SESSION_TTL"},
		{"smtp_port", &c.SMTPPort, "SMTP_PORT"},
		{"cleanup_interval", &c.CleanupIntervalHours, "PPA_CLEANUP_INTERVAL"},
		{"plan_retention_days", &c.PlanRetentionDays, "PPA_PLAN_RETENTION_DAYS"},
		{"news_ttl_days", &c.NewsTTLDays, "PPA_NEWS_TTL_DAYS"},
	}
}

type boolField struct {
	name string
	dst  *bool
	env  string
}

func (c *PPAConfig) boolFields() []boolField {
	return []boolField{
		{"smtp_secure", &c.SMTPSecure, "SMTP_SECURE"},
		{"audit_enabled", &c.AuditEnabled, "PPA_AUDIT_ENABLED"},
	}
}

func (c *PPAConfig) applyFileConfig(file *PPAConfig) {
	fileStrings := file.stringFields()
	for i, f := range c.stringFields() {
		if v := *fileStrings[i].dst; v != "" {
			*f.dst = v
			c.sources[f.name] = "file"
		}
	}
	fileInts := file.intFields()
	for i, f := range c.intFields() {
		if v := *fileInts[i].dst; v != 0 {
			*f.dst = v
			c.sources[f.name] = "file"
		}
	}
	// yaml cannot distinguish false from absent, so only true overrides
	fileBools := file.boolFields()
	for i, f := range c.boolFields() {
		if *fileBools[i].dst {
			*f.dst = true
			c.sources[f.name] = "file"
		}
	}
}

func (c *PPAConfig) applyEnvConfig() {
	for _, f := range c.stringFields() {
		if val := os.Getenv(f.env); val != "" {
			*f.dst = val
			c.sources[f.name] = "environment"
		}
	}
	for _, f := range c.intFields() {
		if val := os.Getenv(f.env); val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*f.dst = i
				c.sources[f.name] = "environment"
			}
		}
	}
	for _, f := range c.boolFields() {
		if val := os.Getenv(f.env); val != "" {
			*f.dst = val == "true" || val == "1"
			c.sources[f.name] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *PPAConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *PPAConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// SessionTTL returns the session token lifetime
func (c *PPAConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// CleanupInterval returns the maintenance loop period
func (c *PPAConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalHours) * time.Hour
}

// DataKey decodes the settings encryption key. A nil key means
// sensitive settings are stored in clear text.
func (c *PPAConfig) DataKey() ([]byte, error) {
	if c.DataKeyB64 == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.DataKeyB64)
	if err != nil {
		return nil, fmt.Errorf("bad data_key: %w", err)
	}
	return key, nil
}

// LibraryPath returns the root of the local document library
func (c *PPAConfig) LibraryPath() string {
	return filepath.Join(c.DataDir, "biblioteca")
}

// RedirectURL returns the Google OAuth callback URL
func (c *PPAConfig) RedirectURL() string {
	return strings.TrimRight(c.AppURL, "/") + "/auth/google/callback"
}

// SMTPConfigured reports whether the environment carries SMTP credentials
func (c *PPAConfig) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// IsPostgres reports whether DatabaseURL points at PostgreSQL
func (c *PPAConfig) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Validate validates the configuration
func (c *PPAConfig) Validate() error {
	if !contains(ValidLibraryBackends, c.LibraryBackend) {
		return fmt.Errorf("invalid library_backend: %s", c.LibraryBackend)
	}
	if c.LibraryBackend == "gcs" && c.LibraryBucket == "" {
		return fmt.Errorf("library_bucket is required when library_backend is gcs")
	}
	if !contains(ValidMailBackends, c.MailBackend) {
		return fmt.Errorf("invalid mail_backend: %s", c.MailBackend)
	}
	if c.MailBackend == "sendgrid" && c.SendgridAPIKey == "" {
		return fmt.Errorf("sendgrid_api_key is required when mail_backend is sendgrid")
	}
	if _, err := url.Parse(c.AppURL); err != nil {
		return fmt.Errorf("invalid app_url: %w", err)
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	key, err := c.DataKey()
	if err != nil {
		return err
	}
	if key != nil && len(key) != 32 {
		return fmt.Errorf("data_key must decode to 32 bytes, got %d", len(key))
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *PPAConfig) Attributes() []Attribute {
	values := make(map[string]string)
	for _, f := range c.stringFields() {
		values[f.name] = *f.dst
	}
	for _, f := range c.intFields() {
		values[f.name] = strconv.Itoa(*f.dst)
	}
	for _, f := range c.boolFields() {
		values[f.name] = strconv.FormatBool(*f.dst)
	}

	attrs := make([]Attribute, 0, len(values))
	for _, name := range attributeNames() {
		value := values[name]
		if secretAttributes[name] && value != "" {
			value = "********"
		}
		attrs = append(attrs, Attribute{Name: name, Value: value, Source: c.Source(name)})
	}
	return attrs
}

// FormatText returns a text representation of the configuration
func (c *PPAConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *PPAConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
