package config

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty config dir and a missing .env
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PPA_CONFIG_PATH", dir)
	t.Setenv("PPA_DOTENV", filepath.Join(dir, "missing.env"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "sqlite3://data/ppa.db", cfg.DatabaseURL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 24*time.Hour, cfg.CleanupInterval())
	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	assert.Equal(t, "default", cfg.Source("port"))
	assert.False(t, cfg.IsPostgres())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := isolate(t)
	yml := "port: \"8080\"\nlibrary_backend: gcs\nlibrary_bucket: ppa-docs\nsmtp_secure: true\nnews_ttl_days: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0o600))
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://ppa:pw@db:5432/ppa")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
	assert.Equal(t, "gcs", cfg.LibraryBackend)
	assert.Equal(t, "file", cfg.Source("library_backend"))
	assert.True(t, cfg.SMTPSecure)
	assert.Equal(t, 7, cfg.NewsTTLDays)
	assert.True(t, cfg.IsPostgres())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigFilePath())
}

func TestLoad_BadYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "ppa.env")
	require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_MODEL=gemini-test\nPPA_NEWS_TTL_DAYS=3\n"), 0o600))
	t.Setenv("PPA_DOTENV", envFile)
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PPA_NEWS_TTL_DAYS", "")
	// godotenv leaves these exported for the rest of the process
	t.Cleanup(func() {
		os.Unsetenv("GEMINI_MODEL")
		os.Unsetenv("PPA_NEWS_TTL_DAYS")
	})
	os.Unsetenv("GEMINI_MODEL")
	os.Unsetenv("PPA_NEWS_TTL_DAYS")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", cfg.GeminiModel)
	assert.Equal(t, 3, cfg.NewsTTLDays)
}

func TestValidate(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))

	tests := []struct {
		name    string
		mutate  func(c *PPAConfig)
		wantErr string
	}{
		{"ok", func(c *PPAConfig) {}, ""},
		{"bad library backend", func(c *PPAConfig) { c.LibraryBackend = "s3" }, "invalid library_backend"},
		{"gcs without bucket", func(c *PPAConfig) { c.LibraryBackend = "gcs" }, "library_bucket is required"},
		{"bad mail backend", func(c *PPAConfig) { c.MailBackend = "pigeon" }, "invalid mail_backend"},
		{"sendgrid without key", func(c *PPAConfig) { c.MailBackend = "sendgrid" }, "sendgrid_api_key is required"},
		{"zero ttl", func(c *PPAConfig) { c.SessionTTLHours = 0 }, "session_ttl"},
		{"good key", func(c *PPAConfig) { c.DataKeyB64 = key }, ""},
		{"short key", func(c *PPAConfig) { c.DataKeyB64 = base64.StdEncoding.EncodeToString([]byte("short")) }, "32 bytes"},
		{"not base64", func(c *PPAConfig) { c.DataKeyB64 = "%%%" }, "bad data_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAttributes_MasksSecrets(t *testing.T) {
	cfg := newDefault()
	cfg.JWTSecret = "super-secret"
	cfg.SMTPPass = "hunter2"
	cfg.SMTPUser = "ppa@example.ao"

	found := map[string]Attribute{}
	for _, a := range cfg.Attributes() {
		found[a.Name] = a
	}
	assert.Len(t, found, len(attributeNames()))
	assert.Equal(t, "********", found["jwt_secret"].Value)
	assert.Equal(t, "********", found["smtp_pass"].Value)
	assert.Equal(t, "ppa@example.ao", found["smtp_user"].Value)
	assert.Equal(t, "", found["gemini_api_key"].Value)
	assert.True(t, cfg.SMTPConfigured())
}

func TestFormat(t *testing.T) {
	cfg := newDefault()
	cfg.GeminiAPIKey = "AIza-test"

	text := cfg.FormatText()
	assert.Contains(t, text, "NAME")
	assert.Contains(t, text, "(not set)")
	assert.NotContains(t, text, "AIza-test")

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	var parsed struct {
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.NotEmpty(t, parsed.Attributes)
	assert.False(t, strings.Contains(out, "AIza-test"))
}

func TestDerived(t *testing.T) {
	cfg := newDefault()
	cfg.AppURL = "https://ppa.ao/"
	cfg.DataDir = "/srv/ppa"

	assert.Equal(t, "https://ppa.ao/auth/google/callback", cfg.RedirectURL())
	assert.Equal(t, filepath.Join("/srv/ppa", "biblioteca"), cfg.LibraryPath())

	key, err := cfg.DataKey()
	require.NoError(t, err)
	assert.Nil(t, key)
}
