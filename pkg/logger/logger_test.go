package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		level   string
		wantErr bool
	}{
		{"development default", "dev", "", false},
		{"production", "prod", "warn", false},
		{"debug level", "development", "debug", false},
		{"bad level", "dev", "loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.mode, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log.SugaredLogger)
		})
	}
}

func TestWith(t *testing.T) {
	log, logs := NewObserved(zapcore.DebugLevel)

	log.With("service", "library").Info("uploaded", "path", "/1ª Classe/manual.pdf")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "uploaded", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "library", ctx["service"])
	assert.Equal(t, "/1ª Classe/manual.pdf", ctx["path"])
}

func TestLevels(t *testing.T) {
	log, logs := NewObserved(zapcore.InfoLevel)

	log.Debug("hidden")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	assert.Equal(t, 3, logs.Len())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.Sync()
}
