package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json by default", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello", logger.Schema("signup"))

		entry := decodeLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "signup", entry["schema"])
	})

	t.Run("text format and level", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithFormat(logger.FormatText),
			logger.WithLevel(slog.LevelWarn),
		)
		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "level=WARN msg=shown")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("static attributes", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(logger.Component("cli")))
		log.Info("x")
		assert.Equal(t, "cli", decodeLine(t, buf)["component"])
	})
}

type ctxKey struct{}

func TestContextExtractors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextExtractors(nil, logger.ContextValue("request_id", ctxKey{})),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.With(logger.Component("http")).WithGroup("g").InfoContext(ctx, "request")

	entry := decodeLine(t, buf)
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, map[string]any{"request_id": "req-1"}, entry["g"])

	buf.Reset()
	log.InfoContext(context.Background(), "no id")
	assert.NotContains(t, decodeLine(t, buf), "request_id")
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env       string
		wantEnv   string
		wantDebug bool
		json      bool
	}{
		{"production", logger.EnvProduction, false, true},
		{"prod", logger.EnvProduction, false, true},
		{"STAGE", logger.EnvStaging, false, true},
		{"", logger.EnvDevelopment, true, false},
		{"local", logger.EnvDevelopment, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.New(logger.WithEnvironment(tt.env, "schemakit"), logger.WithOutput(buf))
			assert.Equal(t, tt.wantDebug, log.Enabled(context.Background(), slog.LevelDebug))

			log.Info("x")
			if tt.json {
				entry := decodeLine(t, buf)
				assert.Equal(t, tt.wantEnv, entry["env"])
				assert.Equal(t, "schemakit", entry["service"])
			} else {
				assert.Contains(t, buf.String(), "env="+tt.wantEnv)
			}
		})
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	t.Parallel()

	l, err := logger.ParseLevel(" debug ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = logger.ParseLevel("loud")
	assert.Error(t, err)

	f, err := logger.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	f, err = logger.ParseFormat("TEXT")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatText, f)

	_, err = logger.ParseFormat("xml")
	assert.Error(t, err)
}
