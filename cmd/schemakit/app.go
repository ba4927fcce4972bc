package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/requestid"
)

const envPrefix = "SCHEMAKIT_"

type appConfig struct {
	Env       string `env:"ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	SchemaDir string `env:"SCHEMA_DIR" envDefault:"schemas"`
	BodyLimit int64  `env:"BODY_LIMIT" envDefault:"1048576"`

	// Backend lookups to register, see registerBackends.
	RedisSets   []string `env:"REDIS_SETS" envSeparator:","`
	PGColumns   []string `env:"PG_COLUMNS" envSeparator:","`
	MongoFields []string `env:"MONGODB_FIELDS" envSeparator:","`
}

type app struct {
	cfg    appConfig
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	var cfg appConfig
	if err := config.Load(&cfg, config.WithPrefix(envPrefix)); err != nil {
		return nil, err
	}

	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "schemakit"),
		logger.WithOutput(stderr),
		logger.WithContextExtractors(requestid.Extractor),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		format, err := logger.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(format))
	}

	return &app{
		cfg:    cfg,
		log:    logger.New(opts...),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// readInput reads a JSON or YAML value from path, or from stdin for "" and "-".
// YAML is chosen by the .yaml/.yml extension. Empty input is the absent value.
func (a *app) readInput(ctx context.Context, path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(data)) == "" {
		return kind.Absent, nil
	}

	var value any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &value)
	default:
		err = json.Unmarshal(data, &value)
	}
	if err != nil {
		return nil, errors.Join(errors.New("parse input"), err)
	}
	return value, nil
}

func (a *app) writeJSON(v any, pretty bool) error {
	enc := json.NewEncoder(a.stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (a *app) fail(err error) int {
	a.log.Error("command failed", logger.Error(err))
	fmt.Fprintf(a.stderr, "schemakit: %v\n", err)
	return exitError
}
