package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/marco/movieCatalog/internal/catalog"
	"github.com/marco/movieCatalog/internal/config"
	"github.com/marco/movieCatalog/internal/store"
)

type commandContext struct {
	configFlag  *string
	fileFlag    *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, fileFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		fileFlag:    fileFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}

		cfg := config.Default()
		if path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				c.configErr = err
				return
			}
			cfg = loaded
		}

		if c.fileFlag != nil && strings.TrimSpace(*c.fileFlag) != "" {
			cfg.Catalog.File = strings.TrimSpace(*c.fileFlag)
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Log.Level = "debug"
		}

		slog.SetDefault(newLogger(os.Stderr, cfg.Log))
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newStore(cfg *config.Config) *store.File {
	return store.NewFile(cfg.Catalog.File, store.Options{
		Header:       cfg.Catalog.Header,
		LockAttempts: cfg.Lock.Attempts,
		LockBackoff:  cfg.LockBackoff(),
	})
}

// openCatalog loads the catalog file. An unreadable file degrades to an
// empty catalog so the session can continue; the error is logged.
func (c *commandContext) openCatalog() (*catalog.Catalog, *store.File, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	s := c.newStore(cfg)
	return loadCatalog(s), s, nil
}

func loadCatalog(s *store.File) *catalog.Catalog {
	lines, err := s.ReadLines()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Error("file does not exist", "file", s.Path())
		} else {
			slog.Error("failed to read catalog file", "file", s.Path(), "error", err)
		}
		cat, _ := catalog.Load(nil, s)
		return cat
	}

	cat, lineErrs := catalog.Load(lines, s)
	for _, lineErr := range lineErrs {
		slog.Error("skipping catalog line",
			// +1 for the header line
			"line", lineErr.Record+1,
			"text", lineErr.Text,
			"error", lineErr.Err,
		)
	}
	slog.Info("movies in file", "count", cat.Len(), "file", s.Path())
	return cat
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot create log directory for %s: %v\n", cfg.File, err)
		} else {
			w = io.MultiWriter(w, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAgeDays,
			})
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
