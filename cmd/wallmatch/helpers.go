package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/wallmatch/internal/config"
	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/Veraticus/wallmatch/internal/matchapi"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/selection"
	"github.com/spf13/viper"
)

// backend is what commands need from the matching service.
type backend interface {
	flow.Matcher
	Catalog(ctx context.Context) model.Catalog
}

func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func newClient(settings config.Settings) (*matchapi.Client, error) {
	client, err := matchapi.NewClient(matchapi.Config{
		BaseURL: settings.BaseURL,
		Timeout: settings.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

func newStore(settings config.Settings) *selection.Store {
	return selection.NewStore(selection.CardinalityFor(settings.Mode))
}

// openLogFile opens the log file used while the terminal UI owns stderr.
func openLogFile() (io.WriteCloser, error) {
	path, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// redirectLogs points logging at the writer from open. The returned func
// points logging back at fallback before closing that writer.
func redirectLogs(open func() (io.WriteCloser, error), fallback io.Writer) (func(), error) {
	w, err := open()
	if err != nil {
		return nil, err
	}
	if err := setupLogging(w); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	return func() {
		if err := setupLogging(fallback); err != nil {
			slog.SetDefault(slog.New(slog.NewTextHandler(fallback, nil)))
		}
		if err := w.Close(); err != nil {
			slog.Warn("Failed to close log file", "error", err)
		}
	}, nil
}
