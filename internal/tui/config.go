package tui

import (
	"context"

	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/Veraticus/wallmatch/internal/tui/themes"
)

// CatalogSource supplies the facet values offered by the form.
type CatalogSource interface {
	Catalog(ctx context.Context) model.Catalog
}

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	CatalogSource CatalogSource
	SaveDir       string
	Catalog       model.Catalog
	Width         int
	Height        int
	ShowHelp      bool
	MouseSupport  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Catalog:      model.DefaultCatalog(),
		SaveDir:      ".",
		Width:        80,
		Height:       24,
		ShowHelp:     true,
		MouseSupport: false,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithCatalog sets the facet values shown before any remote catalog loads.
func WithCatalog(catalog model.Catalog) Option {
	return func(c *Config) {
		c.Catalog = catalog
	}
}

// WithCatalogSource loads facet values from the backend on start.
func WithCatalogSource(source CatalogSource) Option {
	return func(c *Config) {
		c.CatalogSource = source
	}
}

// WithSaveDir sets where composite previews are downloaded.
func WithSaveDir(dir string) Option {
	return func(c *Config) {
		c.SaveDir = dir
	}
}

// WithHelp toggles the key help footer.
func WithHelp(enabled bool) Option {
	return func(c *Config) {
		c.ShowHelp = enabled
	}
}

// WithMouse enables mouse cell motion events.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}
