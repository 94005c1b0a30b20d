package tui

import (
	"github.com/Veraticus/finyo-console/internal/service"
	"github.com/Veraticus/finyo-console/internal/tui/themes"
	"github.com/Veraticus/finyo-console/internal/tui/viewmodel"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Gateway    service.Gateway
	Width      int
	Height     int
	InitialTab viewmodel.Tab
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:      themes.Default,
		Width:      100,
		Height:     32,
		InitialTab: viewmodel.TabDashboard,
	}
}

// WithGateway sets the backend gateway.
func WithGateway(gw service.Gateway) Option {
	return func(c *Config) {
		c.Gateway = gw
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

// WithInitialTab selects the tab shown at startup.
func WithInitialTab(tab viewmodel.Tab) Option {
	return func(c *Config) {
		c.InitialTab = tab
	}
}
