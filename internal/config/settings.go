package config

import (
	"fmt"
	"time"

	"github.com/Veraticus/wallmatch/internal/common"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/spf13/viper"
)

// Fixed defaults for every setting.
const (
	DefaultBaseURL         = "http://127.0.0.1:5000"
	DefaultMaxEncodedBytes = 10 * 1024 * 1024
	DefaultStatusInterval  = 3 * time.Second
	DefaultSubmitLabel     = "Find Perfect Artworks"
)

// DefaultStatusMessages are shown in order while a match request is pending.
var DefaultStatusMessages = []string{
	"Finding best Wall art",
	"AI is attaching best artwork to your wall",
}

// Settings is the resolved client configuration.
type Settings struct {
	BaseURL         string
	Mode            model.SelectionMode
	StatusMessages  []string
	Timeout         time.Duration
	StatusInterval  time.Duration
	Budget          float64
	MaxEncodedBytes int64
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("match.budget", model.DefaultBudget)
	v.SetDefault("match.max_encoded_bytes", DefaultMaxEncodedBytes)
	v.SetDefault("match.status_interval", DefaultStatusInterval)
	v.SetDefault("match.status_messages", DefaultStatusMessages)
	v.SetDefault("selection.mode", string(model.ModeMulti))
}

// Load resolves Settings from a viper instance.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		BaseURL:         v.GetString("api.base_url"),
		Timeout:         v.GetDuration("api.timeout"),
		Budget:          v.GetFloat64("match.budget"),
		MaxEncodedBytes: v.GetInt64("match.max_encoded_bytes"),
		StatusInterval:  v.GetDuration("match.status_interval"),
		StatusMessages:  v.GetStringSlice("match.status_messages"),
		Mode:            model.SelectionMode(v.GetString("selection.mode")),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Default returns Settings built only from the fixed defaults.
func Default() Settings {
	return Settings{
		BaseURL:         DefaultBaseURL,
		Mode:            model.ModeMulti,
		StatusMessages:  append([]string(nil), DefaultStatusMessages...),
		StatusInterval:  DefaultStatusInterval,
		Budget:          model.DefaultBudget,
		MaxEncodedBytes: DefaultMaxEncodedBytes,
	}
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if s.Mode != model.ModeMulti && s.Mode != model.ModeSingle {
		return fmt.Errorf("%w: selection.mode must be %q or %q, got %q",
			common.ErrInvalidConfig, model.ModeMulti, model.ModeSingle, s.Mode)
	}
	if s.MaxEncodedBytes <= 0 {
		return fmt.Errorf("%w: match.max_encoded_bytes must be positive", common.ErrInvalidConfig)
	}
	if s.StatusInterval <= 0 {
		return fmt.Errorf("%w: match.status_interval must be positive", common.ErrInvalidConfig)
	}
	if len(s.StatusMessages) == 0 {
		return fmt.Errorf("%w: match.status_messages is empty", common.ErrInvalidConfig)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
