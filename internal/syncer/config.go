package syncer

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes the orchestrator. Zero values are replaced with defaults in
// New, so the zero Config is usable.
type Config struct {
	// PageSize is the remote page size. A batch shorter than this marks
	// the last page.
	PageSize int `envconfig:"PAGE_SIZE" default:"20"`

	// MaxAttempts bounds automatic retries of recoverable fetch errors,
	// counting the first try. 4 attempts = 1 try + 3 retries.
	MaxAttempts int `envconfig:"MAX_ATTEMPTS" default:"4"`

	// BaseBackoff is the first retry delay; it doubles per attempt.
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF" default:"1s"`

	// BackfillDebounce collapses bursts of backfill signals.
	BackfillDebounce time.Duration `envconfig:"BACKFILL_DEBOUNCE" default:"50ms"`
}

// LoadConfig reads Config from MEALSYNC_-prefixed environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("MEALSYNC", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.PageSize <= 0 {
		c.PageSize = 20
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 4
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = time.Second
	}
	if c.BackfillDebounce <= 0 {
		c.BackfillDebounce = 50 * time.Millisecond
	}
}
