// internal/workers/collaboration/find-longest-collaboration/config.go
package findlongestcollaboration

import (
	"time"

	"collab-workers/internal/common/config"
)

type Config struct {
	Timeout           time.Duration
	CacheTTL          time.Duration
	ResultLimit       int
	DateLayouts       []string
	MissingEndAsToday bool
}

// LoadConfig derives the worker settings from the application config. A nil
// cfg yields the defaults.
func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		Timeout:           30 * time.Second,
		CacheTTL:          10 * time.Minute,
		MissingEndAsToday: true,
	}
	if cfg == nil {
		return c
	}

	w := config.GetWorkerConfig(cfg, TaskType)
	if w.Timeout > 0 {
		c.Timeout = config.GetDuration(w.Timeout)
	}
	if cfg.Collaboration.CacheTTL > 0 {
		c.CacheTTL = cfg.Collaboration.CacheTTLDuration()
	}
	c.ResultLimit = cfg.Collaboration.ResultLimit
	c.DateLayouts = cfg.Ingestion.DateLayouts
	c.MissingEndAsToday = cfg.Ingestion.MissingEndAsToday
	return c
}
