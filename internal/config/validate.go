package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAward(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if strings.TrimSpace(c.API.Bind) == "" {
		return errors.New("api.bind must be set")
	}
	return nil
}

func (c *Config) validateAward() error {
	if c.Award.CurrentEdition < 1 {
		return errors.New("award.current_edition must be >= 1")
	}
	return nil
}

func (c *Config) validateSources() error {
	if strings.TrimSpace(c.Sources.RegistryBaseURL) == "" {
		return errors.New("sources.registry_base_url must be set")
	}
	if strings.TrimSpace(c.Sources.IMDbBaseURL) == "" {
		return errors.New("sources.imdb_base_url must be set")
	}
	if c.Sources.RequestTimeout <= 0 {
		return errors.New("sources.request_timeout must be positive (seconds)")
	}
	if c.Sources.FetchDelay < 0 {
		return errors.New("sources.fetch_delay must be >= 0 (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
