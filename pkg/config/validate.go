package config

import (
	"net/url"

	"chef-scraper/pkg/utils"
)

// Validate checks the configuration for values the scraper cannot run with.
// Call after ApplyDefaults
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return utils.WrapErrorf(utils.ErrConfigValidation, "base_url %q is not an absolute URL", c.BaseURL)
	}

	if c.MaxAttempts < 1 {
		return utils.WrapErrorf(utils.ErrConfigValidation, "max_attempts must be >= 1, got %d", c.MaxAttempts)
	}
	if c.MinRetryDelay < 0 {
		return utils.WrapErrorf(utils.ErrConfigValidation, "min_retry_delay must not be negative")
	}
	if c.MaxRetryDelay < c.MinRetryDelay {
		return utils.WrapErrorf(utils.ErrConfigValidation,
			"max_retry_delay (%v) must be >= min_retry_delay (%v)", c.MaxRetryDelay, c.MinRetryDelay)
	}
	if c.MaxWorkers < 1 {
		return utils.WrapErrorf(utils.ErrConfigValidation, "max_workers must be >= 1, got %d", c.MaxWorkers)
	}
	if c.SolutionsDir == "" {
		return utils.WrapErrorf(utils.ErrConfigValidation, "solutions_dir must not be empty")
	}
	return nil
}
