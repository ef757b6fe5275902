package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// OpenAI key: required, and must be plain ASCII (a key pasted with a
	// stray BOM or smart quote fails at request time with an opaque error).
	if c.OpenAI.APIKey == "" {
		errs = append(errs, "OPENAI_API_KEY is required")
	} else if !isASCII(c.OpenAI.APIKey) {
		errs = append(errs, "OPENAI_API_KEY contains non-ASCII characters")
	}

	// Admin password: required in prod. Left empty in dev the admin
	// endpoints simply reject everything.
	if c.App.Env == TierProd && c.Admin.Password == "" {
		errs = append(errs, "ADMIN_PASSWORD is required in prod")
	}

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1-65535, got %d", c.Server.Port))
	}
	if c.Redis.Configured() && (c.Redis.Port < 1 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1-65535, got %d", c.Redis.Port))
	}

	if c.Quota.DailyCap < 1 {
		errs = append(errs, fmt.Sprintf("QUOTA_DAILY_CAP must be positive, got %d", c.Quota.DailyCap))
	}

	// Missing Redis in prod is not fatal: the quota store fails closed and
	// every metered request is rejected. Warn loudly.
	if c.App.Env == TierProd && !c.Redis.Configured() {
		slog.Warn("REDIS_HOST is empty in prod; all metered requests will be rejected as unavailable")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
