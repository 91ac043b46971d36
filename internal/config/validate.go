package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}
	if c.Auth.AdminTokenTTL <= 0 {
		return fmt.Errorf("auth.admin_token_ttl must be > 0 (got %v)", c.Auth.AdminTokenTTL)
	}
	if c.Auth.ResetTokenTTL <= 0 {
		return fmt.Errorf("auth.reset_token_ttl must be > 0 (got %v)", c.Auth.ResetTokenTTL)
	}

	if err := c.Uploads.validate(); err != nil {
		return fmt.Errorf("uploads: %w", err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (u *UploadsConfig) validate() error {
	if strings.TrimSpace(u.Dir) == "" {
		return fmt.Errorf("dir must not be empty")
	}
	if u.MaxCSVBytes <= 0 {
		return fmt.Errorf("max_csv_bytes must be > 0 (got %d)", u.MaxCSVBytes)
	}
	if u.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be > 0 (got %d)", u.MaxFileBytes)
	}
	if u.MaxImgBytes <= 0 {
		return fmt.Errorf("max_img_bytes must be > 0 (got %d)", u.MaxImgBytes)
	}
	return nil
}
