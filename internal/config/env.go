// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envVars is the raw view of every environment variable the profiles read.
// Booleans are kept as strings so that "unset" and "false" stay distinct.
type envVars struct {
	// Configuration selects the profile.
	// Env: DJANGO_CONFIGURATION
	Configuration string `env:"DJANGO_CONFIGURATION"`

	// DatabaseURL describes the default database.
	// Env: DATABASE_URL
	DatabaseURL string `env:"DATABASE_URL"`

	// RedisURL locates the Redis server behind the channel layer.
	// Env: REDIS_URL
	RedisURL string `env:"REDIS_URL"`

	Django djangoVars `envPrefix:"DJANGO_"`
}

// djangoVars holds the DJANGO_-prefixed values.
type djangoVars struct {
	BaseDir string `env:"BASE_DIR"`

	SecretKey         string `env:"SECRET_KEY"`
	OpbeatSecretToken string `env:"OPBEAT_SECRET_TOKEN"`

	RedisURL             string `env:"REDIS_URL"`
	OpbeatAppID          string `env:"OPBEAT_APP_ID"`
	OpbeatOrganizationID string `env:"OPBEAT_ORGANIZATION_ID"`

	Debug                 string `env:"DEBUG"`
	CeleryTaskAlwaysEager string `env:"CELERY_TASK_ALWAYS_EAGER"`
	OpbeatDisableSend     string `env:"OPBEAT_DISABLE_SEND"`
	CorsOriginAllowAll    string `env:"CORS_ORIGIN_ALLOW_ALL"`
	CorsAllowCredentials  string `env:"CORS_ALLOW_CREDENTIALS"`
}

// brokerURL is DJANGO_REDIS_URL, or REDIS_URL when the former is unset.
func (v envVars) brokerURL() string {
	if v.Django.RedisURL != "" {
		return v.Django.RedisURL
	}

	return v.RedisURL
}

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. When environ is nil the process environment is used.
func parseEnv(cfg any, environ map[string]string) error {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

var (
	truthy = []string{"yes", "y", "true", "t", "1", "on"}
	falsy  = []string{"no", "n", "false", "f", "0", "off"}
)

// parseBool interprets raw as a boolean environment value. An empty raw value
// means the variable is unset and reports ok=false.
func parseBool(name, raw string) (value, ok bool, err error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return false, false, nil
	}

	for _, s := range truthy {
		if normalized == s {
			return true, true, nil
		}
	}
	for _, s := range falsy {
		if normalized == s {
			return false, true, nil
		}
	}

	return false, false, fmt.Errorf("%w: %s=%q", ErrMalformedBool, name, raw)
}

// missingSecrets names the secret variables that are unset or empty.
func (v envVars) missingSecrets() []string {
	var missing []string
	if v.Django.SecretKey == "" {
		missing = append(missing, "DJANGO_SECRET_KEY")
	}
	if v.Django.OpbeatSecretToken == "" {
		missing = append(missing, "DJANGO_OPBEAT_SECRET_TOKEN")
	}

	return missing
}
