// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	environ := map[string]string{
		"DJANGO_CONFIGURATION": "Staging",
		"DATABASE_URL":         "postgres://u:p@host:5432/db",
		"REDIS_URL":            "redis://redis-host:6379",

		// DJANGO_ prefixed values
		"DJANGO_BASE_DIR":                 "/srv/app",
		"DJANGO_SECRET_KEY":               "s3cret",
		"DJANGO_OPBEAT_SECRET_TOKEN":      "token",
		"DJANGO_REDIS_URL":                "redis://broker:6379/1",
		"DJANGO_OPBEAT_APP_ID":            "app",
		"DJANGO_OPBEAT_ORGANIZATION_ID":   "org",
		"DJANGO_DEBUG":                    "true",
		"DJANGO_CELERY_TASK_ALWAYS_EAGER": "false",
		"DJANGO_OPBEAT_DISABLE_SEND":      "1",
		"DJANGO_CORS_ORIGIN_ALLOW_ALL":    "no",
		"DJANGO_CORS_ALLOW_CREDENTIALS":   "yes",
	}

	// Act
	var vars envVars
	err := parseEnv(&vars, environ)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "Staging", vars.Configuration)
	assert.Equal(t, "postgres://u:p@host:5432/db", vars.DatabaseURL)
	assert.Equal(t, "redis://redis-host:6379", vars.RedisURL)

	assert.Equal(t, "/srv/app", vars.Django.BaseDir)
	assert.Equal(t, "s3cret", vars.Django.SecretKey)
	assert.Equal(t, "token", vars.Django.OpbeatSecretToken)
	assert.Equal(t, "redis://broker:6379/1", vars.Django.RedisURL)
	assert.Equal(t, "app", vars.Django.OpbeatAppID)
	assert.Equal(t, "org", vars.Django.OpbeatOrganizationID)
	assert.Equal(t, "true", vars.Django.Debug)
	assert.Equal(t, "false", vars.Django.CeleryTaskAlwaysEager)
	assert.Equal(t, "1", vars.Django.OpbeatDisableSend)
	assert.Equal(t, "no", vars.Django.CorsOriginAllowAll)
	assert.Equal(t, "yes", vars.Django.CorsAllowCredentials)

	assert.Equal(t, "redis://broker:6379/1", vars.brokerURL())
	assert.Empty(t, vars.missingSecrets())
}

func TestParseEnv_Empty(t *testing.T) {
	// Act
	var vars envVars
	err := parseEnv(&vars, map[string]string{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, envVars{}, vars)
	assert.Equal(t, []string{"DJANGO_SECRET_KEY", "DJANGO_OPBEAT_SECRET_TOKEN"}, vars.missingSecrets())
}

func TestParseEnv_UnprefixedSecretIsIgnored(t *testing.T) {
	var vars envVars
	err := parseEnv(&vars, map[string]string{"SECRET_KEY": "s3cret"})

	require.NoError(t, err)
	assert.Empty(t, vars.Django.SecretKey)
	assert.Contains(t, vars.missingSecrets(), "DJANGO_SECRET_KEY")
}

func TestBrokerURL_FallsBackToRedisURL(t *testing.T) {
	vars := envVars{RedisURL: "redis://redis-host:6379"}
	assert.Equal(t, "redis://redis-host:6379", vars.brokerURL())
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		raw   string
		value bool
		ok    bool
	}{
		{raw: "", value: false, ok: false},
		{raw: "   ", value: false, ok: false},
		{raw: "true", value: true, ok: true},
		{raw: "True", value: true, ok: true},
		{raw: "YES", value: true, ok: true},
		{raw: "y", value: true, ok: true},
		{raw: "1", value: true, ok: true},
		{raw: "on", value: true, ok: true},
		{raw: "false", value: false, ok: true},
		{raw: "No", value: false, ok: true},
		{raw: "n", value: false, ok: true},
		{raw: "0", value: false, ok: true},
		{raw: " off ", value: false, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			value, ok, err := parseBool("DJANGO_DEBUG", tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestParseBool_Malformed(t *testing.T) {
	_, ok, err := parseBool("DJANGO_DEBUG", "maybe")

	require.ErrorIs(t, err, ErrMalformedBool)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "DJANGO_DEBUG")
}
