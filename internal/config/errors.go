package config

import "errors"

// Errors returned while resolving a settings profile. Every one of them is a
// deployment-configuration error and is meant to stop the process before it
// serves traffic.
var (
	// ErrMissingSecret indicates that a secret setting has no value in the
	// environment. Secrets are never defaulted.
	ErrMissingSecret = errors.New("required secret is not set")
	// ErrMissingURL indicates that a profile needs a URL (e.g. REDIS_URL for
	// the Redis channel layer) that the environment does not provide.
	ErrMissingURL = errors.New("required url is not set")
	// ErrMalformedURL indicates that a database or redis URL is present but
	// cannot be split into its required parts.
	ErrMalformedURL = errors.New("malformed url")
	// ErrMalformedBool indicates that a boolean environment variable holds
	// something other than a recognised truthy or falsy string.
	ErrMalformedBool = errors.New("malformed boolean value")
	// ErrUnknownEnvironment indicates an environment name other than
	// Production, Staging or Development.
	ErrUnknownEnvironment = errors.New("unknown environment")
	// ErrAlreadyConfigured is returned by [Setup] when the process already
	// holds an active profile.
	ErrAlreadyConfigured = errors.New("settings already configured")
	// ErrUnknownFormat indicates an unsupported output format flag.
	ErrUnknownFormat = errors.New("unknown output format")
)
