package config

import (
	"fmt"
	"sync/atomic"
)

var active atomic.Pointer[Settings]

// Setup resolves the profile named by name, or by DJANGO_CONFIGURATION when
// name is empty, and installs it as the process-wide profile. It succeeds
// at most once per process; later calls return [ErrAlreadyConfigured].
func Setup(name string) (*Settings, error) {
	if name == "" {
		var vars envVars
		if err := parseEnv(&vars, nil); err != nil {
			return nil, err
		}
		name = vars.Configuration
	}

	env, err := ParseEnvironment(name)
	if err != nil {
		return nil, fmt.Errorf("error selecting settings profile (DJANGO_CONFIGURATION): %w", err)
	}

	if active.Load() != nil {
		return nil, ErrAlreadyConfigured
	}

	settings, err := GetSettings(env)
	if err != nil {
		return nil, err
	}

	if !active.CompareAndSwap(nil, settings) {
		return nil, ErrAlreadyConfigured
	}

	return settings, nil
}

// Active returns the profile installed by [Setup], or nil before Setup has
// succeeded.
func Active() *Settings {
	return active.Load()
}
