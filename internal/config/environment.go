package config

import (
	"fmt"
	"strings"
)

// Environment names one of the deployment profiles.
type Environment string

const (
	Production  Environment = "Production"
	Staging     Environment = "Staging"
	Development Environment = "Development"
)

// Environments lists every known profile in declaration order.
var Environments = []Environment{Production, Staging, Development}

// ParseEnvironment maps a profile name (case-insensitive) to an [Environment].
func ParseEnvironment(name string) (Environment, error) {
	for _, env := range Environments {
		if strings.EqualFold(strings.TrimSpace(name), string(env)) {
			return env, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
}

// redisBacked reports whether the profile uses the distributed channel layer.
func (e Environment) redisBacked() bool {
	return e == Production || e == Staging
}

func (e Environment) String() string {
	return string(e)
}
