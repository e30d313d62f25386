package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
)

type profileBuilder struct {
	env     Environment
	environ map[string]string
	vars    envVars
	baseDir string
	layers  []*Settings
	err     error
}

func newProfileBuilder(env Environment) *profileBuilder {
	return &profileBuilder{
		env:    env,
		layers: make([]*Settings, 0, 4),
	}
}

// GetSettings resolves the profile of env from the process environment.
//
// Layers are applied in this order (last write wins):
//  1. base
//  2. channel overlay
//  3. webpack overlay
//  4. environment body
//
// Returns an error wrapping [ErrMissingSecret], [ErrMissingURL],
// [ErrMalformedURL] or [ErrMalformedBool] when the environment is incomplete.
func GetSettings(env Environment) (*Settings, error) {
	return newProfileBuilder(env).
		withEnv().
		withBaseDir().
		withLayers().
		build()
}

func (b *profileBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building %s settings: %w", b.env, b.err)
	}

	settings, err := mergeLayers(b.layers...)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(settings, b.vars.Django); err != nil {
		return nil, fmt.Errorf("error applying env overrides to %s settings: %w", b.env, err)
	}

	if settings.AllowedHosts == nil {
		settings.AllowedHosts = []string{}
	}

	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s settings: %w", b.env, err)
	}

	return settings, nil
}

// withEnviron makes the builder read variables from environ instead of the
// process environment.
func (b *profileBuilder) withEnviron(environ map[string]string) *profileBuilder {
	b.environ = environ
	return b
}

func (b *profileBuilder) withEnv() *profileBuilder {
	if err := parseEnv(&b.vars, b.environ); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	if missing := b.vars.missingSecrets(); len(missing) > 0 {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", ")))
	}

	return b
}

// withBaseDir resolves BASE_DIR: DJANGO_BASE_DIR when set, otherwise the
// working directory.
func (b *profileBuilder) withBaseDir() *profileBuilder {
	dir := b.vars.Django.BaseDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			b.err = errors.Join(b.err, fmt.Errorf("error resolving base dir: %w", err))
			return b
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error resolving base dir: %w", err))
		return b
	}

	b.baseDir = abs
	return b
}

func (b *profileBuilder) withLayers() *profileBuilder {
	base, err := baseLayer(b.vars, b.baseDir)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.layers = append(b.layers, base)

	switch b.env {
	case Production, Staging:
		channels, err := channelsProduction(b.vars.RedisURL)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.layers = append(b.layers, channels, webpackProduction(b.baseDir))
		if b.env == Production {
			b.layers = append(b.layers, productionBody())
		} else {
			b.layers = append(b.layers, stagingBody())
		}
	case Development:
		b.layers = append(b.layers, channelsDevelopment(), webpackDevelopment(b.baseDir), developmentBody())
	default:
		b.err = errors.Join(b.err, fmt.Errorf("%w: %q", ErrUnknownEnvironment, b.env))
	}

	return b
}

// mergeLayers folds layers into a new record in order. Non-zero fields of a
// later layer replace those of earlier ones; maps are merged key by key.
func mergeLayers(layers ...*Settings) (*Settings, error) {
	settings := new(Settings)
	for _, layer := range layers {
		if err := mergo.Merge(settings, layer, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging settings layers: %w", err)
		}
	}

	return settings, nil
}

// applyEnvOverrides lets DJANGO_* booleans replace the defaults of the
// settings this profile declares. Toggles a profile does not declare stay
// absent whatever the environment says.
func applyEnvOverrides(s *Settings, vars djangoVars) error {
	var errs []error

	debug, ok, err := parseBool("DJANGO_DEBUG", vars.Debug)
	if err != nil {
		errs = append(errs, err)
	} else if ok {
		s.Debug = debug
	}

	override := func(dst **bool, name, raw string) {
		if *dst == nil {
			return
		}
		v, ok, err := parseBool(name, raw)
		if err != nil {
			errs = append(errs, err)
			return
		}
		if ok {
			*dst = boolPtr(v)
		}
	}

	override(&s.CeleryTaskAlwaysEager, "DJANGO_CELERY_TASK_ALWAYS_EAGER", vars.CeleryTaskAlwaysEager)
	override(&s.OpbeatDisableSend, "DJANGO_OPBEAT_DISABLE_SEND", vars.OpbeatDisableSend)
	override(&s.CorsOriginAllowAll, "DJANGO_CORS_ORIGIN_ALLOW_ALL", vars.CorsOriginAllowAll)
	override(&s.CorsAllowCredentials, "DJANGO_CORS_ALLOW_CREDENTIALS", vars.CorsAllowCredentials)

	return errors.Join(errs...)
}

// validate checks the invariants every resolved profile must satisfy before
// it is handed to consumers.
func (s *Settings) validate() error {
	if s.SecretKey == "" || s.OpbeatSecretToken == "" {
		return ErrMissingSecret
	}

	if _, ok := s.Databases[defaultAlias]; !ok {
		return errors.New("no default database")
	}
	if _, ok := s.ChannelLayers[defaultAlias]; !ok {
		return errors.New("no default channel layer")
	}

	return nil
}
