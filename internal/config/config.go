// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
)

// Settings is the fully resolved settings profile of one environment.
// JSON field names are the keys the web framework expects, so
// [Settings.Mapping] is a plain encode/decode round trip.
//
// A *Settings returned by [GetSettings] or [Active] is shared and must be
// treated as read-only.
type Settings struct {
	// Project is the project package name.
	Project string `json:"PROJECT"`

	// SchemaTitle is the title of the generated API schema.
	SchemaTitle string `json:"SCHEMA_TITLE"`

	// Environment is the name of the profile these settings belong to.
	Environment Environment `json:"ENVIRONMENT"`

	// Debug enables framework debug mode.
	// Env: DJANGO_DEBUG
	Debug bool `json:"DEBUG"`

	WSGIApplication string `json:"WSGI_APPLICATION"`
	RootURLConf     string `json:"ROOT_URLCONF"`

	// Databases holds the connection descriptors keyed by alias; the only
	// alias is "default", parsed from DATABASE_URL.
	Databases map[string]Database `json:"DATABASES"`

	// SecretKey signs sessions and tokens. Required.
	// Env: DJANGO_SECRET_KEY
	SecretKey string `json:"SECRET_KEY"`

	StaticURL          string   `json:"STATIC_URL"`
	StaticRoot         string   `json:"STATIC_ROOT"`
	StaticFilesDirs    []string `json:"STATICFILES_DIRS"`
	StaticFilesStorage string   `json:"STATICFILES_STORAGE"`
	MediaURL           string   `json:"MEDIA_URL"`
	MediaRoot          string   `json:"MEDIA_ROOT"`

	// InstalledApps is the ordered list of enabled application modules.
	InstalledApps []string `json:"INSTALLED_APPS"`

	// Middleware is the ordered middleware chain.
	Middleware []string `json:"MIDDLEWARE_CLASSES"`

	Templates []Template `json:"TEMPLATES"`
	Logging   Logging    `json:"LOGGING"`

	// RedisURL is the task queue broker URL.
	// Env: DJANGO_REDIS_URL, falling back to REDIS_URL
	RedisURL            string                  `json:"REDIS_URL"`
	CeleryBrokerURL     string                  `json:"CELERY_BROKER_URL"`
	CeleryResultBackend string                  `json:"CELERY_RESULT_BACKEND"`
	CeleryBeatSchedule  map[string]PeriodicTask `json:"CELERY_BEAT_SCHEDULE"`

	// CeleryTaskAlwaysEager runs tasks inline instead of queueing them.
	// Declared by Development only.
	// Env: DJANGO_CELERY_TASK_ALWAYS_EAGER
	CeleryTaskAlwaysEager *bool `json:"CELERY_TASK_ALWAYS_EAGER,omitempty"`

	// LatestCO2URL and HistoricCO2URL are the upstream measurement sources
	// scraped by the periodic task.
	LatestCO2URL   string `json:"LATEST_CO2_URL"`
	HistoricCO2URL string `json:"HISTORIC_CO2_URL"`

	RestFramework   RestFramework `json:"REST_FRAMEWORK"`
	SwaggerSettings Swagger       `json:"SWAGGER_SETTINGS"`

	// Opbeat APM credentials. The secret token is required.
	// Env: DJANGO_OPBEAT_APP_ID, DJANGO_OPBEAT_ORGANIZATION_ID,
	// DJANGO_OPBEAT_SECRET_TOKEN
	OpbeatAppID          string `json:"OPBEAT_APP_ID"`
	OpbeatOrganizationID string `json:"OPBEAT_ORGANIZATION_ID"`
	OpbeatSecretToken    string `json:"OPBEAT_SECRET_TOKEN"`
	Opbeat               Opbeat `json:"OPBEAT"`

	// OpbeatDisableSend keeps the APM client from shipping data.
	// Declared by Development only.
	// Env: DJANGO_OPBEAT_DISABLE_SEND
	OpbeatDisableSend *bool `json:"OPBEAT_DISABLE_SEND,omitempty"`

	// AllowedHosts lists the host names the site may be served under.
	AllowedHosts []string `json:"ALLOWED_HOSTS"`

	// CORS toggles. Declared by Development only.
	// Env: DJANGO_CORS_ORIGIN_ALLOW_ALL, DJANGO_CORS_ALLOW_CREDENTIALS
	CorsOriginAllowAll   *bool `json:"CORS_ORIGIN_ALLOW_ALL,omitempty"`
	CorsAllowCredentials *bool `json:"CORS_ALLOW_CREDENTIALS,omitempty"`

	WebpackLoader map[string]WebpackBundle `json:"WEBPACK_LOADER"`
	ChannelLayers map[string]ChannelLayer  `json:"CHANNEL_LAYERS"`
}

// Database is a connection descriptor in the framework's DATABASES format.
type Database struct {
	Engine     string            `json:"ENGINE,omitempty"`
	Name       string            `json:"NAME,omitempty"`
	User       string            `json:"USER,omitempty"`
	Password   string            `json:"PASSWORD,omitempty"`
	Host       string            `json:"HOST,omitempty"`
	Port       int               `json:"PORT,omitempty"`
	ConnMaxAge int               `json:"CONN_MAX_AGE"`
	Options    map[string]string `json:"OPTIONS,omitempty"`
}

// Template describes one template engine backend.
type Template struct {
	Backend string          `json:"BACKEND"`
	Dirs    []string        `json:"DIRS"`
	AppDirs bool            `json:"APP_DIRS"`
	Options TemplateOptions `json:"OPTIONS"`
}

type TemplateOptions struct {
	ContextProcessors []string `json:"context_processors"`
}

// Logging is a dictConfig-style logging tree.
type Logging struct {
	Version  int                     `json:"version"`
	Handlers map[string]LogHandler   `json:"handlers"`
	Loggers  map[string]LoggerConfig `json:"loggers"`
}

type LogHandler struct {
	Class string `json:"class"`
}

type LoggerConfig struct {
	Handlers  []string `json:"handlers"`
	Level     string   `json:"level"`
	Propagate bool     `json:"propagate"`
}

// PeriodicTask is one entry of the task queue's beat schedule.
type PeriodicTask struct {
	Task     string   `json:"task"`
	Schedule Duration `json:"schedule"`
}

type RestFramework struct {
	DefaultFilterBackends  []string `json:"DEFAULT_FILTER_BACKENDS"`
	DefaultPaginationClass string   `json:"DEFAULT_PAGINATION_CLASS"`
	PageSize               int      `json:"PAGE_SIZE"`
}

type Swagger struct {
	APIsSorter         string `json:"APIS_SORTER"`
	DocExpansion       string `json:"DOC_EXPANSION"`
	JSONEditor         bool   `json:"JSON_EDITOR"`
	ShowRequestHeaders bool   `json:"SHOW_REQUEST_HEADERS"`
}

// Opbeat is the nested APM client mapping.
type Opbeat struct {
	AppID          string `json:"APP_ID"`
	OrganizationID string `json:"ORGANIZATION_ID"`
	SecretToken    string `json:"SECRET_TOKEN"`
}

// WebpackBundle tells the webpack loader where compiled bundles live.
type WebpackBundle struct {
	BundleDirName string `json:"BUNDLE_DIR_NAME"`
	StatsFile     string `json:"STATS_FILE"`
}

// ChannelLayer configures the realtime channel transport.
type ChannelLayer struct {
	Backend string        `json:"BACKEND"`
	Routing string        `json:"ROUTING"`
	Config  *ChannelHosts `json:"CONFIG,omitempty"`
}

type ChannelHosts struct {
	Hosts []RedisHost `json:"hosts"`
}

// Mapping returns the profile as the nested setting-name → value mapping the
// web framework consumes.
func (s *Settings) Mapping() (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}

	var mapping map[string]any
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, fmt.Errorf("error decoding settings mapping: %w", err)
	}

	return mapping, nil
}

// DefaultDatabase returns the "default" database descriptor.
func (s *Settings) DefaultDatabase() Database {
	return s.Databases[defaultAlias]
}

// DefaultChannelLayer returns the "default" channel layer.
func (s *Settings) DefaultChannelLayer() ChannelLayer {
	return s.ChannelLayers[defaultAlias]
}
