package config

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	project = "carbondoomsday"

	webpackAlias = "DEFAULT"

	scrapeInterval = 6 * time.Hour
)

// baseLayer holds everything the three environments share.
func baseLayer(vars envVars, baseDir string) (*Settings, error) {
	databases, err := defaultDatabase(vars.DatabaseURL)
	if err != nil {
		return nil, err
	}

	broker := vars.brokerURL()

	return &Settings{
		Project:         project,
		SchemaTitle:     "CarbonDoomsDay Web API",
		Debug:           false,
		WSGIApplication: project + ".wsgi.application",
		RootURLConf:     project + ".urls",
		Databases:       databases,
		SecretKey:       vars.Django.SecretKey,

		StaticURL:          "/static/",
		StaticRoot:         filepath.Join(baseDir, "staticfiles"),
		StaticFilesDirs:    []string{filepath.Join(baseDir, "frontend")},
		StaticFilesStorage: "whitenoise.django.GzipManifestStaticFilesStorage",
		MediaURL:           "/media/",
		MediaRoot:          filepath.Join(baseDir, "mediafiles"),

		InstalledApps: []string{
			project + ".carbondioxide",
			"django.contrib.admin",
			"django.contrib.auth",
			"django.contrib.contenttypes",
			"django.contrib.messages",
			"django.contrib.sessions",
			"django.contrib.staticfiles",
			"django_extensions",
			"django_filters",
			"rest_framework",
			"rest_framework_swagger",
			"opbeat.contrib.django",
			"corsheaders",
			"channels",
			"webpack_loader",
		},

		Middleware: []string{
			"django.middleware.security.SecurityMiddleware",
			"whitenoise.middleware.WhiteNoiseMiddleware",
			"opbeat.contrib.django.middleware.OpbeatAPMMiddleware",
			"corsheaders.middleware.CorsMiddleware",
			"django.contrib.sessions.middleware.SessionMiddleware",
			"django.middleware.common.CommonMiddleware",
			"django.middleware.csrf.CsrfViewMiddleware",
			"django.contrib.auth.middleware.AuthenticationMiddleware",
			"django.contrib.auth.middleware.SessionAuthenticationMiddleware",
			"django.contrib.messages.middleware.MessageMiddleware",
			"django.middleware.clickjacking.XFrameOptionsMiddleware",
		},

		Templates: []Template{
			{
				Backend: "django.template.backends.django.DjangoTemplates",
				Dirs:    []string{filepath.Join(baseDir, "carbondioxide", "templates")},
				AppDirs: true,
				Options: TemplateOptions{
					ContextProcessors: []string{
						"django.template.context_processors.debug",
						"django.template.context_processors.request",
						"django.contrib.auth.context_processors.auth",
						"django.contrib.messages.context_processors.messages",
					},
				},
			},
		},

		Logging: Logging{
			Version: 1,
			Handlers: map[string]LogHandler{
				"console": {Class: "logging.StreamHandler"},
			},
			Loggers: map[string]LoggerConfig{
				project: {
					Handlers:  []string{"console"},
					Level:     "DEBUG",
					Propagate: true,
				},
			},
		},

		RedisURL:            broker,
		CeleryBrokerURL:     broker,
		CeleryResultBackend: broker,
		CeleryBeatSchedule: map[string]PeriodicTask{
			"scrape-latest-co2-measurements-from-MLO": {
				Task:     project + ".carbondioxide.tasks.scrape_latest",
				Schedule: Duration(scrapeInterval),
			},
		},

		LatestCO2URL: "https://www.esrl.noaa.gov/gmd/webdata/ccgg/trends/co2_mlo_weekly.csv",
		HistoricCO2URL: "ftp://aftp.cmdl.noaa.gov/data/trace_gases/co2/in-situ/" +
			"surface/mlo/co2_mlo_surface-insitu_1_ccgg_DailyData.txt",

		RestFramework: RestFramework{
			DefaultFilterBackends: []string{
				"rest_framework_filters.backends.DjangoFilterBackend",
				"rest_framework.filters.OrderingFilter",
			},
			DefaultPaginationClass: "rest_framework.pagination.LimitOffsetPagination",
			PageSize:               50,
		},

		SwaggerSettings: Swagger{
			APIsSorter:         "alpha",
			DocExpansion:       "list",
			JSONEditor:         true,
			ShowRequestHeaders: true,
		},

		OpbeatAppID:          vars.Django.OpbeatAppID,
		OpbeatOrganizationID: vars.Django.OpbeatOrganizationID,
		OpbeatSecretToken:    vars.Django.OpbeatSecretToken,
		Opbeat: Opbeat{
			AppID:          vars.Django.OpbeatAppID,
			OrganizationID: vars.Django.OpbeatOrganizationID,
			SecretToken:    vars.Django.OpbeatSecretToken,
		},
	}, nil
}

func webpackDevelopment(baseDir string) *Settings {
	return &Settings{
		WebpackLoader: map[string]WebpackBundle{
			webpackAlias: {
				BundleDirName: "bundles/",
				StatsFile:     filepath.Join(baseDir, "webpack-stats.json"),
			},
		},
	}
}

func webpackProduction(baseDir string) *Settings {
	return &Settings{
		WebpackLoader: map[string]WebpackBundle{
			webpackAlias: {
				BundleDirName: "dist/",
				StatsFile:     filepath.Join(baseDir, "webpack-stats-prod.json"),
			},
		},
	}
}

const channelRouting = project + ".routing.appchannels"

func channelsDevelopment() *Settings {
	return &Settings{
		ChannelLayers: map[string]ChannelLayer{
			defaultAlias: {
				Backend: "asgiref.inmemory.ChannelLayer",
				Routing: channelRouting,
			},
		},
	}
}

// channelsProduction needs REDIS_URL: the layer cannot be described without
// a host to connect to.
func channelsProduction(redisURL string) (*Settings, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("%w: REDIS_URL (redis channel layer)", ErrMissingURL)
	}

	host, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &Settings{
		ChannelLayers: map[string]ChannelLayer{
			defaultAlias: {
				Backend: "asgi_redis.RedisChannelLayer",
				Routing: channelRouting,
				Config:  &ChannelHosts{Hosts: []RedisHost{host}},
			},
		},
	}, nil
}

func productionBody() *Settings {
	return &Settings{
		Environment: Production,
		AllowedHosts: []string{
			"carbondoomsday.herokuapp.com",
			"api.carbondoomsday.com",
		},
	}
}

func stagingBody() *Settings {
	return &Settings{
		Environment:  Staging,
		AllowedHosts: []string{"carbondoomsday-test.herokuapp.com"},
	}
}

func developmentBody() *Settings {
	return &Settings{
		Environment:           Development,
		Debug:                 true,
		CeleryTaskAlwaysEager: boolPtr(true),
		OpbeatDisableSend:     boolPtr(true),
		CorsOriginAllowAll:    boolPtr(true),
		CorsAllowCredentials:  boolPtr(false),
	}
}

func boolPtr(v bool) *bool {
	return &v
}
