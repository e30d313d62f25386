package probe

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carbondoomsday/carbondoomsday/internal/config"
	"github.com/carbondoomsday/carbondoomsday/internal/logger"
	"github.com/carbondoomsday/carbondoomsday/internal/mock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func testSettings() *config.Settings {
	return &config.Settings{
		Databases: map[string]config.Database{
			"default": {
				Engine:     "django.db.backends.postgresql_psycopg2",
				Name:       "db",
				User:       "u",
				Password:   "p",
				Host:       "host",
				Port:       5432,
				ConnMaxAge: 500,
			},
		},
		ChannelLayers: map[string]config.ChannelLayer{
			"default": {
				Backend: "asgi_redis.RedisChannelLayer",
				Config: &config.ChannelHosts{Hosts: []config.RedisHost{
					{Host: "redis-host", Port: 6379},
				}},
			},
		},
		CeleryBrokerURL: "redis://broker:6379/1",
	}
}

func newTestProber(t *testing.T, db *sql.DB, clients map[string]RedisClient) *Prober {
	t.Helper()
	return &Prober{
		logger: logger.Nop(),
		openDB: func(driver, dsn string) (*sql.DB, error) {
			assert.Equal(t, "pgx", driver)
			assert.Equal(t, "postgres://u:p@host:5432/db", dsn)
			return db, nil
		},
		newRedis: func(opts *redis.Options) RedisClient {
			client, ok := clients[opts.Addr]
			require.True(t, ok, "unexpected redis addr %s", opts.Addr)
			return client
		},
	}
}

func pongClient(ctrl *gomock.Controller, err error) *mock.MockRedisClient {
	client := mock.NewMockRedisClient(ctrl)
	client.EXPECT().Ping(gomock.Any()).Return(redis.NewStatusResult("PONG", err))
	client.EXPECT().Close().Return(nil)
	return client
}

// ── Check ─────────────────────────────────────────────────────────────────────

// TestCheck_AllReachable verifies that the database and both redis endpoints
// are pinged and reported in order.
func TestCheck_AllReachable(t *testing.T) {
	db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	sqlMock.ExpectPing()
	sqlMock.ExpectClose()

	ctrl := gomock.NewController(t)
	p := newTestProber(t, db, map[string]RedisClient{
		"redis-host:6379": pongClient(ctrl, nil),
		"broker:6379":     pongClient(ctrl, nil),
	})

	results := p.Check(context.Background(), testSettings())

	require.Len(t, results, 3)
	assert.Equal(t, "database", results[0].Kind)
	assert.Equal(t, "django.db.backends.postgresql_psycopg2://host:5432/db", results[0].Target)
	assert.Equal(t, "redis-host:6379", results[1].Target)
	assert.Equal(t, "broker:6379", results[2].Target)
	for _, r := range results {
		assert.Equal(t, StatusOK, r.Status, r.Target)
		assert.NoError(t, r.Err)
	}
	assert.False(t, Failed(results))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

// TestCheck_DatabasePingFails verifies that a failed ping is reported with a
// hint and does not stop the redis checks.
func TestCheck_DatabasePingFails(t *testing.T) {
	db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	sqlMock.ExpectPing().WillReturnError(&pgconn.PgError{Code: pgerrcode.InvalidPassword})

	ctrl := gomock.NewController(t)
	p := newTestProber(t, db, map[string]RedisClient{
		"redis-host:6379": pongClient(ctrl, nil),
		"broker:6379":     pongClient(ctrl, nil),
	})

	results := p.Check(context.Background(), testSettings())

	require.Len(t, results, 3)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, "check the credentials in DATABASE_URL", results[0].Hint)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(results[0].Err, &pgErr))
	assert.Equal(t, StatusOK, results[1].Status)
	assert.True(t, Failed(results))
}

// TestCheck_RedisPingFails verifies that an unreachable redis endpoint is
// reported as failed.
func TestCheck_RedisPingFails(t *testing.T) {
	db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	sqlMock.ExpectPing()

	ctrl := gomock.NewController(t)
	p := newTestProber(t, db, map[string]RedisClient{
		"redis-host:6379": pongClient(ctrl, errors.New("connection refused")),
		"broker:6379":     pongClient(ctrl, nil),
	})

	results := p.Check(context.Background(), testSettings())

	require.Len(t, results, 3)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.ErrorContains(t, results[1].Err, "connection refused")
	assert.Equal(t, StatusOK, results[2].Status)
}

// TestCheck_OpenFails verifies that a driver error when opening the
// connection is reported.
func TestCheck_OpenFails(t *testing.T) {
	s := testSettings()
	s.ChannelLayers = nil
	s.CeleryBrokerURL = ""

	p := &Prober{
		logger: logger.Nop(),
		openDB: func(driver, dsn string) (*sql.DB, error) {
			return nil, assert.AnError
		},
	}

	results := p.Check(context.Background(), s)

	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.ErrorIs(t, results[0].Err, assert.AnError)
}

// TestCheck_SkipsUnsetDatabase verifies that a profile without DATABASE_URL
// is skipped instead of failed.
func TestCheck_SkipsUnsetDatabase(t *testing.T) {
	s := testSettings()
	s.Databases = map[string]config.Database{"default": {ConnMaxAge: 500}}
	s.ChannelLayers = nil
	s.CeleryBrokerURL = ""

	p := &Prober{logger: logger.Nop()}
	results := p.Check(context.Background(), s)

	require.Len(t, results, 1)
	assert.Equal(t, StatusSkipped, results[0].Status)
	assert.Equal(t, "<unset>", results[0].Target)
	assert.ErrorIs(t, results[0].Err, ErrNoDatabase)
	assert.False(t, Failed(results))
}

// ── redisTargets ──────────────────────────────────────────────────────────────

// TestRedisTargets_Deduplicates verifies that a broker pointing at the
// channel layer host is only probed once.
func TestRedisTargets_Deduplicates(t *testing.T) {
	s := testSettings()
	s.CeleryBrokerURL = "redis://redis-host:6379/0"

	targets := redisTargets(s)

	require.Len(t, targets, 1)
	assert.Equal(t, "redis-host:6379", targets[0].name)
}

// TestRedisTargets_MalformedBroker verifies that an unparsable broker URL
// becomes a failed target.
func TestRedisTargets_MalformedBroker(t *testing.T) {
	s := testSettings()
	s.CeleryBrokerURL = "amqp://guest@rabbit//"

	targets := redisTargets(s)

	require.Len(t, targets, 2)
	assert.ErrorIs(t, targets[1].err, config.ErrMalformedURL)

	result := (&Prober{logger: logger.Nop()}).checkRedis(context.Background(), targets[1])
	assert.Equal(t, StatusFailed, result.Status)
}

// TestRedisTargets_InMemoryLayer verifies that the development layer yields
// only the broker.
func TestRedisTargets_InMemoryLayer(t *testing.T) {
	s := testSettings()
	s.ChannelLayers = map[string]config.ChannelLayer{
		"default": {Backend: "asgiref.inmemory.ChannelLayer"},
	}

	targets := redisTargets(s)

	require.Len(t, targets, 1)
	assert.Equal(t, "broker:6379", targets[0].name)
}

func TestPostgresHint(t *testing.T) {
	assert.Equal(t, "database named in DATABASE_URL does not exist",
		postgresHint(&pgconn.PgError{Code: pgerrcode.InvalidCatalogName}))
	assert.Empty(t, postgresHint(&pgconn.PgError{Code: pgerrcode.SyntaxError}))
	assert.Empty(t, postgresHint(errors.New("plain")))
}

// TestCheck_RedisTLS verifies that a rediss:// channel host is dialled with
// TLS and its ACL username.
func TestCheck_RedisTLS(t *testing.T) {
	host, err := config.ParseRedisURL("rediss://alice:pw@redis-host:6380/0")
	require.NoError(t, err)

	s := testSettings()
	s.Databases = map[string]config.Database{"default": {ConnMaxAge: 500}}
	s.ChannelLayers["default"] = config.ChannelLayer{
		Backend: "asgi_redis.RedisChannelLayer",
		Config:  &config.ChannelHosts{Hosts: []config.RedisHost{host}},
	}
	s.CeleryBrokerURL = ""

	ctrl := gomock.NewController(t)
	p := &Prober{
		logger: logger.Nop(),
		newRedis: func(opts *redis.Options) RedisClient {
			assert.Equal(t, "redis-host:6380", opts.Addr)
			assert.Equal(t, "alice", opts.Username)
			assert.NotNil(t, opts.TLSConfig)
			return pongClient(ctrl, nil)
		},
	}

	results := p.Check(context.Background(), s)

	require.Len(t, results, 2)
	assert.Equal(t, StatusOK, results[1].Status)
}
