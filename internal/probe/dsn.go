package probe

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/carbondoomsday/carbondoomsday/internal/config"
	"github.com/go-sql-driver/mysql"
)

// database/sql driver names registered by the blank imports in sql.go.
const (
	driverPostgres = "pgx"
	driverMySQL    = "mysql"
	driverSQLite   = "sqlite3"
)

var drivers = map[string]string{
	"django.db.backends.postgresql_psycopg2":    driverPostgres,
	"django.contrib.gis.db.backends.postgis":    driverPostgres,
	"django_redshift_backend":                   driverPostgres,
	"django.db.backends.mysql":                  driverMySQL,
	"django.contrib.gis.db.backends.mysql":      driverMySQL,
	"mysql.connector.django":                    driverMySQL,
	"django.db.backends.sqlite3":                driverSQLite,
	"django.contrib.gis.db.backends.spatialite": driverSQLite,
}

// DSN rebuilds a database/sql driver name and data source name from a parsed
// database descriptor.
func DSN(db config.Database) (driver, dsn string, err error) {
	if db.Engine == "" {
		return "", "", ErrNoDatabase
	}

	driver, ok := drivers[db.Engine]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedEngine, db.Engine)
	}

	switch driver {
	case driverPostgres:
		return driver, postgresDSN(db), nil
	case driverMySQL:
		return driver, mysqlDSN(db), nil
	default:
		return driver, sqliteDSN(db), nil
	}
}

func postgresDSN(db config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   hostPort(db.Host, db.Port),
		Path:   "/" + db.Name,
	}

	query := url.Values{}
	for key, value := range db.Options {
		query.Set(key, value)
	}

	// unix socket directory
	if isSocket(db.Host) {
		u.Host = ""
		query.Set("host", db.Host)
		if db.Port != 0 {
			query.Set("port", strconv.Itoa(db.Port))
		}
	}

	if db.User != "" {
		if db.Password != "" {
			u.User = url.UserPassword(db.User, db.Password)
		} else {
			u.User = url.User(db.User)
		}
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u.String()
}

func mysqlDSN(db config.Database) string {
	cfg := mysql.NewConfig()
	cfg.User = db.User
	cfg.Passwd = db.Password
	cfg.Net = "tcp"
	cfg.Addr = hostPort(db.Host, db.Port)
	if db.Port == 0 && db.Host != "" {
		cfg.Addr = net.JoinHostPort(db.Host, "3306")
	}
	if isSocket(db.Host) {
		cfg.Net = "unix"
		cfg.Addr = db.Host
	}
	cfg.DBName = db.Name
	if len(db.Options) > 0 {
		cfg.Params = db.Options
	}

	return cfg.FormatDSN()
}

// sqliteDSN opens the file read-write without creating it, so checking a
// missing file does not leave an empty database behind.
func sqliteDSN(db config.Database) string {
	if db.Name == "" || db.Name == ":memory:" {
		return ":memory:"
	}

	return "file:" + db.Name + "?mode=rw"
}

func isSocket(host string) bool {
	return strings.HasPrefix(host, "/")
}

func hostPort(host string, port int) string {
	if port == 0 {
		return host
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}
