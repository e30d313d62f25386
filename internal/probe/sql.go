package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/carbondoomsday/carbondoomsday/internal/config"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

func (p *Prober) checkDatabase(ctx context.Context, db config.Database) Result {
	result := Result{Kind: "database", Target: databaseTarget(db)}

	driver, dsn, err := DSN(db)
	if errors.Is(err, ErrNoDatabase) || errors.Is(err, ErrUnsupportedEngine) {
		result.Status = StatusSkipped
		result.Err = err
		return result
	}
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	// establish connection
	conn, err := p.openDB(driver, dsn)
	if err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("error opening database connection: %w", err)
		return result
	}
	defer conn.Close()

	conn.SetMaxOpenConns(1)

	// ping database
	if err := conn.PingContext(ctx); err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("error connecting database (ping): %w", err)
		if driver == driverPostgres {
			result.Hint = postgresHint(err)
		}
		return result
	}

	result.Status = StatusOK
	return result
}

// databaseTarget describes db as engine://host:port/name.
func databaseTarget(db config.Database) string {
	if db.Engine == "" {
		return "<unset>"
	}

	host := db.Host
	if db.Port != 0 {
		host = net.JoinHostPort(db.Host, strconv.Itoa(db.Port))
	}

	return db.Engine + "://" + host + "/" + db.Name
}
