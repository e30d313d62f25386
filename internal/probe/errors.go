package probe

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoDatabase indicates a profile whose DATABASE_URL was unset.
	ErrNoDatabase = errors.New("no database configured")
	// ErrUnsupportedEngine indicates a database backend the probe has no
	// driver for.
	ErrUnsupportedEngine = errors.New("unsupported database engine")
)

// postgresHint turns the SQLSTATE of a failed postgres handshake into an
// operator-facing hint. Unknown codes give an empty hint.
func postgresHint(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}

	switch pgErr.Code {
	case pgerrcode.InvalidPassword, pgerrcode.InvalidAuthorizationSpecification:
		return "check the credentials in DATABASE_URL"
	case pgerrcode.InvalidCatalogName:
		return "database named in DATABASE_URL does not exist"
	case pgerrcode.TooManyConnections, pgerrcode.CannotConnectNow:
		return "server is refusing connections, retry later"
	}

	return ""
}
