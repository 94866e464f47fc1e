package db

import (
	"strings"

	"github.com/teranos/hiero/errors"
)

// ErrDatabaseClosed is returned when operations are attempted on a closed database,
// typically while the server is shutting down.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks if an error indicates the database connection is closed.
// It matches both wrapped ErrDatabaseClosed errors and raw database/sql errors,
// which cannot be wrapped at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
