package db

import (
	"strings"

	"github.com/teranos/satgraph/errors"
)

// ErrDatabaseClosed is returned when operations are attempted on a closed database.
var ErrDatabaseClosed = errors.New("database is closed")

// IsDatabaseClosed checks if an error indicates the database connection is closed.
// Driver errors are matched by message since they cannot be wrapped at the source.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}

// wrapStoreErr attaches context and maps driver "closed" errors onto ErrDatabaseClosed
func wrapStoreErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsDatabaseClosed(err) && !errors.Is(err, ErrDatabaseClosed) {
		return errors.Wrap(errors.Mark(err, ErrDatabaseClosed), op)
	}
	return errors.Wrap(err, op)
}
