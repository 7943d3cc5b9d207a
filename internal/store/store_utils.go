package store

import (
	"fmt"
	"time"

	"github.com/lesiontrack/lesiontrack/schema"
)

// quoteTableName returns a properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("\"%s\"", name)
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite
		return fmt.Sprintf("\"%s\"", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// placeholders renders the parameter list for the backend, e.g. "$1, $2" for
// PostgreSQL and "?, ?" otherwise.
func placeholders(backend schema.DatabaseBackend, n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		if backend == schema.PostgreSQLBackend {
			out += fmt.Sprintf("$%d", i)
		} else {
			out += "?"
		}
	}
	return out
}
