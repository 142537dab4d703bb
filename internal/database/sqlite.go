package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is a go-sqlite3 driver whose connections replace the
// built-in ASCII-only lower() with a Unicode-aware one, so LOWER(col) LIKE ?
// folds case the same way strings.ToLower does on the search term.
const sqliteDriverName = "sqlite3_recipebook"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower lower-cases TEXT values and passes everything else through.
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil // NULL
		}
		return strings.ToLower(string(s))
	default:
		return v
	}
}
