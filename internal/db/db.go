package db

import "database/sql"

// DB wraps the shared sql.DB handle.
type DB struct {
	*sql.DB
}
