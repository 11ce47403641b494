package db

import (
	"database/sql"
)

// Database abstracts the lifecycle of the backing SQL store.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
