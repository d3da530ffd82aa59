package store

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// OpenPostgres connects to the fallback SQL store and verifies the
// connection before anything else is wired.
func OpenPostgres(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
