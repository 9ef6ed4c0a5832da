package storage

import (
	"database/sql"
	"errors"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotOwner is returned when the caller does not own the job it is
	// trying to access.
	ErrNotOwner = errors.New("caller is not the job owner")
)

type DB struct {
	connection *sql.DB
}

// NewDB opens a PostgreSQL connection with pool tuning for API traffic.
func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

// NewDBWithDriver opens a store on an alternative database/sql driver.
// Tests use this with modernc.org/sqlite and an in-memory DSN.
func NewDBWithDriver(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	// A shared in-memory database needs a single connection to stay alive.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
