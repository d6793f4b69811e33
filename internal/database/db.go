package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Timestamps are stored as RFC 3339 UTC text so both engines order and
// compare them identically.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
)`

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id          BIGINT NOT NULL AUTO_INCREMENT,
	title       VARCHAR(100) NOT NULL,
	description VARCHAR(200) NOT NULL DEFAULT '',
	completed   TINYINT(1) NOT NULL DEFAULT 0,
	created_at  VARCHAR(32) NOT NULL,
	updated_at  VARCHAR(32) NOT NULL,
	PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// Open connects to the todo database, verifies the connection and ensures
// the todos table exists. A non-empty MySQL DSN selects the networked
// engine; otherwise the SQLite file at path is used.
func Open(dsn, path string) (*sql.DB, error) {
	if dsn != "" {
		return openMySQL(dsn)
	}
	return openSQLite(path)
}

func openMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := verify(db, mysqlSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers itself; a single pooled connection avoids
	// SQLITE_BUSY and keeps :memory: databases from splitting per conn.
	db.SetMaxOpenConns(1)

	if err := verify(db, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// verify pings the database with a timeout and applies the schema.
func verify(db *sql.DB, schema string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}
