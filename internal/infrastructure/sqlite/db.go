// Package sqlite persists sessions, containers and entity metadata in a
// local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/homespun/homespun/internal/log"
	"github.com/homespun/homespun/internal/sessions/domain"
)

// DB owns the SQLite connection and hands out repositories bound to it.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (or creates) the database at path and applies pending migrations.
// When an existing database needs migrating it is first copied to path+".bak".
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(conn, migrationsFS, path+".bak"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Debug(log.CatDB, "Database opened", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// SessionRepository returns a session repository bound to this database.
func (db *DB) SessionRepository() domain.SessionRepository {
	return newSessionRepository(db.conn)
}

// ContainerRepository returns a container repository bound to this database.
func (db *DB) ContainerRepository() domain.ContainerRepository {
	return newContainerRepository(db.conn)
}

// EntityRepository returns an entity repository bound to this database.
func (db *DB) EntityRepository() domain.EntityRepository {
	return newEntityRepository(db.conn)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
