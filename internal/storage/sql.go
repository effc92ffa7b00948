package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLSlot stores keys in a two-column kv table. The same layout serves SQLite and MySQL;
// only the DDL and upsert statement differ.
type SQLSlot struct {
	db     *sqlx.DB
	upsert string
}

type dialect struct {
	driver string
	schema string
	upsert string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS kv (
		slot_key TEXT PRIMARY KEY,
		slot_value BLOB NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
		upsert: `INSERT INTO kv (slot_key, slot_value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(slot_key) DO UPDATE SET slot_value = excluded.slot_value, updated_at = excluded.updated_at`,
	}

	mysqlDialect = dialect{
		driver: "mysql",
		schema: `CREATE TABLE IF NOT EXISTS kv (
    slot_key VARCHAR(191) PRIMARY KEY,
    slot_value LONGBLOB NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`,
		upsert: `INSERT INTO kv (slot_key, slot_value) VALUES (?, ?)
ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value)`,
	}
)

// NewSQLiteSlot opens (creating if needed) smarttask.db under dir. dir ":memory:"
// opens a private in-memory database.
func NewSQLiteSlot(dir string) (*SQLSlot, error) {
	dsn := ":memory:"
	if dir != ":memory:" {
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dsn = filepath.Join(dir, "smarttask.db")
	}
	return openSQLSlot(sqliteDialect, dsn)
}

// NewMySQLSlot connects to MySQL and ensures the kv table exists.
func NewMySQLSlot(dsn string) (*SQLSlot, error) {
	if dsn == "" {
		return nil, errors.New("mysql backend requires storage.dsn")
	}
	return openSQLSlot(mysqlDialect, dsn)
}

func openSQLSlot(d dialect, dsn string) (*SQLSlot, error) {
	db, err := sqlx.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if d.driver == sqliteDialect.driver {
		// one connection, so an in-memory database is shared by every query
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s: %w", d.driver, err)
	}
	if _, err := db.Exec(d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLSlot{db: db, upsert: d.upsert}, nil
}

func (s *SQLSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, `SELECT slot_value FROM kv WHERE slot_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLSlot) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.upsert, key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SQLSlot) Close() error { return s.db.Close() }
