package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Config holds the database settings. The schema lives in a single
// SQLite file; ":memory:" is accepted for tests.
type Config struct {
	Path           string `mapstructure:"path"`
	BusyTimeoutMS  int    `mapstructure:"busy_timeout_ms"`
	MaxOpenConns   int    `mapstructure:"max_open_conns"`
	JournalModeWAL bool   `mapstructure:"journal_mode_wal"`
	ForeignKeysOff bool   `mapstructure:"foreign_keys_off"`
}

func (c Config) dsn() string {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", c.Path, c.busyTimeout())
	if !c.ForeignKeysOff {
		dsn += "&_pragma=foreign_keys(1)"
	}
	if c.JournalModeWAL {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	return dsn
}

func (c Config) busyTimeout() int {
	if c.BusyTimeoutMS <= 0 {
		return 5000
	}
	return c.BusyTimeoutMS
}

func NewDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer keeps SQLite happy; access is synchronous anyway.
	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
