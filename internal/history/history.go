// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists a record of every generation run in a local
// SQLite database under the stubgen data directory.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stubgen-org/stubgen/internal/paths"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName   = "sqlite"
	dbFileName         = "stubgen.db"
	defaultBusyTimeout = 5 * time.Second
)

// ErrEmptyRecord indicates an append without a program name.
var ErrEmptyRecord = errors.New("history: record has no program name")

var migrations = [...]string{
	`CREATE TABLE IF NOT EXISTS generations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		program TEXT NOT NULL,
		output_path TEXT NOT NULL,
		args TEXT NOT NULL,
		capabilities TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at);`,
}

// Record is one persisted generation run.
type Record struct {
	Seq          int64
	Program      string
	OutputPath   string
	Args         []string
	Capabilities []string
	CreatedAt    time.Time
}

// Store wraps the SQLite connection holding generation records.
type Store struct {
	sql   *sql.DB
	nowFn func() time.Time
}

// Options controls how the store is opened.
type Options struct {
	// DataDir is the directory holding the DB file. Empty means the
	// platform-default stubgen data directory.
	DataDir string
}

// Open initialises the history DB, creating the schema if needed.
func Open(ctx context.Context, opts Options) (*Store, error) {
	dir := opts.DataDir
	if dir == "" {
		dir = paths.DataDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", filepath.ToSlash(dbPath), int(defaultBusyTimeout/time.Millisecond))

	conn, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	for _, stmt := range migrations {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply migration: %w", err)
		}
	}

	return &Store{
		sql: conn,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Append stores one generation record and returns it with the allocated
// sequence number and timestamp filled in.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.Program == "" {
		return Record{}, ErrEmptyRecord
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.nowFn()
	}

	res, err := s.sql.ExecContext(ctx,
		`INSERT INTO generations (program, output_path, args, capabilities, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.Program,
		rec.OutputPath,
		strings.Join(rec.Args, " "),
		strings.Join(rec.Capabilities, " "),
		rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Record{}, fmt.Errorf("append generation: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("read sequence: %w", err)
	}
	rec.Seq = seq
	return rec, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT seq, program, output_path, args, capabilities, created_at FROM generations ORDER BY seq DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.sql.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.sql.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var args, caps string
		var created int64
		if err := rows.Scan(&rec.Seq, &rec.Program, &rec.OutputPath, &args, &caps, &created); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		if args != "" {
			rec.Args = strings.Fields(args)
		}
		if caps != "" {
			rec.Capabilities = strings.Fields(caps)
		}
		rec.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generations: %w", err)
	}
	return out, nil
}
