// Copyright (c) 2026 Keydesk Team
// Keydesk - license key administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package archive keeps backup snapshots in a SQL database so the history
// of the key inventory can be queried later. SQLite, PostgreSQL and MySQL
// are supported through Bun.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/keydesk/keydesk/internal/backup"
	"github.com/keydesk/keydesk/internal/logging"
	"github.com/keydesk/keydesk/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	// SQL drivers for the non-default archive backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// insertChunk bounds the rows per INSERT to stay below driver parameter limits.
const insertChunk = 500

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// SnapshotModel maps the snapshots table.
type SnapshotModel struct {
	bun.BaseModel `bun:"table:snapshots"`
	ID            string    `bun:"id,pk"`
	TakenAt       time.Time `bun:"taken_at,notnull"`
	Source        string    `bun:"source"`
	TotalKeys     int       `bun:"total_keys"`
	ActiveKeys    int       `bun:"active_keys"`
	UsedKeys      int       `bun:"used_keys"`
	KeyCount      int       `bun:"key_count"`
	LogCount      int       `bun:"log_count"`
}

// KeyModel maps snapshot_keys.
type KeyModel struct {
	bun.BaseModel  `bun:"table:snapshot_keys"`
	ID             int64      `bun:"id,pk,autoincrement"`
	SnapshotID     string     `bun:"snapshot_id,notnull"`
	KeyValue       string     `bun:"key_value,notnull"`
	Status         string     `bun:"status"`
	HWID           *string    `bun:"hwid"`
	CreatedAt      *time.Time `bun:"created_at"`
	FirstLoginAt   *time.Time `bun:"first_login_at"`
	ExpiresAt      *time.Time `bun:"expires_at"`
	LoginCount     int        `bun:"login_count"`
	ExpirationDays int        `bun:"expiration_days"`
	IsPaused       bool       `bun:"is_paused"`
}

// LogModel maps snapshot_logs.
type LogModel struct {
	bun.BaseModel `bun:"table:snapshot_logs"`
	ID            int64      `bun:"id,pk,autoincrement"`
	SnapshotID    string     `bun:"snapshot_id,notnull"`
	Timestamp     *time.Time `bun:"timestamp"`
	KeyValue      string     `bun:"key_value"`
	Action        string     `bun:"action"`
	Details       string     `bun:"details"`
	IPAddress     string     `bun:"ip_address"`
}

// Store is an open archive database.
type Store struct {
	bun *bun.DB
}

// Open connects to the archive and creates missing tables.
func Open(ctx context.Context, dbType, dsn string) (*Store, error) {
	driverName := dbType
	// The pgx stdlib registers driver name "pgx"; map "postgres" to that driver.
	switch dbType {
	case "sqlite", "mysql":
	case "postgres":
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported archive database type: '%s'", dbType)
	}

	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}
	// In-memory SQLite is per connection; keep a single one.
	if dbType == "sqlite" && dsn == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}

	s := &Store{bun: createBunDB(sqlDB, dbType)}
	if err := s.createTables(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create archive tables: %w", err)
	}
	logging.Debugf("archive: opened %s", dbType)
	return s, nil
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

func (s *Store) createTables(ctx context.Context) error {
	for _, m := range []any{(*SnapshotModel)(nil), (*KeyModel)(nil), (*LogModel)(nil)} {
		if _, err := s.bun.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.bun.Close()
}

// Save stores snap with all its keys and logs in one transaction.
func (s *Store) Save(ctx context.Context, snap *backup.Snapshot) error {
	tx, err := s.bun.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	row := &SnapshotModel{
		ID:         snap.ID,
		TakenAt:    snap.TakenAt.UTC(),
		Source:     snap.Source,
		TotalKeys:  snap.Stats.TotalKeys,
		ActiveKeys: snap.Stats.ActiveKeys,
		UsedKeys:   snap.Stats.UsedKeys,
		KeyCount:   len(snap.Keys),
		LogCount:   len(snap.Logs),
	}
	if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	keys := make([]KeyModel, len(snap.Keys))
	for i, k := range snap.Keys {
		keys[i] = KeyModel{
			SnapshotID:     snap.ID,
			KeyValue:       k.KeyValue,
			Status:         k.Status,
			HWID:           k.HWID,
			CreatedAt:      k.CreatedAt.Ptr(),
			FirstLoginAt:   k.FirstLoginAt.Ptr(),
			ExpiresAt:      k.ExpiresAt.Ptr(),
			LoginCount:     k.LoginCount,
			ExpirationDays: k.ExpirationDays,
			IsPaused:       k.IsPaused,
		}
	}
	if err := insertChunks(ctx, tx, keys); err != nil {
		return fmt.Errorf("failed to insert snapshot keys: %w", err)
	}

	logs := make([]LogModel, len(snap.Logs))
	for i, l := range snap.Logs {
		logs[i] = LogModel{
			SnapshotID: snap.ID,
			Timestamp:  l.Timestamp.Ptr(),
			KeyValue:   l.KeyValue,
			Action:     l.Action,
			Details:    l.Details,
			IPAddress:  l.IPAddress,
		}
	}
	if err := insertChunks(ctx, tx, logs); err != nil {
		return fmt.Errorf("failed to insert snapshot logs: %w", err)
	}

	return tx.Commit()
}

func insertChunks[T any](ctx context.Context, tx bun.Tx, rows []T) error {
	for start := 0; start < len(rows); start += insertChunk {
		chunk := rows[start:min(start+insertChunk, len(rows))]
		if _, err := tx.NewInsert().Model(&chunk).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Snapshots lists the archived snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]SnapshotModel, error) {
	var out []SnapshotModel
	if err := s.bun.NewSelect().Model(&out).Order("taken_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Keys returns the keys archived with snapshot id, in their original order.
func (s *Store) Keys(ctx context.Context, snapshotID string) ([]model.KeyRecord, error) {
	var rows []KeyModel
	if err := s.bun.NewSelect().Model(&rows).Where("snapshot_id = ?", snapshotID).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.KeyRecord, len(rows))
	for i, r := range rows {
		out[i] = model.KeyRecord{
			KeyValue:       r.KeyValue,
			Status:         r.Status,
			HWID:           r.HWID,
			CreatedAt:      timestampOf(r.CreatedAt),
			FirstLoginAt:   timestampOf(r.FirstLoginAt),
			ExpiresAt:      timestampOf(r.ExpiresAt),
			LoginCount:     r.LoginCount,
			ExpirationDays: r.ExpirationDays,
			IsPaused:       r.IsPaused,
		}
	}
	return out, nil
}

// Logs returns the log entries archived with snapshot id.
func (s *Store) Logs(ctx context.Context, snapshotID string) ([]model.LogRecord, error) {
	var rows []LogModel
	if err := s.bun.NewSelect().Model(&rows).Where("snapshot_id = ?", snapshotID).Order("id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.LogRecord, len(rows))
	for i, r := range rows {
		out[i] = model.LogRecord{
			Timestamp: timestampOf(r.Timestamp),
			KeyValue:  r.KeyValue,
			Action:    r.Action,
			Details:   r.Details,
			IPAddress: r.IPAddress,
		}
	}
	return out, nil
}

func timestampOf(t *time.Time) model.Timestamp {
	if t == nil {
		return model.Timestamp{}
	}
	return model.NewTimestamp(*t)
}
