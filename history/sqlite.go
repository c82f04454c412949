package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/date"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		seq              INTEGER PRIMARY KEY,
		date             TEXT NOT NULL,
		value            REAL NOT NULL,
		invested         REAL NOT NULL,
		gain_loss        REAL NOT NULL,
		rt               REAL NOT NULL,
		category_weights TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS asset_points (
		name TEXT NOT NULL,
		seq  INTEGER NOT NULL,
		date TEXT NOT NULL,
		rt   REAL,
		PRIMARY KEY (name, seq)
	)`,
}

// SQLiteStore keeps the history in a SQLite database, for dashboards that do
// not read the exported document.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create history tables: %w", err)
		}
	}
	return &SQLiteStore{db: db, log: log.With().Str("component", "history").Logger()}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (dashboard.History, error) {
	var h dashboard.History

	rows, err := s.db.QueryContext(ctx, `SELECT date, value, invested, gain_loss, rt, category_weights FROM snapshots ORDER BY seq`)
	if err != nil {
		return h, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			snap    dashboard.Snapshot
			day     string
			weights string
		)
		if err := rows.Scan(&day, &snap.Value, &snap.Invested, &snap.GainLoss, &snap.Return, &weights); err != nil {
			return h, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if snap.Date, err = date.Parse(day); err != nil {
			return h, fmt.Errorf("invalid snapshot date %q: %w", day, err)
		}
		if err := json.Unmarshal([]byte(weights), &snap.CategoryWeights); err != nil {
			return h, fmt.Errorf("invalid category weights of %s: %w", day, err)
		}
		h.Snapshots = append(h.Snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return h, err
	}

	points, err := s.db.QueryContext(ctx, `SELECT name, date, rt FROM asset_points ORDER BY name, seq`)
	if err != nil {
		return h, fmt.Errorf("failed to query asset points: %w", err)
	}
	defer points.Close()
	for points.Next() {
		var (
			name, day string
			rt        sql.NullFloat64
		)
		if err := points.Scan(&name, &day, &rt); err != nil {
			return h, fmt.Errorf("failed to scan asset point: %w", err)
		}
		p := dashboard.AssetPoint{}
		if p.Date, err = date.Parse(day); err != nil {
			return h, fmt.Errorf("invalid asset point date %q: %w", day, err)
		}
		if rt.Valid {
			p.Return = &rt.Float64
		}
		if h.Assets == nil {
			h.Assets = make(map[string][]dashboard.AssetPoint)
		}
		h.Assets[name] = append(h.Assets[name], p)
	}
	return h, points.Err()
}

// Save implements Store. The stored series are replaced by h in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, h dashboard.History) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"snapshots", "asset_points"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	for i, snap := range h.Snapshots {
		weights, err := json.Marshal(snap.CategoryWeights)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (seq, date, value, invested, gain_loss, rt, category_weights) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, snap.Date.String(), snap.Value, snap.Invested, snap.GainLoss, snap.Return, string(weights)); err != nil {
			return fmt.Errorf("failed to insert snapshot %s: %w", snap.Date, err)
		}
	}
	for name, series := range h.Assets {
		for i, p := range series {
			var rt sql.NullFloat64
			if p.Return != nil {
				rt = sql.NullFloat64{Float64: *p.Return, Valid: true}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO asset_points (name, seq, date, rt) VALUES (?, ?, ?, ?)`,
				name, i, p.Date.String(), rt); err != nil {
				return fmt.Errorf("failed to insert asset point %s %s: %w", name, p.Date, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	s.log.Debug().Int("snapshots", len(h.Snapshots)).Int("assets", len(h.Assets)).Msg("history saved")
	return nil
}
