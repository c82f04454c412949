// Package history persists the snapshot series carried from run to run.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/dashboard"
)

// Store loads and saves the portfolio history.
type Store interface {
	Load(ctx context.Context) (dashboard.History, error)
	Save(ctx context.Context, h dashboard.History) error
}

// JSONStore reads the history out of the previously exported document.
//
// The document carries the history, so Save is a no-op: writing the next
// document persists it.
type JSONStore struct {
	Path string
}

// Load implements Store. A missing document is an empty history.
func (s JSONStore) Load(_ context.Context) (dashboard.History, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return dashboard.History{}, nil
	}
	if err != nil {
		return dashboard.History{}, fmt.Errorf("cannot read previous document: %w", err)
	}
	var doc struct {
		History      []dashboard.Snapshot              `json:"history"`
		AssetHistory map[string][]dashboard.AssetPoint `json:"asset_history"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return dashboard.History{}, fmt.Errorf("cannot parse previous document %q: %w", s.Path, err)
	}
	return dashboard.History{Snapshots: doc.History, Assets: doc.AssetHistory}, nil
}

// Save implements Store.
func (JSONStore) Save(context.Context, dashboard.History) error { return nil }

var (
	_ Store = JSONStore{}
	_ Store = (*SQLiteStore)(nil)
)
