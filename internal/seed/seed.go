// Package seed loads and exports the roster's initial state.
//
// Supported formats are chosen by file extension:
//   - .json: {"tags": [...], "members": [...]}
//   - .db, .sqlite, .sqlite3: SQLite database with tags, members and member_tags tables
package seed

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"clubroster/internal/store"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// FormatForPath picks the seed format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported seed file %q (want .json, .db, .sqlite or .sqlite3)", path)
	}
}

// Load reads seed data from path. An empty path yields Default().
func Load(ctx context.Context, path string) (store.Seed, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	f, err := FormatForPath(path)
	if err != nil {
		return store.Seed{}, err
	}
	var s store.Seed
	switch f {
	case FormatJSON:
		s, err = loadJSON(path)
	case FormatSQLite:
		s, err = loadSQLite(ctx, path)
	}
	if err != nil {
		return store.Seed{}, fmt.Errorf("load seed %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, replacing any existing content.
func Save(ctx context.Context, path string, s store.Seed) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		err = saveJSON(path, s)
	case FormatSQLite:
		err = saveSQLite(ctx, path, s)
	}
	if err != nil {
		return fmt.Errorf("save seed %s: %w", path, err)
	}
	return nil
}
