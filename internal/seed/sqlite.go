package seed

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"clubroster/internal/model"
	"clubroster/internal/store"

	_ "modernc.org/sqlite"
)

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrateSQLiteSeed(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			color TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			avatar TEXT NOT NULL,
			introduction TEXT NOT NULL,
			is_editable INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		// Member tags are value copies, so they carry their own name/category/color
		// rather than a foreign key into tags.
		`CREATE TABLE IF NOT EXISTS member_tags (
			member_id TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			tag_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			color TEXT NOT NULL,
			PRIMARY KEY (member_id, position)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func loadSQLite(ctx context.Context, path string) (store.Seed, error) {
	if _, err := os.Stat(path); err != nil {
		// sql.Open would silently create an empty database.
		return store.Seed{}, err
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return store.Seed{}, err
	}
	defer db.Close()

	if err := migrateSQLiteSeed(ctx, db); err != nil {
		return store.Seed{}, err
	}

	var out store.Seed
	tagRows, err := db.QueryContext(ctx, `SELECT id, name, category, color FROM tags ORDER BY position`)
	if err != nil {
		return store.Seed{}, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t model.Tag
		var cat string
		if err := tagRows.Scan(&t.ID, &t.Name, &cat, &t.Color); err != nil {
			return store.Seed{}, err
		}
		t.Category = model.Category(cat)
		out.Tags = append(out.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return store.Seed{}, err
	}

	memberTags, err := loadSQLiteMemberTags(ctx, db)
	if err != nil {
		return store.Seed{}, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, name, avatar, introduction, is_editable, created_at FROM members ORDER BY position`)
	if err != nil {
		return store.Seed{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Member
		var editable int
		var created string
		if err := rows.Scan(&m.ID, &m.Name, &m.Avatar, &m.Introduction, &editable, &created); err != nil {
			return store.Seed{}, err
		}
		m.IsEditable = editable != 0
		if created != "" {
			ts, err := time.Parse(time.RFC3339Nano, created)
			if err != nil {
				return store.Seed{}, err
			}
			m.CreatedAt = ts
		}
		m.Tags = memberTags[m.ID]
		out.Members = append(out.Members, m)
	}
	if err := rows.Err(); err != nil {
		return store.Seed{}, err
	}
	return out, nil
}

func loadSQLiteMemberTags(ctx context.Context, db *sql.DB) (map[string][]model.Tag, error) {
	rows, err := db.QueryContext(ctx, `SELECT member_id, tag_id, name, category, color FROM member_tags ORDER BY member_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]model.Tag{}
	for rows.Next() {
		var memberID, cat string
		var t model.Tag
		if err := rows.Scan(&memberID, &t.ID, &t.Name, &cat, &t.Color); err != nil {
			return nil, err
		}
		t.Category = model.Category(cat)
		out[memberID] = append(out[memberID], t)
	}
	return out, rows.Err()
}

func saveSQLite(ctx context.Context, path string, s store.Seed) error {
	if path == "" {
		return errors.New("missing sqlite path")
	}
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteSeed(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all: an export mirrors the roster exactly.
	for _, t := range []string{"member_tags", "members", "tags"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	for i, t := range s.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tags(id, position, name, category, color) VALUES(?, ?, ?, ?, ?)`,
			t.ID, i, t.Name, string(t.Category), t.Color,
		); err != nil {
			return err
		}
	}
	for i, m := range s.Members {
		editable := 0
		if m.IsEditable {
			editable = 1
		}
		created := ""
		if !m.CreatedAt.IsZero() {
			created = m.CreatedAt.UTC().Format(time.RFC3339Nano)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO members(id, position, name, avatar, introduction, is_editable, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			m.ID, i, m.Name, m.Avatar, m.Introduction, editable, created,
		); err != nil {
			return err
		}
		for j, t := range m.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO member_tags(member_id, position, tag_id, name, category, color) VALUES(?, ?, ?, ?, ?, ?)`,
				m.ID, j, t.ID, t.Name, string(t.Category), t.Color,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
