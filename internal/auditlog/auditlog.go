// Package auditlog keeps a local sqlite record of the mutations this client
// performed against the backend, so "what did I change from this machine"
// survives across sessions. It is strictly best-effort: an audit failure
// never fails the user action it describes.
package auditlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Log struct {
	Dir string
}

type Entry struct {
	ID      int64     `json:"id"`
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	ItemID  int64     `json:"itemId,omitempty"`
	Payload string    `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

func (l Log) path() string {
	return filepath.Join(l.Dir, "audit.sqlite")
}

func (l Log) open(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", l.path())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a CLI invocation races a running TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := l.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (l Log) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS audit (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			item_id INTEGER NOT NULL DEFAULT 0,
			payload_json TEXT NOT NULL DEFAULT '',
			at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_at ON audit(at_unixms);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Append records one performed action. payload (when non-nil) is stored as
// JSON for later inspection.
func (l Log) Append(ctx context.Context, actor, action string, itemID int64, payload any) error {
	db, err := l.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	payloadJSON := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		payloadJSON = string(b)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO audit (actor, action, item_id, payload_json, at_unixms) VALUES (?, ?, ?, ?, ?)`,
		actor, action, itemID, payloadJSON, time.Now().UnixMilli())
	return err
}

// Recent returns up to n entries, newest first.
func (l Log) Recent(ctx context.Context, n int) ([]Entry, error) {
	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, actor, action, item_id, payload_json, at_unixms FROM audit ORDER BY at_unixms DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var atMS int64
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.ItemID, &e.Payload, &atMS); err != nil {
			return nil, err
		}
		e.At = time.UnixMilli(atMS).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
