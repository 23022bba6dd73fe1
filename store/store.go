// Package store is the optional sqlite persistence layer behind the
// scraper. The scraping core has no dependency on it: the API layer is the
// caller that decides whether extracted messages get written, and a write
// failure never alters an already-built scrape response.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/use-agent/smsgrab/models"
	_ "modernc.org/sqlite" // sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	phone_number TEXT NOT NULL,
	sender TEXT NOT NULL,
	message TEXT NOT NULL,
	received_at TEXT NOT NULL,
	raw_html TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	UNIQUE (phone_number, sender, message)
);
CREATE INDEX IF NOT EXISTS idx_messages_phone ON messages (phone_number);
`

// Store persists extracted messages, keyed so that re-scraping the same
// page never duplicates rows. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveMessages upserts a batch for one phone number. Rows already present
// under (phone_number, sender, message) are ignored. Returns how many rows
// were actually inserted.
func (s *Store) SaveMessages(ctx context.Context, phone string, msgs []models.Message) (int, error) {
	if len(msgs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO messages
			(id, phone_number, sender, message, received_at, raw_html, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(models.ISOMillis)
	inserted := 0
	for _, m := range msgs {
		res, err := stmt.ExecContext(ctx, uuid.NewString(), phone, m.Sender, m.Body, m.ReceivedAt, m.RawHTML, now)
		if err != nil {
			return 0, fmt.Errorf("store: insert message: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return inserted, nil
}

// MessagesByPhone returns the stored rows for a number, newest first.
func (s *Store) MessagesByPhone(ctx context.Context, phone string) ([]models.StoredMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, phone_number, sender, message, received_at, created_at
		FROM messages
		WHERE phone_number = ?
		ORDER BY received_at DESC, sender`, phone)
	if err != nil {
		return nil, fmt.Errorf("store: query messages: %w", err)
	}
	defer rows.Close()

	out := []models.StoredMessage{}
	for rows.Next() {
		var m models.StoredMessage
		if err := rows.Scan(&m.ID, &m.PhoneNumber, &m.Sender, &m.Body, &m.ReceivedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate messages: %w", err)
	}
	return out, nil
}
