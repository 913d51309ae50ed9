package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lingobridge/lingobridge"
)

const schema = `
CREATE TABLE IF NOT EXISTS translated_messages (
	forwarded_message_id INTEGER PRIMARY KEY,
	original_message_id  INTEGER NOT NULL,
	conversation_id      INTEGER NOT NULL,
	sender_id            INTEGER NOT NULL,
	source_language      TEXT NOT NULL,
	original_text        TEXT NOT NULL,
	translated_text      TEXT NOT NULL,
	created_at           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_translated_messages_created_at
	ON translated_messages (created_at);
`

// Timestamps are stored as UTC strings so age comparisons stay lexicographic.
const timeLayout = "2006-01-02 15:04:05"

// SQLiteStore is a RecordStore backed by a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Serialized access keeps writes from tripping over SQLITE_BUSY under
	// concurrent relay units.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save persists a new record. Duplicate forwarded ids violate the primary key
// and surface as an error.
func (s *SQLiteStore) Save(ctx context.Context, rec lingobridge.TranslationRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO translated_messages (
			forwarded_message_id, original_message_id, conversation_id, sender_id,
			source_language, original_text, translated_text, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ForwardedMessageID,
		rec.OriginalMessageID,
		rec.ConversationID,
		rec.SenderID,
		rec.SourceLanguage,
		rec.OriginalText,
		rec.TranslatedText,
		formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("save record %d: %w", rec.ForwardedMessageID, err)
	}
	return nil
}

// FindByForwardedID returns the record for a forwarded message id.
func (s *SQLiteStore) FindByForwardedID(ctx context.Context, id int64) (lingobridge.TranslationRecord, bool, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT forwarded_message_id, original_message_id, conversation_id, sender_id,
			source_language, original_text, translated_text, created_at
		 FROM translated_messages
		 WHERE forwarded_message_id = ?`,
		id,
	)

	var rec lingobridge.TranslationRecord
	var createdAt string
	err := row.Scan(
		&rec.ForwardedMessageID,
		&rec.OriginalMessageID,
		&rec.ConversationID,
		&rec.SenderID,
		&rec.SourceLanguage,
		&rec.OriginalText,
		&rec.TranslatedText,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lingobridge.TranslationRecord{}, false, nil
		}
		return lingobridge.TranslationRecord{}, false, fmt.Errorf("find record %d: %w", id, err)
	}

	rec.CreatedAt = parseTime(createdAt)
	return rec, true, nil
}

// DeleteOlderThan removes all records created before now-age. The cutoff is
// computed here and bound as a plain parameter, so the comparison always
// matches what was written.
func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-age))

	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM translated_messages WHERE created_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("delete records older than %s: %w", age, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted records: %w", err)
	}
	return deleted, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Verify SQLiteStore implements RecordStore
var _ RecordStore = (*SQLiteStore)(nil)
