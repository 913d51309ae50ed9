package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lingobridge/lingobridge"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "relay.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id int64) lingobridge.TranslationRecord {
	return lingobridge.TranslationRecord{
		ForwardedMessageID: id,
		OriginalMessageID:  id + 1000,
		ConversationID:     42,
		SenderID:           7,
		SourceLanguage:     "es",
		OriginalText:       "Hola, necesito ayuda",
		TranslatedText:     "Hello, I need help",
		CreatedAt:          time.Now().UTC(),
	}
}

func TestSQLiteStore_SaveAndFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord(100)
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := s.FindByForwardedID(ctx, 100)
	if err != nil {
		t.Fatalf("FindByForwardedID failed: %v", err)
	}
	if !ok {
		t.Fatal("record should exist")
	}

	if got.ForwardedMessageID != rec.ForwardedMessageID ||
		got.OriginalMessageID != rec.OriginalMessageID ||
		got.ConversationID != rec.ConversationID ||
		got.SenderID != rec.SenderID ||
		got.SourceLanguage != rec.SourceLanguage ||
		got.OriginalText != rec.OriginalText ||
		got.TranslatedText != rec.TranslatedText {
		t.Errorf("record mismatch:\ngot  %+v\nwant %+v", got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should round-trip")
	}
}

func TestSQLiteStore_FindMissing(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.FindByForwardedID(context.Background(), 999)
	if err != nil {
		t.Fatalf("FindByForwardedID failed: %v", err)
	}
	if ok {
		t.Error("missing record should report ok=false")
	}
}

func TestSQLiteStore_DuplicateSave(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := testRecord(100)
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	if err := s.Save(ctx, rec); err == nil {
		t.Error("duplicate forwarded id should violate the primary key")
	}
}

func TestSQLiteStore_DeleteOlderThan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := testRecord(1)
	old.CreatedAt = time.Now().UTC().Add(-10 * 24 * time.Hour)
	fresh := testRecord(2)

	if err := s.Save(ctx, old); err != nil {
		t.Fatalf("Save old failed: %v", err)
	}
	if err := s.Save(ctx, fresh); err != nil {
		t.Fatalf("Save fresh failed: %v", err)
	}

	deleted, err := s.DeleteOlderThan(ctx, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d records, want 1", deleted)
	}

	if _, ok, _ := s.FindByForwardedID(ctx, 1); ok {
		t.Error("old record should have been deleted")
	}
	if _, ok, _ := s.FindByForwardedID(ctx, 2); !ok {
		t.Error("fresh record should have survived")
	}
}

func TestSQLiteStore_DeleteOlderThanEmpty(t *testing.T) {
	s := newTestStore(t)

	deleted, err := s.DeleteOlderThan(context.Background(), 7*24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted %d records from empty store, want 0", deleted)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relay.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	if err := s.Save(ctx, testRecord(100)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Records must survive a process restart.
	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	if _, ok, _ := s2.FindByForwardedID(ctx, 100); !ok {
		t.Error("record should survive reopen")
	}
}
