package state

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestSQLiteSettingsUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, ok, err := store.GetSetting(ctx, "pure_black"); err != nil || ok {
		t.Fatalf("get missing setting = %v, %v", ok, err)
	}
	if err := store.PutSetting(ctx, "pure_black", "v1:false"); err != nil {
		t.Fatalf("put setting: %v", err)
	}
	if err := store.PutSetting(ctx, "pure_black", "v1:true"); err != nil {
		t.Fatalf("overwrite setting: %v", err)
	}
	v, ok, err := store.GetSetting(ctx, "pure_black")
	if err != nil || !ok || v != "v1:true" {
		t.Fatalf("get setting = %q, %v, %v", v, ok, err)
	}

	all, err := store.AllSettings(ctx)
	if err != nil {
		t.Fatalf("all settings: %v", err)
	}
	if len(all) != 1 || all["pure_black"] != "v1:true" {
		t.Fatalf("unexpected settings %v", all)
	}
}

func TestSQLiteAnswersLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.PutAnswer(ctx, AnswerRecord{ID: "l01-exam-q00", Level: "l01", Question: "exam-q00", Inputs: "1,5"}); err != nil {
		t.Fatalf("put answer: %v", err)
	}
	if err := store.PutAnswer(ctx, AnswerRecord{ID: "l00-exercise-q02", Level: "l00", Question: "exercise-q02", Inputs: ","}); err != nil {
		t.Fatalf("put answer: %v", err)
	}
	// Same key again: last write wins.
	if err := store.PutAnswer(ctx, AnswerRecord{ID: "l01-exam-q00", Level: "l01", Question: "exam-q00", Inputs: "1,6"}); err != nil {
		t.Fatalf("upsert answer: %v", err)
	}
	// Blank ids are dropped, not stored.
	if err := store.PutAnswer(ctx, AnswerRecord{ID: "  "}); err != nil {
		t.Fatalf("put blank id: %v", err)
	}

	recs, err := store.GetAnswers(ctx)
	if err != nil {
		t.Fatalf("get answers: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("answer count = %d", len(recs))
	}
	if recs[0].ID != "l00-exercise-q02" {
		t.Fatalf("answers not ordered by id: %+v", recs)
	}
	if recs[1].Inputs != "1,6" {
		t.Fatalf("upsert lost: %+v", recs[1])
	}

	if err := store.DeleteAnswers(ctx); err != nil {
		t.Fatalf("delete answers: %v", err)
	}
	recs, err = store.GetAnswers(ctx)
	if err != nil {
		t.Fatalf("get answers after delete: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("answers survive delete: %d", len(recs))
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := store.PutSetting(ctx, "theme_mode", "v1:light"); err != nil {
		t.Fatalf("put setting: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	store, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	v, ok, err := store.GetSetting(ctx, "theme_mode")
	if err != nil || !ok || v != "v1:light" {
		t.Fatalf("setting lost across reopen: %q, %v, %v", v, ok, err)
	}
}
