package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oddly.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestSQLiteSetGetRemove(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := st.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := st.Get(ctx, "k")
	if err != nil || got != "v1" {
		t.Fatalf("get: %q %v", got, err)
	}

	// Set replaces the whole value.
	if err := st.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = st.Get(ctx, "k")
	if got != "v2" {
		t.Fatalf("overwrite lost: %q", got)
	}

	if err := st.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := st.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing an absent key is fine.
	if err := st.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestSQLiteKeysByPrefix(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"oddly_content_a", "oddly_content_b", "oddly_articles_cache", "other"} {
		if err := st.Set(ctx, k, "x"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := st.Keys(ctx, "oddly_content_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"oddly_content_a", "oddly_content_b"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
}

func TestSQLiteKeysEscapesWildcards(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, "pre%fix_match", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "preXfix_match", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}

	keys, err := st.Keys(ctx, "pre%fix_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "pre%fix_match" {
		t.Fatalf("wildcards not escaped: %v", keys)
	}
}

func TestSQLiteKeysEscapesBackslash(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Set(ctx, `pre\fix_a`, "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "prefix_a", "x"); err != nil {
		t.Fatalf("set: %v", err)
	}

	keys, err := st.Keys(ctx, `pre\fix_`)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != `pre\fix_a` {
		t.Fatalf("backslash not escaped: %v", keys)
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oddly.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.Set(ctx, "k", "survives"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = st2.Close() }()

	got, err := st2.Get(ctx, "k")
	if err != nil || got != "survives" {
		t.Fatalf("value lost across opens: %q %v", got, err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestMemoryKV(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil || got != "1" {
		t.Fatalf("get: %q %v", got, err)
	}
	if _, err := m.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := m.Get(canceled, "a"); err == nil {
		t.Fatal("canceled context not honored")
	}
}
