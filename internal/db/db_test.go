package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dori/taskdeck/internal/kv"
)

// compile-time check that the sqlite database can back the adapter
var _ kv.Backend = (*DB)(nil)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenRunsMigrations(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv_items'`).Scan(&name)
	if err != nil {
		t.Fatalf("kv_items table missing: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Write(ctx, "tasks", []byte(`[]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	db.Close()

	// migrations must be idempotent on an existing file
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	value, ok, err := db.Read(ctx, "tasks")
	if err != nil || !ok || string(value) != "[]" {
		t.Fatalf("Read = %q, %v, %v", value, ok, err)
	}
}

func TestKVOperations(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if _, ok, err := db.Read(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := db.Write(ctx, "b", []byte(`1`)); err != nil {
		t.Fatalf("write b: %v", err)
	}
	if err := db.Write(ctx, "a", []byte(`"x"`)); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := db.Write(ctx, "b", []byte(`2`)); err != nil {
		t.Fatalf("overwrite b: %v", err)
	}

	value, ok, err := db.Read(ctx, "b")
	if err != nil || !ok || string(value) != "2" {
		t.Fatalf("expected overwritten value, got %q ok=%v err=%v", value, ok, err)
	}

	keys, err := db.Keys(ctx)
	if err != nil || !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("Keys = %v, %v", keys, err)
	}

	if err := db.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}

	if err := db.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	keys, err = db.Keys(ctx)
	if err != nil || len(keys) != 0 {
		t.Fatalf("expected no keys after clear, got %v, %v", keys, err)
	}
}

func TestAdapterRoundTripOverSQLite(t *testing.T) {
	ctx := context.Background()
	a := kv.NewAdapter(openTestDB(t), nil)

	want := []map[string]any{{"id": "1", "name": "New Task", "completed": false}}
	if !a.Set(ctx, "tasks", want) {
		t.Fatal("set not acknowledged")
	}
	got := kv.Get(ctx, a, "tasks", []map[string]any{})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

// TestConcurrentWritesSerialize checks that the single-connection pool does
// not deadlock when many goroutines write at once.
func TestConcurrentWritesSerialize(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			done <- db.Write(ctx, "tasks", []byte(`[]`))
		}()
	}

	timeout := time.After(5 * time.Second)
	for i := 0; i < 10; i++ {
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("write failed: %v", err)
			}
		case <-timeout:
			t.Fatal("Test timed out - possible deadlock detected")
		}
	}
}
