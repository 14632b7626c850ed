package storage

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// TestSQLitePutGetDelete verifies the SQLite backend overwrites whole
// documents and reports missing keys as ErrNotFound.
func TestSQLitePutGetDelete(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "strain.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := kv.Put(ctx, "k", []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Put(ctx, "k", []byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte(`{"v":2}`)) {
		t.Errorf("Get = %s, want {\"v\":2}", got)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(after delete) err = %v, want ErrNotFound", err)
	}
}

// TestSQLiteStateSurvivesReopen verifies state written through one handle is
// restored by a fresh handle on the same file.
func TestSQLiteStateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "strain.db")

	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewStateStore(kv, "", discardLogger()).Save(ctx, fullState()); err != nil {
		t.Fatal(err)
	}
	kv.Close()

	kv, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()
	st, ok := NewStateStore(kv, "", discardLogger()).Load(ctx)
	if !ok {
		t.Fatal("expected state after reopen")
	}
	if len(st.History) != 1 || st.CurrentWorkout == nil || st.CurrentWorkout.CurrentExerciseIndex != 1 {
		t.Errorf("restored state = %+v", st)
	}
}
