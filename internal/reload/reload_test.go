package reload

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestIfChangedNoOpWhenMtimeUnchanged(t *testing.T) {
	path := writeTemp(t, "a")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGuard(path, fi.ModTime())

	called := false
	if err := g.IfChanged(func() error { called = true; return nil }); err != nil {
		t.Fatalf("IfChanged: %v", err)
	}
	if called {
		t.Fatalf("reparse should not run when mtime is unchanged")
	}
}

func TestIfChangedRunsReparseWhenMtimeAdvances(t *testing.T) {
	path := writeTemp(t, "a")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGuard(path, fi.ModTime().Add(-time.Second))

	called := false
	if err := g.IfChanged(func() error { called = true; return nil }); err != nil {
		t.Fatalf("IfChanged: %v", err)
	}
	if !called {
		t.Fatalf("reparse should run once the mtime has advanced past the guard's")
	}

	called = false
	if err := g.IfChanged(func() error { called = true; return nil }); err != nil {
		t.Fatalf("IfChanged: %v", err)
	}
	if called {
		t.Fatalf("reparse should not re-run once the new mtime has been committed")
	}
}

func TestIfChangedLeavesMtimeUncommittedOnReparseFailure(t *testing.T) {
	path := writeTemp(t, "a")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGuard(path, fi.ModTime().Add(-time.Second))

	wantErr := os.ErrInvalid
	if err := g.IfChanged(func() error { return wantErr }); err != wantErr {
		t.Fatalf("IfChanged() = %v, want %v", err, wantErr)
	}

	// Since the reparse failed, the next check should still see a stale
	// guard and retry rather than silently giving up.
	called := false
	if err := g.IfChanged(func() error { called = true; return nil }); err != nil {
		t.Fatalf("IfChanged: %v", err)
	}
	if !called {
		t.Fatalf("expected a retry after a prior reparse failure")
	}
}
