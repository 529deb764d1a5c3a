package session

import (
	"os"
	"path/filepath"
	"testing"

	"inventario-cli/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("load on empty dir: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("expected unauthenticated session, got %+v", sess)
	}
}

func TestSaveLoadClear(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "nested")}

	in := model.Session{Token: "tok-123", Username: "ana"}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != in {
		t.Fatalf("expected %+v, got %+v", in, got)
	}
	if !got.Authenticated() {
		t.Fatalf("expected authenticated session")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, stat err=%v", err)
	}
	got, err = s.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if got.Authenticated() {
		t.Fatalf("expected cleared session, got %+v", got)
	}

	// Clearing twice must not error.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestDefaultDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("INVENTARIO_CONFIG_DIR", dir)
	got, err := DefaultDir()
	if err != nil {
		t.Fatalf("default dir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
}
