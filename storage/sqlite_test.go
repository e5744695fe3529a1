package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSqliteStorage_FileCreation(t *testing.T) {
	t.Run("WithSubdir", func(t *testing.T) {
		tmp := t.TempDir()
		nested := filepath.Join(tmp, "nested", "subdir")
		dsn := filepath.Join(nested, t.Name()+"-test.db")
		s, err := NewSqliteStorage(dsn)
		if err != nil {
			t.Fatalf("NewSqliteStorage failed: %v", err)
		}
		defer s.Close()
		// Parent directories are created on demand
		if info, err := os.Stat(nested); err != nil {
			t.Errorf("expected directory %q to exist, got error: %v", nested, err)
		} else if !info.IsDir() {
			t.Errorf("expected %q to be a directory", nested)
		}
		if _, err := os.Stat(dsn); err != nil {
			t.Errorf("expected database file %q to exist, got error: %v", dsn, err)
		}
	})

	t.Run("WithoutSubdir", func(t *testing.T) {
		tmp := t.TempDir()
		dsn := filepath.Join(tmp, t.Name()+"-plain.db")
		s, err := NewSqliteStorage(dsn)
		if err != nil {
			t.Fatalf("NewSqliteStorage failed: %v", err)
		}
		defer s.Close()
		if _, err := os.Stat(dsn); err != nil {
			t.Errorf("expected database file %q to exist, got error: %v", dsn, err)
		}
	})
}

func TestSqliteStorage_Contract(t *testing.T) {
	s, err := NewSqliteStorage(":memory:")
	if err != nil {
		t.Fatalf("NewSqliteStorage failed: %v", err)
	}
	defer s.Close()
	runStorageContract(t, s)
}
