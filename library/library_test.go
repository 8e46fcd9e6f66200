package library

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "programs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestSaveAndLoad(t *testing.T) {
	l := openTestLibrary(t)
	data := []byte("wire bytes")

	if err := l.Save("fib", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := l.Load("fib")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Load = %q, want %q", got, data)
	}
}

func TestSaveReplaces(t *testing.T) {
	l := openTestLibrary(t)

	if err := l.Save("prog", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := l.Save("prog", []byte("v2")); err != nil {
		t.Fatal(err)
	}

	got, err := l.Load("prog")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2" {
		t.Errorf("Load after replace = %q, want v2", got)
	}

	entries, err := l.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("List() has %d entries after replace, want 1", len(entries))
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	l := openTestLibrary(t)

	if err := l.Save("", []byte("data")); err == nil {
		t.Error("Save with empty name should fail")
	}
}

func TestLoadMissing(t *testing.T) {
	l := openTestLibrary(t)

	if _, err := l.Load("missing"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("Load(missing) = %v, want ErrProgramNotFound", err)
	}
}

func TestList(t *testing.T) {
	l := openTestLibrary(t)

	if err := l.Save("beta", []byte("bb")); err != nil {
		t.Fatal(err)
	}
	if err := l.Save("alpha", []byte("a")); err != nil {
		t.Fatal(err)
	}

	entries, err := l.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List() has %d entries, want 2", len(entries))
	}
	if entries[0].Name != "alpha" || entries[1].Name != "beta" {
		t.Errorf("List() order = %s, %s; want alpha, beta", entries[0].Name, entries[1].Name)
	}
	if entries[0].Size != 1 {
		t.Errorf("alpha size = %d, want 1", entries[0].Size)
	}
	if entries[0].Hash == "" || entries[0].Hash == entries[1].Hash {
		t.Error("entries should carry distinct non-empty content hashes")
	}
}

func TestDelete(t *testing.T) {
	l := openTestLibrary(t)

	if err := l.Save("prog", []byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := l.Delete("prog"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := l.Load("prog"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("Load after delete = %v, want ErrProgramNotFound", err)
	}
	if err := l.Delete("prog"); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("Delete of missing program = %v, want ErrProgramNotFound", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	l := openTestLibrary(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("prog-%d", i)
			if err := l.Save(name, []byte(name)); err != nil {
				t.Errorf("Save(%s) failed: %v", name, err)
				return
			}
			got, err := l.Load(name)
			if err != nil {
				t.Errorf("Load(%s) failed: %v", name, err)
				return
			}
			if string(got) != name {
				t.Errorf("Load(%s) = %q", name, got)
			}
		}(i)
	}
	wg.Wait()

	entries, err := l.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 8 {
		t.Errorf("List() has %d entries, want 8", len(entries))
	}
}

func TestReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "programs.db")

	l, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Save("prog", []byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Load("prog")
	if err != nil {
		t.Fatalf("Load after reopen failed: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("Load after reopen = %q, want data", got)
	}
}
