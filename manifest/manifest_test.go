package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[project]
name = "fib"
version = "0.1.0"

[machine]
stack-size = 512
max-steps = 100000
trace = true

[program]
path = "fib.bbc"
entry = "main"

[library]
path = "lib/programs.db"
`
	if err := os.WriteFile(filepath.Join(dir, "bananabread.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Project.Name != "fib" {
		t.Errorf("project name = %q, want fib", m.Project.Name)
	}
	if m.Machine.StackSize != 512 {
		t.Errorf("stack-size = %d, want 512", m.Machine.StackSize)
	}
	if m.Machine.MaxSteps != 100000 {
		t.Errorf("max-steps = %d, want 100000", m.Machine.MaxSteps)
	}
	if !m.Machine.Trace {
		t.Error("trace should be enabled")
	}
	if m.Program.Entry != "main" {
		t.Errorf("entry = %q, want main", m.Program.Entry)
	}
	if got, want := m.ProgramPath(), filepath.Join(m.Dir, "fib.bbc"); got != want {
		t.Errorf("ProgramPath() = %q, want %q", got, want)
	}
	if got, want := m.LibraryPath(), filepath.Join(m.Dir, "lib/programs.db"); got != want {
		t.Errorf("LibraryPath() = %q, want %q", got, want)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[project]
name = "minimal"
`
	if err := os.WriteFile(filepath.Join(dir, "bananabread.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Machine.StackSize != 1024 {
		t.Errorf("default stack-size = %d, want 1024", m.Machine.StackSize)
	}
	if m.Machine.MaxSteps != 0 {
		t.Errorf("default max-steps = %d, want 0 (unbounded)", m.Machine.MaxSteps)
	}
	if m.Library.Path != "programs.db" {
		t.Errorf("default library path = %q, want programs.db", m.Library.Path)
	}
	if m.ProgramPath() != "" {
		t.Errorf("ProgramPath() = %q with no program configured, want empty", m.ProgramPath())
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load should fail when bananabread.toml is missing")
	}
}

func TestLoadManifestBadToml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bananabread.toml"), []byte("[project\nname="), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on malformed toml")
	}
}
