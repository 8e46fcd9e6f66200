// Package manifest handles bananabread.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a bananabread.toml configuration file.
type Manifest struct {
	Project Project       `toml:"project"`
	Machine MachineConfig `toml:"machine"`
	Program ProgramConfig `toml:"program"`
	Library LibraryConfig `toml:"library"`

	// Dir is the directory containing the bananabread.toml file (set at
	// load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// MachineConfig configures the virtual machine.
type MachineConfig struct {
	StackSize int  `toml:"stack-size"`
	MaxSteps  int  `toml:"max-steps"`
	Trace     bool `toml:"trace"`
}

// ProgramConfig configures which program to run.
type ProgramConfig struct {
	Path  string `toml:"path"`  // program file, relative to Dir
	Entry string `toml:"entry"` // label to start from; empty means index 0
}

// LibraryConfig configures the local program library.
type LibraryConfig struct {
	Path string `toml:"path"` // sqlite database, relative to Dir
}

// Load parses a bananabread.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "bananabread.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Machine.StackSize == 0 {
		m.Machine.StackSize = 1024
	}
	if m.Library.Path == "" {
		m.Library.Path = "programs.db"
	}

	return &m, nil
}

// ProgramPath returns the absolute path of the configured program file,
// or empty when none is configured.
func (m *Manifest) ProgramPath() string {
	if m.Program.Path == "" {
		return ""
	}
	return filepath.Join(m.Dir, m.Program.Path)
}

// LibraryPath returns the absolute path of the program library database.
func (m *Manifest) LibraryPath() string {
	return filepath.Join(m.Dir, m.Library.Path)
}
