// Bananabread CLI - runs and manages Bananabread programs
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/minond/bananabread/instruction"
	"github.com/minond/bananabread/library"
	"github.com/minond/bananabread/manifest"
	"github.com/minond/bananabread/vm"
	"github.com/minond/bananabread/vm/dist"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("bananabread")

func main() {
	projectDir := flag.String("C", ".", "Project directory (where bananabread.toml lives)")
	trace := flag.Bool("trace", false, "Trace every dispatched instruction")
	dis := flag.Bool("dis", false, "Disassemble the program instead of running it")
	entry := flag.String("m", "", "Entry label (overrides manifest)")
	storeName := flag.String("store", "", "Store the given program file into the library under this name")
	loadName := flag.String("load", "", "Run a program from the library by name")
	list := flag.Bool("list", false, "List programs in the library")
	deleteName := flag.String("delete", "", "Delete a program from the library by name")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bb [options] [program.bbc]\n\n")
		fmt.Fprintf(os.Stderr, "Runs a Bananabread program, or manages the local program library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  bb fib.bbc                 # Run a program file\n")
		fmt.Fprintf(os.Stderr, "  bb -trace -m main fib.bbc  # Run from the 'main' label with tracing\n")
		fmt.Fprintf(os.Stderr, "  bb -store fib fib.bbc      # Store fib.bbc in the library as 'fib'\n")
		fmt.Fprintf(os.Stderr, "  bb -load fib               # Run 'fib' from the library\n")
		fmt.Fprintf(os.Stderr, "  bb -list                   # List stored programs\n")
		fmt.Fprintf(os.Stderr, "  bb -dis fib.bbc            # Print a disassembly listing\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	m := loadManifest(*projectDir)

	switch {
	case *list:
		withLibrary(m, listPrograms)
	case *deleteName != "":
		withLibrary(m, func(lib *library.Library) error {
			return lib.Delete(*deleteName)
		})
	case *storeName != "":
		if flag.NArg() != 1 {
			fatalf("-store needs exactly one program file")
		}
		withLibrary(m, func(lib *library.Library) error {
			return storeProgram(lib, *storeName, flag.Arg(0))
		})
	case *loadName != "":
		withLibrary(m, func(lib *library.Library) error {
			data, err := lib.Load(*loadName)
			if err != nil {
				return err
			}
			return runWire(data, m, runOptions{
				name:        *loadName,
				entry:       *entry,
				trace:       *trace,
				disassemble: *dis,
			})
		})
	default:
		path, err := programPath(m, flag.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
			flag.Usage()
			os.Exit(2)
		}
		if path == "" {
			flag.Usage()
			os.Exit(2)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fatalf("cannot read program: %v", err)
		}
		opts := runOptions{
			name:        path,
			entry:       *entry,
			trace:       *trace,
			disassemble: *dis,
		}
		if err := runWire(data, m, opts); err != nil {
			fatalf("%v", err)
		}
	}
}

// loadManifest reads the project manifest, falling back to defaults when
// there is none.
func loadManifest(dir string) *manifest.Manifest {
	m, err := manifest.Load(dir)
	if err != nil {
		log.Infof("no manifest in %s, using defaults", dir)
		return &manifest.Manifest{
			Dir:     dir,
			Machine: manifest.MachineConfig{StackSize: 1024},
			Library: manifest.LibraryConfig{Path: "programs.db"},
		}
	}
	log.Infof("loaded manifest for %s", m.Project.Name)
	return m
}

// programPath picks the program file to run: a single positional
// argument wins, otherwise the manifest's program path.
func programPath(m *manifest.Manifest, args []string) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("expected at most one program file, got %d arguments", len(args))
	case len(args) == 1:
		return args[0], nil
	default:
		return m.ProgramPath(), nil
	}
}

func withLibrary(m *manifest.Manifest, fn func(*library.Library) error) {
	lib, err := library.Open(m.LibraryPath())
	if err != nil {
		fatalf("cannot open library: %v", err)
	}
	defer lib.Close()

	if err := fn(lib); err != nil {
		fatalf("%v", err)
	}
}

func listPrograms(lib *library.Library) error {
	entries, err := lib.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%-24s %8d bytes  %s  %s\n", e.Name, e.Size, e.Hash[:12], e.SavedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func storeProgram(lib *library.Library, name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read program: %w", err)
	}
	// Validate before storing; the library should never hold bytes the
	// loader will refuse.
	if _, err := dist.UnmarshalProgram(data); err != nil {
		return fmt.Errorf("refusing to store %s: %w", path, err)
	}
	if err := lib.Save(name, data); err != nil {
		return err
	}
	log.Infof("stored %s as %q", path, name)
	return nil
}

func runWire(data []byte, m *manifest.Manifest, opts runOptions) error {
	program, err := dist.UnmarshalProgram(data)
	if err != nil {
		return err
	}
	if opts.disassemble {
		fmt.Print(program.DisassembleWithName(opts.name))
		return nil
	}
	return run(program, m, opts)
}

// runOptions carries the per-invocation run settings from the CLI flags.
type runOptions struct {
	name        string // program name, for listings
	entry       string // entry label override
	trace       bool
	disassemble bool
}

func run(program *instruction.Program, m *manifest.Manifest, opts runOptions) error {
	machine := vm.NewMachine(program, m.Machine.StackSize)
	machine.MaxSteps = m.Machine.MaxSteps
	if opts.trace || m.Machine.Trace {
		machine.SetTraceOutput(os.Stderr)
	}

	entry := opts.entry
	if entry == "" {
		entry = m.Program.Entry
	}
	if entry != "" {
		if err := machine.Jump(entry); err != nil {
			return err
		}
	}

	// Errors surface once, through the caller's fatalf.
	return machine.Run()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
