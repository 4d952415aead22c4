package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
	"github.com/tebeka/atexit"

	"github.com/Urethramancer/kue2/assembler"
	"github.com/Urethramancer/kue2/config"
)

func main() {
	opt := arg.New("kasm")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Output file. Defaults to stdout.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "c", "config", "Configuration file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "b", "binary", "Write raw bytes instead of hex text.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "l", "listing", "Print a listing.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "s", "symbols", "Print the symbol table.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "dump", "Dump the parsed program to stderr.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "S", "strict", "Treat redeclared labels as errors.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Debug logging.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Source file to assemble.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if opt.GetBool("help") {
		opt.PrintHelp()
		atexit.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		opt.PrintHelp()
		atexit.Exit(2)
	}

	cfg, err := config.Load(opt.GetString("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	if s := opt.GetString("output"); s != "" {
		cfg.Output = s
	}
	if opt.GetBool("binary") {
		cfg.Format = config.FormatBinary
	}
	cfg.Listing = cfg.Listing || opt.GetBool("listing")
	cfg.Symbols = cfg.Symbols || opt.GetBool("symbols")
	cfg.StrictLabels = cfg.StrictLabels || opt.GetBool("strict")
	if opt.GetBool("verbose") {
		cfg.LogLevel = "debug"
	}

	lvl, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	if err := run(opt.GetPosString("FILE"), cfg, opt.GetBool("dump"), log, os.Stdout, os.Stderr); err != nil {
		log.Error("assembly failed", "err", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(path string, cfg config.Config, dump bool, log *slog.Logger, stdout, stderr io.Writer) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	format := assembler.FormatHex
	if cfg.Format == config.FormatBinary {
		format = assembler.FormatBinary
	}

	asm := assembler.New(assembler.Options{
		StrictLabels: cfg.StrictLabels,
		Format:       format,
		Logger:       log,
	})
	var code bytes.Buffer
	res, err := asm.Assemble(src, &code)
	if err != nil {
		return err
	}

	// Reports share stdout only when the code goes to a file.
	reports := stdout
	if cfg.Output == "" {
		if _, err := stdout.Write(code.Bytes()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		reports = stderr
	} else if err := writeOutput(cfg.Output, code.Bytes()); err != nil {
		return err
	}

	if dump {
		pp.Fprintln(stderr, res.Program)
	}
	if cfg.Listing {
		assembler.Listing(reports, res.Program, res.Code)
	}
	if cfg.Symbols {
		assembler.SymbolReport(reports, res.Program.Symbols)
	}

	log.Info("assembled", "file", path, "bytes", res.Program.Size, "labels", res.Program.Symbols.Len())
	return nil
}

// writeOutput stores data at path. The file is removed at exit unless it
// was written and closed cleanly.
func writeOutput(path string, data []byte) error {
	out, err := createOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return out.commit()
}

// outputFile is a file that is deleted by discard unless commit succeeded.
type outputFile struct {
	*os.File
	path string
	done bool
}

func createOutput(path string) (*outputFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	out := &outputFile{File: f, path: path}
	atexit.Register(out.discard)
	return out, nil
}

// commit closes the file and keeps it.
func (o *outputFile) commit() error {
	if err := o.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	o.done = true
	return nil
}

func (o *outputFile) discard() {
	if o.done {
		return
	}
	o.Close()
	os.Remove(o.path)
}
