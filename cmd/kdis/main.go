package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/grimdork/climate/arg"
	"github.com/tebeka/atexit"

	"github.com/Urethramancer/kue2/disassembler"
)

func main() {
	opt := arg.New("kdis")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Output file. Defaults to stdout.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "b", "binary", "Input is raw bytes instead of hex text.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Machine code to disassemble.", "", true, arg.VarString)

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

	if err := run(opt.GetPosString("FILE"), opt.GetString("output"), opt.GetBool("binary"), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(input, output string, binary bool, stdout, stderr io.Writer) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	code := data
	if !binary {
		code, err = disassembler.ParseHex(bytes.NewReader(data))
		if err != nil {
			return err
		}
	}

	text, err := disassembler.Disassemble(code)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	done := false
	atexit.Register(func() {
		if !done {
			f.Close()
			os.Remove(output)
		}
	})

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	done = true
	fmt.Fprintf(stderr, "Disassembly written to %s\n", output)
	return nil
}
