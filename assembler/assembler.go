package assembler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/Urethramancer/kue2/isa"
)

// Format selects how machine code is written.
type Format int

const (
	// FormatHex writes one instruction per line as uppercase hex bytes.
	FormatHex Format = iota
	// FormatBinary writes the raw bytes.
	FormatBinary
)

// Options configure an Assembler.
type Options struct {
	// StrictLabels makes a redeclared label an error instead of replacing the earlier address.
	StrictLabels bool
	// Format of the output written by Assemble.
	Format Format
	// Logger receives pass tracing. Nil means slog.Default().
	Logger *slog.Logger
}

// Assembler holds the settings for the assembly process.
type Assembler struct {
	opts Options
	log  *slog.Logger
}

// Result of a complete assembly.
type Result struct {
	Program *Program
	Code    Code
}

// New creates a new Assembler instance.
func New(opts Options) *Assembler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{opts: opts, log: log}
}

// Assemble reads KUE-CHIP2 source from r, runs both passes and writes the
// machine code to w. Nothing is written unless both passes succeed.
// A nil w only returns the result.
func (asm *Assembler) Assemble(r io.Reader, w io.Writer) (*Result, error) {
	prog, err := asm.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	code, err := Encode(prog.Instructions, prog.Symbols)
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}

	if w != nil {
		var buf bytes.Buffer
		switch asm.opts.Format {
		case FormatBinary:
			err = code.WriteBinary(&buf)
		default:
			err = code.WriteHex(&buf)
		}
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}
	}

	asm.log.Debug("assembled", "instructions", len(prog.Instructions), "bytes", prog.Size, "labels", prog.Symbols.Len())
	return &Result{Program: prog, Code: code}, nil
}

// ParseReader reads all lines from r and runs the first pass over them.
func (asm *Assembler) ParseReader(r io.Reader) (*Program, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return asm.Parse(lines)
}

// Parse runs the first pass: it classifies every line, tracks the program
// counter and builds the symbol table. The first bad line aborts the pass.
func (asm *Assembler) Parse(lines []string) (*Program, error) {
	prog := &Program{Symbols: NewSymbolTable()}
	pc := 0

	for i, raw := range lines {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		st, err := recognize(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line, Err: err}
		}

		if st.label != "" {
			if err := asm.declare(prog.Symbols, st.label, pc); err != nil {
				return nil, &LineError{Line: i + 1, Text: line, Err: err}
			}
			continue
		}

		in, err := buildInstruction(st, &pc)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: line, Err: err}
		}
		in.Line = i + 1
		in.Source = line
		prog.Instructions = append(prog.Instructions, in)
		asm.log.Debug("instruction", "line", in.Line, "address", in.Address, "size", in.Size, "kind", in.Kind.String(), "source", line)
	}

	prog.Size = pc
	return prog, nil
}

// declare records a label at the current program counter.
func (asm *Assembler) declare(symbols *SymbolTable, label string, pc int) error {
	if pc >= isa.AddressSpace {
		return fmt.Errorf("%w: label %s at %03X", ErrProgramTooLarge, label, pc)
	}
	if prev, ok := symbols.Lookup(label); ok {
		if asm.opts.StrictLabels {
			return fmt.Errorf("%w: %s already at %02X", ErrDuplicateLabel, label, prev)
		}
		asm.log.Warn("label redeclared", "label", label, "previous", prev, "address", pc)
	}
	symbols.define(label, uint8(pc))
	asm.log.Debug("label", "name", label, "address", pc)
	return nil
}

// buildInstruction classifies the operands of a recognised statement and
// advances pc by the instruction width.
func buildInstruction(st statement, pc *int) (*Instruction, error) {
	start := *pc
	in := &Instruction{Kind: st.kind, Mnemonic: st.mnemonic}

	var err error
	switch st.kind {
	case KindMAL:
		if in.A, err = parseOperandA(st.operands[0]); err != nil {
			return nil, err
		}
		// Operand B decides the width, so it moves the counter.
		if in.B, err = parseOperandB(st.operands[1], pc); err != nil {
			return nil, err
		}
	case KindBranch:
		if in.A, err = parseOperandA(st.operands[0]); err != nil {
			return nil, err
		}
		*pc += isa.WidthLong
	case KindShift:
		if in.A, err = parseOperandA(st.operands[0]); err != nil {
			return nil, err
		}
		*pc += isa.WidthShort
	case KindControl:
		*pc += isa.WidthShort
	}

	if err := validate(in); err != nil {
		return nil, err
	}
	if *pc > isa.AddressSpace {
		return nil, fmt.Errorf("%w: %s ends at %03X", ErrProgramTooLarge, st.mnemonic, *pc)
	}
	in.Address = uint8(start)
	in.Size = *pc - start
	return in, nil
}

// validate checks the operand variants an instruction of each kind may carry.
func validate(in *Instruction) error {
	switch in.Kind {
	case KindMAL:
		if !isa.IsMAL(in.Mnemonic) {
			return fmt.Errorf("%w: %s", ErrUnknownInstruction, in.Mnemonic)
		}
		if !isRegister(in.A) {
			return fmt.Errorf("%w: %s needs ACC or IX first, got %v", ErrUnrecognizedOperand, in.Mnemonic, in.A)
		}
		if in.B == nil {
			return fmt.Errorf("%w: %s needs a second operand", ErrUnrecognizedOperand, in.Mnemonic)
		}
	case KindControl:
		if !isa.IsControl(in.Mnemonic) {
			return fmt.Errorf("%w: %s", ErrUnknownInstruction, in.Mnemonic)
		}
		if in.A != nil || in.B != nil {
			return fmt.Errorf("%w: %s takes no operands", ErrUnrecognizedOperand, in.Mnemonic)
		}
	case KindShift:
		if _, err := shiftOpcode(in.Mnemonic); err != nil {
			return err
		}
		if !isRegister(in.A) || in.B != nil {
			return fmt.Errorf("%w: %s needs ACC or IX", ErrUnrecognizedOperand, in.Mnemonic)
		}
	case KindBranch:
		if _, err := branchOpcode(in.Mnemonic); err != nil {
			return err
		}
		switch in.A.(type) {
		case Destination, Symbol:
		default:
			return fmt.Errorf("%w: %s needs an address or label, got %v", ErrUnrecognizedOperand, in.Mnemonic, in.A)
		}
		if in.B != nil {
			return fmt.Errorf("%w: %s takes one operand", ErrUnrecognizedOperand, in.Mnemonic)
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrUnknownInstruction, in.Kind)
	}
	return nil
}

func isRegister(a OperandA) bool {
	switch a.(type) {
	case Accumulator, IndexRegister:
		return true
	}
	return false
}
