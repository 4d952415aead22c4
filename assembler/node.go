package assembler

import (
	"strings"
)

// Kind defines the category of a parsed instruction.
type Kind int

const (
	// KindMAL is a data transfer, arithmetic or logical instruction. It carries both operands.
	KindMAL Kind = iota
	// KindControl carries no operands.
	KindControl
	// KindShift carries the shifted register as operand A.
	KindShift
	// KindBranch carries a destination or symbol as operand A.
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindMAL:
		return "mal"
	case KindControl:
		return "control"
	case KindShift:
		return "shift"
	case KindBranch:
		return "branch"
	}
	return "unknown"
}

// Instruction represents one parsed source line.
type Instruction struct {
	Kind     Kind
	Mnemonic string
	A        OperandA
	B        OperandB

	Line    int    // 1-based source line, 0 if built by hand
	Source  string // normalised source text
	Address uint8  // program counter before this instruction
	Size    int    // encoded width in bytes
}

// String renders the instruction in canonical source form.
func (in *Instruction) String() string {
	parts := []string{in.Mnemonic}
	if in.A != nil {
		parts = append(parts, in.A.String())
	}
	if in.B != nil {
		parts = append(parts, in.B.String())
	}
	return strings.Join(parts, " ")
}

// Program is the result of the first pass.
type Program struct {
	Instructions []*Instruction
	Symbols      *SymbolTable
	Size         int // final program counter
}
