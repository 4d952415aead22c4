package assembler

import (
	"fmt"

	"github.com/Urethramancer/kue2/isa"
)

// OperandA is the first operand of an instruction: a register for
// MAL and shift instructions, a destination or symbol for branches.
type OperandA interface {
	operandA()
	String() string
}

// OperandB is the second operand of a MAL instruction.
type OperandB interface {
	operandB()
	String() string
	// Mode returns the addressing mode added to the opcode.
	Mode() isa.Mode
	// Byte returns the operand byte that follows the opcode, if any.
	Byte() (uint8, bool)
}

// Accumulator is the ACC register.
type Accumulator struct{}

// IndexRegister is the IX register.
type IndexRegister struct{}

// Destination is a literal branch target address.
type Destination uint8

// Symbol is a branch target resolved through the symbol table.
type Symbol string

// Immediate is a data byte.
type Immediate uint8

// AbsProgram is [d].
type AbsProgram uint8

// AbsData is (d).
type AbsData uint8

// IdxProgram is [IX+d].
type IdxProgram uint8

// IdxData is (IX+d).
type IdxData uint8

func (Accumulator) operandA()   {}
func (IndexRegister) operandA() {}
func (Destination) operandA()   {}
func (Symbol) operandA()        {}

func (Accumulator) operandB()   {}
func (IndexRegister) operandB() {}
func (Immediate) operandB()     {}
func (AbsProgram) operandB()    {}
func (AbsData) operandB()       {}
func (IdxProgram) operandB()    {}
func (IdxData) operandB()       {}

func (Accumulator) String() string   { return "ACC" }
func (IndexRegister) String() string { return "IX" }
func (d Destination) String() string { return fmt.Sprintf("%02X", uint8(d)) }
func (s Symbol) String() string      { return string(s) }
func (v Immediate) String() string   { return fmt.Sprintf("%02X", uint8(v)) }
func (v AbsProgram) String() string  { return fmt.Sprintf("[%02X]", uint8(v)) }
func (v AbsData) String() string     { return fmt.Sprintf("(%02X)", uint8(v)) }
func (v IdxProgram) String() string  { return fmt.Sprintf("[IX+%02X]", uint8(v)) }
func (v IdxData) String() string     { return fmt.Sprintf("(IX+%02X)", uint8(v)) }

func (Accumulator) Mode() isa.Mode   { return isa.ModeACC }
func (IndexRegister) Mode() isa.Mode { return isa.ModeIX }
func (Immediate) Mode() isa.Mode     { return isa.ModeImmediate }
func (AbsProgram) Mode() isa.Mode    { return isa.ModeAbsProgram }
func (AbsData) Mode() isa.Mode       { return isa.ModeAbsData }
func (IdxProgram) Mode() isa.Mode    { return isa.ModeIdxProgram }
func (IdxData) Mode() isa.Mode       { return isa.ModeIdxData }

func (Accumulator) Byte() (uint8, bool)   { return 0, false }
func (IndexRegister) Byte() (uint8, bool) { return 0, false }
func (v Immediate) Byte() (uint8, bool)   { return uint8(v), true }
func (v AbsProgram) Byte() (uint8, bool)  { return uint8(v), true }
func (v AbsData) Byte() (uint8, bool)     { return uint8(v), true }
func (v IdxProgram) Byte() (uint8, bool)  { return uint8(v), true }
func (v IdxData) Byte() (uint8, bool)     { return uint8(v), true }

// OperandForMode builds the operand B variant for a decoded mode and operand byte.
func OperandForMode(m isa.Mode, b uint8) (OperandB, error) {
	switch m {
	case isa.ModeACC:
		return Accumulator{}, nil
	case isa.ModeIX:
		return IndexRegister{}, nil
	case isa.ModeImmediate:
		return Immediate(b), nil
	case isa.ModeAbsProgram:
		return AbsProgram(b), nil
	case isa.ModeAbsData:
		return AbsData(b), nil
	case isa.ModeIdxProgram:
		return IdxProgram(b), nil
	case isa.ModeIdxData:
		return IdxData(b), nil
	}
	return nil, fmt.Errorf("%w: mode %d", ErrUnrecognizedOperand, m)
}
