package isa

// Mode is the operand B addressing mode held in the low three bits of a
// data transfer, arithmetic or logical opcode.
type Mode uint8

const (
	// ModeACC uses the accumulator.
	ModeACC Mode = 0x0
	// ModeIX uses the index register.
	ModeIX Mode = 0x1
	// ModeImmediate uses the byte following the opcode.
	ModeImmediate Mode = 0x2
	// ModeAbsProgram is [d], absolute address in the program region.
	ModeAbsProgram Mode = 0x4
	// ModeAbsData is (d), absolute address in the data region.
	ModeAbsData Mode = 0x5
	// ModeIdxProgram is [IX+d], indexed address in the program region.
	ModeIdxProgram Mode = 0x6
	// ModeIdxData is (IX+d), indexed address in the data region.
	ModeIdxData Mode = 0x7
)

// Widths in bytes.
const (
	WidthShort = 1
	WidthLong  = 2
)

// Valid reports whether m is an assigned mode. Mode 3 is reserved.
func (m Mode) Valid() bool {
	return m <= ModeIdxData && m != 0x3
}

// HasOperand reports whether an operand byte follows the opcode.
func (m Mode) HasOperand() bool {
	return m != ModeACC && m != ModeIX
}

// Width returns the encoded instruction width for an operand in this mode.
func (m Mode) Width() int {
	if m.HasOperand() {
		return WidthLong
	}
	return WidthShort
}

func (m Mode) String() string {
	switch m {
	case ModeACC:
		return "ACC"
	case ModeIX:
		return "IX"
	case ModeImmediate:
		return "d"
	case ModeAbsProgram:
		return "[d]"
	case ModeAbsData:
		return "(d)"
	case ModeIdxProgram:
		return "[IX+d]"
	case ModeIdxData:
		return "(IX+d)"
	}
	return "?"
}
