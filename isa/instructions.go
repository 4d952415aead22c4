package isa

// AddressSpace is the number of byte locations the program counter can address.
const AddressSpace = 256

// Opcodes and opcode bases.
const (
	// Control Instructions
	OPNOP = 0x00 // No operation
	OPHLT = 0x0F // Halt
	OPOUT = 0x10 // Output ACC to OBUF
	OPIN  = 0x1F // Input IBUF to ACC
	OPRCF = 0x20 // Reset carry flag
	OPSCF = 0x2F // Set carry flag

	// Branch Instructions (condition code is added)
	OPBranch = 0x30

	// Shift and Rotate Instructions (mode is added)
	OPShift  = 0x40
	OPRotate = 0x04 // Added to OPShift for the R-prefixed forms

	// Data Transfer, Arithmetic and Logical Instructions (operand modes are added)
	OPLD  = 0x60 // Load
	OPST  = 0x70 // Store
	OPSBC = 0x80 // Subtract with carry
	OPADC = 0x90 // Add with carry
	OPSUB = 0xA0 // Subtract
	OPADD = 0xB0 // Add
	OPEOR = 0xC0 // Exclusive or
	OPOR  = 0xD0 // Or
	OPAND = 0xE0 // And
	OPCMP = 0xF0 // Compare

	// IX selects the index register as operand A (MAL) or as the shifted register.
	IX = 0x08
)

var (
	malOpcodes = map[string]uint8{
		"LD":  OPLD,
		"ST":  OPST,
		"ADD": OPADD,
		"ADC": OPADC,
		"SUB": OPSUB,
		"SBC": OPSBC,
		"CMP": OPCMP,
		"AND": OPAND,
		"OR":  OPOR,
		"EOR": OPEOR,
	}

	controlOpcodes = map[string]uint8{
		"NOP": OPNOP,
		"HLT": OPHLT,
		"OUT": OPOUT,
		"IN":  OPIN,
		"RCF": OPRCF,
		"SCF": OPSCF,
	}

	shiftModes = map[string]uint8{
		"RA": 0x0, // right arithmetic
		"LA": 0x1, // left arithmetic
		"RL": 0x2, // right logical
		"LL": 0x3, // left logical
	}

	branchConditions = map[string]uint8{
		"A":  0x0, // always
		"NZ": 0x1, // not zero
		"ZP": 0x2, // zero or positive
		"P":  0x3, // positive
		"NI": 0x4, // no input
		"NC": 0x5, // no carry
		"GE": 0x6, // greater or equal
		"GT": 0x7, // greater than
		"VF": 0x8, // overflow
		"Z":  0x9, // zero
		"N":  0xA, // negative
		"ZN": 0xB, // zero or negative
		"NO": 0xC, // no output
		"C":  0xD, // carry
		"LT": 0xE, // less than
		"LE": 0xF, // less or equal
	}

	// Reverse tables for decoding, filled once by init.
	malNames       = map[uint8]string{}
	controlNames   = map[uint8]string{}
	shiftModeNames = map[uint8]string{}
	branchNames    = map[uint8]string{}
)

func init() {
	for k, v := range malOpcodes {
		malNames[v] = k
	}
	for k, v := range controlOpcodes {
		controlNames[v] = k
	}
	for k, v := range shiftModes {
		shiftModeNames[v] = k
	}
	for k, v := range branchConditions {
		branchNames[v] = k
	}
}

// MALOpcode returns the base opcode of a data transfer, arithmetic or logical mnemonic.
func MALOpcode(mnemonic string) (uint8, bool) {
	op, ok := malOpcodes[mnemonic]
	return op, ok
}

// ControlOpcode returns the opcode of a control mnemonic.
func ControlOpcode(mnemonic string) (uint8, bool) {
	op, ok := controlOpcodes[mnemonic]
	return op, ok
}

// ShiftMode returns the mode offset for a two-letter shift mode such as "RA".
func ShiftMode(mode string) (uint8, bool) {
	m, ok := shiftModes[mode]
	return m, ok
}

// BranchCondition returns the offset of a branch condition suffix such as "NZ".
func BranchCondition(cond string) (uint8, bool) {
	c, ok := branchConditions[cond]
	return c, ok
}

// MALName returns the mnemonic whose base opcode is the high nibble of op.
func MALName(op uint8) (string, bool) {
	name, ok := malNames[op&0xF0]
	return name, ok
}

// ControlName returns the control mnemonic for op.
func ControlName(op uint8) (string, bool) {
	name, ok := controlNames[op]
	return name, ok
}

// ShiftName returns the shift or rotate mnemonic encoded in op, ignoring the IX bit.
func ShiftName(op uint8) (string, bool) {
	if op&0xF0 != OPShift {
		return "", false
	}
	prefix := "S"
	if op&OPRotate != 0 {
		prefix = "R"
	}
	return prefix + shiftModeNames[op&0x03], true
}

// BranchName returns the branch mnemonic for op.
func BranchName(op uint8) (string, bool) {
	if op&0xF0 != OPBranch {
		return "", false
	}
	return "B" + branchNames[op&0x0F], true
}

// IsMAL reports whether mnemonic names a data transfer, arithmetic or logical instruction.
func IsMAL(mnemonic string) bool {
	_, ok := malOpcodes[mnemonic]
	return ok
}

// IsControl reports whether mnemonic names a control instruction.
func IsControl(mnemonic string) bool {
	_, ok := controlOpcodes[mnemonic]
	return ok
}
