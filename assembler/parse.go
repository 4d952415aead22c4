package assembler

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reIdxProgram = regexp.MustCompile(`^\[IX\+([0-9a-fA-F]{1,2})\]$`)
	reIdxData    = regexp.MustCompile(`^\(IX\+([0-9a-fA-F]{1,2})\)$`)
	reAbsProgram = regexp.MustCompile(`^\[([0-9a-fA-F]{1,2})\]$`)
	reAbsData    = regexp.MustCompile(`^\(([0-9a-fA-F]{1,2})\)$`)
	reHexByte    = regexp.MustCompile(`^[0-9a-fA-F]{1,2}$`)
	reSymbol     = regexp.MustCompile(`^[A-Z]+$`)
)

// operandBMatchers are tried in order; the indexed forms come before the
// absolute ones so that "[IX+10]" is never read as an absolute address.
var operandBMatchers = []func(string) (OperandB, bool){
	tryParseRegisterB,
	tryParseIndexed,
	tryParseAbsolute,
	tryParseImmediate,
}

// parseOperandA classifies the first operand of an instruction.
func parseOperandA(s string) (OperandA, error) {
	if op, ok := tryParseRegisterA(s); ok {
		return op, nil
	}
	if op, ok := tryParseTarget(s); ok {
		return op, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnrecognizedOperand, s)
}

// parseOperandB classifies the second operand and advances pc by the
// width the operand gives its instruction.
func parseOperandB(s string, pc *int) (OperandB, error) {
	for _, try := range operandBMatchers {
		if op, ok := try(s); ok {
			*pc += op.Mode().Width()
			return op, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnrecognizedOperand, s)
}

// --- Helper Functions for Operand Groups ---

func tryParseRegisterA(s string) (OperandA, bool) {
	switch s {
	case "ACC":
		return Accumulator{}, true
	case "IX":
		return IndexRegister{}, true
	}
	return nil, false
}

// tryParseTarget handles a bare address literal or an uppercase symbol.
// Literals win, so "C" is address 0C and never a label.
func tryParseTarget(s string) (OperandA, bool) {
	if reHexByte.MatchString(s) {
		return Destination(hexByte(s)), true
	}
	if reSymbol.MatchString(s) {
		return Symbol(s), true
	}
	return nil, false
}

func tryParseRegisterB(s string) (OperandB, bool) {
	switch s {
	case "ACC":
		return Accumulator{}, true
	case "IX":
		return IndexRegister{}, true
	}
	return nil, false
}

// tryParseIndexed handles [IX+d] and (IX+d).
func tryParseIndexed(s string) (OperandB, bool) {
	if m := reIdxProgram.FindStringSubmatch(s); m != nil {
		return IdxProgram(hexByte(m[1])), true
	}
	if m := reIdxData.FindStringSubmatch(s); m != nil {
		return IdxData(hexByte(m[1])), true
	}
	return nil, false
}

// tryParseAbsolute handles [d] and (d).
func tryParseAbsolute(s string) (OperandB, bool) {
	if m := reAbsProgram.FindStringSubmatch(s); m != nil {
		return AbsProgram(hexByte(m[1])), true
	}
	if m := reAbsData.FindStringSubmatch(s); m != nil {
		return AbsData(hexByte(m[1])), true
	}
	return nil, false
}

func tryParseImmediate(s string) (OperandB, bool) {
	if reHexByte.MatchString(s) {
		return Immediate(hexByte(s)), true
	}
	return nil, false
}

// hexByte converts one or two hex digits already validated by a pattern.
func hexByte(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}
