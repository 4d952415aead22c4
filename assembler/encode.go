package assembler

import (
	"fmt"

	"github.com/Urethramancer/kue2/isa"
)

// Code holds the encoded bytes of each instruction, in source order.
type Code [][]byte

// Bytes returns the program image.
func (c Code) Bytes() []byte {
	var out []byte
	for _, b := range c {
		out = append(out, b...)
	}
	return out
}

// Encode runs the second pass over a parsed program using the finished symbol table.
func Encode(prog []*Instruction, symbols *SymbolTable) (Code, error) {
	code := make(Code, 0, len(prog))
	for _, in := range prog {
		b, err := EncodeInstruction(in, symbols)
		if err != nil {
			if in.Line > 0 {
				return nil, fmt.Errorf("line %d: %w", in.Line, err)
			}
			return nil, err
		}
		code = append(code, b)
	}
	return code, nil
}

// EncodeInstruction computes the opcode byte and any operand byte of one instruction.
func EncodeInstruction(in *Instruction, symbols *SymbolTable) ([]byte, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	switch in.Kind {
	case KindMAL:
		return encodeMAL(in)
	case KindControl:
		op, _ := isa.ControlOpcode(in.Mnemonic)
		return []byte{op}, nil
	case KindShift:
		op, _ := shiftOpcode(in.Mnemonic)
		if _, ok := in.A.(IndexRegister); ok {
			op += isa.IX
		}
		return []byte{op}, nil
	case KindBranch:
		return encodeBranch(in, symbols)
	}
	return nil, fmt.Errorf("%w: kind %d", ErrUnknownInstruction, in.Kind)
}

// encodeMAL adds the operand A register bit and the operand B mode to the base opcode.
func encodeMAL(in *Instruction) ([]byte, error) {
	op, _ := isa.MALOpcode(in.Mnemonic)
	if _, ok := in.A.(IndexRegister); ok {
		op += isa.IX
	}
	op += uint8(in.B.Mode())

	if b, ok := in.B.Byte(); ok {
		return []byte{op, b}, nil
	}
	return []byte{op}, nil
}

func encodeBranch(in *Instruction, symbols *SymbolTable) ([]byte, error) {
	op, _ := branchOpcode(in.Mnemonic)

	switch target := in.A.(type) {
	case Destination:
		return []byte{op, uint8(target)}, nil
	case Symbol:
		if symbols != nil {
			if addr, ok := symbols.Lookup(string(target)); ok {
				return []byte{op, addr}, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingSymbol, target)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnrecognizedOperand, in.A)
}

// shiftOpcode returns the opcode of a shift mnemonic for ACC.
func shiftOpcode(mn string) (uint8, error) {
	if len(mn) != 3 || (mn[0] != 'S' && mn[0] != 'R') {
		return 0, fmt.Errorf("%w: %s", ErrUnknownInstruction, mn)
	}
	mode, ok := isa.ShiftMode(mn[1:3])
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownInstruction, mn)
	}
	op := uint8(isa.OPShift) + mode
	if mn[0] == 'R' {
		op += isa.OPRotate
	}
	return op, nil
}

// branchOpcode returns the opcode of a branch mnemonic.
func branchOpcode(mn string) (uint8, error) {
	if len(mn) < 2 || mn[0] != 'B' {
		return 0, fmt.Errorf("%w: %s", ErrUnknownInstruction, mn)
	}
	cond, ok := isa.BranchCondition(mn[1:])
	if !ok {
		return 0, fmt.Errorf("%w: unknown branch condition %s", ErrUnknownInstruction, mn[1:])
	}
	return isa.OPBranch + cond, nil
}
