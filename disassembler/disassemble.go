package disassembler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Urethramancer/kue2/assembler"
	"github.com/Urethramancer/kue2/isa"
)

var (
	// ErrInvalidOpcode is returned for a byte that is not a KUE-CHIP2 opcode.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrTruncated is returned when the operand byte of the last instruction is missing.
	ErrTruncated = errors.New("truncated instruction")
	// ErrImageTooLarge is returned for code that does not fit the address space.
	ErrImageTooLarge = errors.New("image exceeds address space")
)

// Disassemble renders KUE-CHIP2 machine code as source text that
// reassembles to the same bytes. Branch targets landing on an
// instruction get a label.
func Disassemble(code []byte) (string, error) {
	if len(code) == 0 {
		return "", nil
	}
	if len(code) > isa.AddressSpace {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(code))
	}

	// --- STAGE 1: Linear Sweep ---
	var instructions []*assembler.Instruction
	starts := make(map[int]bool)
	for pc := 0; pc < len(code); {
		in, err := Decode(code, pc)
		if err != nil {
			return "", err
		}
		instructions = append(instructions, in)
		starts[pc] = true
		pc += in.Size
	}
	// A branch may target the address just past the last instruction.
	if len(code) < isa.AddressSpace {
		starts[len(code)] = true
	}

	// --- STAGE 2: Branch Targets ---
	labels := make(map[int]string)
	for _, in := range instructions {
		if in.Kind != assembler.KindBranch {
			continue
		}
		target := int(in.A.(assembler.Destination))
		if starts[target] {
			labels[target] = labelName(uint8(target))
		}
	}

	// --- STAGE 3: Render Final Output ---
	var out strings.Builder
	for _, in := range instructions {
		if name, ok := labels[int(in.Address)]; ok {
			fmt.Fprintf(&out, "%s:\n", name)
		}
		if in.Kind == assembler.KindBranch {
			if name, ok := labels[int(in.A.(assembler.Destination))]; ok {
				in.A = assembler.Symbol(name)
			}
		}
		writeInstruction(&out, in)
	}
	if name, ok := labels[len(code)]; ok {
		fmt.Fprintf(&out, "%s:\n", name)
	}
	return out.String(), nil
}

// Decode decodes the instruction starting at code[pc].
func Decode(code []byte, pc int) (*assembler.Instruction, error) {
	if pc >= isa.AddressSpace {
		return nil, fmt.Errorf("%w: address %03X", ErrImageTooLarge, pc)
	}
	if pc < 0 || pc >= len(code) {
		return nil, fmt.Errorf("%w: no instruction at %02X", ErrTruncated, pc)
	}
	op := code[pc]
	in := &assembler.Instruction{Address: uint8(pc), Size: isa.WidthShort}

	operandByte := func() (uint8, error) {
		if pc+1 >= len(code) {
			return 0, fmt.Errorf("%w: %02X at %02X needs an operand byte", ErrTruncated, op, pc)
		}
		in.Size = isa.WidthLong
		return code[pc+1], nil
	}

	if name, ok := isa.ControlName(op); ok {
		in.Kind = assembler.KindControl
		in.Mnemonic = name
		return in, nil
	}

	if name, ok := isa.BranchName(op); ok {
		target, err := operandByte()
		if err != nil {
			return nil, err
		}
		in.Kind = assembler.KindBranch
		in.Mnemonic = name
		in.A = assembler.Destination(target)
		return in, nil
	}

	if name, ok := isa.ShiftName(op); ok {
		in.Kind = assembler.KindShift
		in.Mnemonic = name
		in.A = register(op)
		return in, nil
	}

	if name, ok := isa.MALName(op); ok {
		mode := isa.Mode(op & 0x07)
		if !mode.Valid() {
			return nil, fmt.Errorf("%w: %02X at %02X uses reserved mode %d", ErrInvalidOpcode, op, pc, mode)
		}
		var b uint8
		if mode.HasOperand() {
			var err error
			if b, err = operandByte(); err != nil {
				return nil, err
			}
		}
		operand, err := assembler.OperandForMode(mode, b)
		if err != nil {
			return nil, err
		}
		in.Kind = assembler.KindMAL
		in.Mnemonic = name
		in.A = register(op)
		in.B = operand
		return in, nil
	}

	return nil, fmt.Errorf("%w: %02X at %02X", ErrInvalidOpcode, op, pc)
}

// register returns the register selected by the IX bit of op.
func register(op uint8) assembler.OperandA {
	if op&isa.IX != 0 {
		return assembler.IndexRegister{}
	}
	return assembler.Accumulator{}
}

func writeInstruction(out *strings.Builder, in *assembler.Instruction) {
	var operands []string
	if in.A != nil {
		operands = append(operands, in.A.String())
	}
	if in.B != nil {
		operands = append(operands, in.B.String())
	}
	if len(operands) == 0 {
		fmt.Fprintf(out, "    %s\n", in.Mnemonic)
		return
	}
	fmt.Fprintf(out, "    %-4s %s\n", in.Mnemonic, strings.Join(operands, " "))
}
