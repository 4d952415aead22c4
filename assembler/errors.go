package assembler

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInstruction is returned for a line no instruction pattern accepts.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrUnrecognizedOperand is returned for an operand no operand form accepts.
	ErrUnrecognizedOperand = errors.New("unrecognized operand")
	// ErrMissingSymbol is returned when a branch names a label that was never declared.
	ErrMissingSymbol = errors.New("missing symbol")
	// ErrDuplicateLabel is returned for a redeclared label when labels are strict.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrProgramTooLarge is returned when the program counter passes the last address.
	ErrProgramTooLarge = errors.New("program exceeds address space")
)

// LineError locates a first-pass failure in the source.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
