package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// HexLine renders one instruction's bytes as space separated uppercase hex.
func HexLine(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

// WriteHex writes one line per instruction, e.g. "62 3F".
func (c Code) WriteHex(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, b := range c {
		if _, err := bw.WriteString(HexLine(b) + "\n"); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// WriteBinary writes the program image as raw bytes.
func (c Code) WriteBinary(w io.Writer) error {
	if _, err := w.Write(c.Bytes()); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
