package disassembler

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidHex is returned for hex text that is not two-digit byte tokens.
var ErrInvalidHex = errors.New("invalid hex")

// ParseHex reads assembler hex output: whitespace separated two-digit bytes, any number per line.
func ParseHex(r io.Reader) ([]byte, error) {
	var code []byte
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		for _, tok := range strings.Fields(scanner.Text()) {
			if len(tok) != 2 {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrInvalidHex, tok)
			}
			b, err := hex.DecodeString(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrInvalidHex, tok)
			}
			code = append(code, b[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading hex: %w", err)
	}
	return code, nil
}
