package disassembler

// labelName builds a label for addr from letters only, one per nibble
// (0 is A, F is P), so it can never be read back as a hex literal.
func labelName(addr uint8) string {
	return string([]byte{'L', 'A' + addr>>4, 'A' + addr&0x0F})
}
