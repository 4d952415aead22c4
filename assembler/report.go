package assembler

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Urethramancer/kue2/isa"
)

// Listing writes an assembly listing: address, encoded bytes and source for
// every instruction, with labels on their own rows.
func Listing(w io.Writer, prog *Program, code Code) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Addr", "Code", "Source"})

	for i, in := range prog.Instructions {
		for _, label := range prog.Symbols.At(in.Address) {
			t.AppendRow(table.Row{fmt.Sprintf("%02X", in.Address), "", label + ":"})
		}
		var bytes string
		if i < len(code) {
			bytes = HexLine(code[i])
		}
		t.AppendRow(table.Row{fmt.Sprintf("%02X", in.Address), bytes, in.Source})
	}

	// Labels declared after the last instruction.
	if prog.Size < isa.AddressSpace {
		for _, label := range prog.Symbols.At(uint8(prog.Size)) {
			t.AppendRow(table.Row{fmt.Sprintf("%02X", prog.Size), "", label + ":"})
		}
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d bytes", prog.Size), ""})
	t.Render()
}

// SymbolReport writes the symbol table sorted by address.
func SymbolReport(w io.Writer, symbols *SymbolTable) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Symbols")
	t.AppendHeader(table.Row{"Label", "Addr"})
	for _, name := range symbols.Names() {
		addr, _ := symbols.Lookup(name)
		t.AppendRow(table.Row{name, fmt.Sprintf("%02X", addr)})
	}
	t.Render()
}
