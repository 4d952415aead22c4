package isa_test

import (
	"testing"

	"github.com/Urethramancer/kue2/isa"
)

func TestMALTableRoundTrip(t *testing.T) {
	for _, mn := range []string{"LD", "ST", "ADD", "ADC", "SUB", "SBC", "CMP", "AND", "OR", "EOR"} {
		op, ok := isa.MALOpcode(mn)
		if !ok {
			t.Fatalf("%s missing from MAL table", mn)
		}
		// Any low nibble decodes to the same mnemonic.
		for _, low := range []uint8{0x00, 0x07, 0x0F} {
			name, ok := isa.MALName(op | low)
			if !ok || name != mn {
				t.Errorf("MALName(%02X) = %q, %v; want %q", op|low, name, ok, mn)
			}
		}
	}
	if _, ok := isa.MALOpcode("MOV"); ok {
		t.Error("MOV should not be a MAL mnemonic")
	}
}

func TestControlTable(t *testing.T) {
	tests := []struct {
		mn string
		op uint8
	}{
		{"NOP", 0x00},
		{"HLT", 0x0F},
		{"OUT", 0x10},
		{"IN", 0x1F},
		{"RCF", 0x20},
		{"SCF", 0x2F},
	}
	for _, tt := range tests {
		op, ok := isa.ControlOpcode(tt.mn)
		if !ok || op != tt.op {
			t.Errorf("ControlOpcode(%s) = %02X, %v; want %02X", tt.mn, op, ok, tt.op)
		}
		name, ok := isa.ControlName(tt.op)
		if !ok || name != tt.mn {
			t.Errorf("ControlName(%02X) = %q; want %q", tt.op, name, tt.mn)
		}
	}
	if _, ok := isa.ControlName(0x01); ok {
		t.Error("0x01 is not a control opcode")
	}
}

func TestShiftNames(t *testing.T) {
	tests := []struct {
		op   uint8
		want string
	}{
		{0x40, "SRA"},
		{0x41, "SLA"},
		{0x42, "SRL"},
		{0x43, "SLL"},
		{0x44, "RRA"},
		{0x45, "RLA"},
		{0x46, "RRL"},
		{0x47, "RLL"},
		{0x4B, "SLL"},
		{0x4C, "RRA"},
	}
	for _, tt := range tests {
		got, ok := isa.ShiftName(tt.op)
		if !ok || got != tt.want {
			t.Errorf("ShiftName(%02X) = %q; want %q", tt.op, got, tt.want)
		}
	}
	if _, ok := isa.ShiftName(0x30); ok {
		t.Error("0x30 is not a shift opcode")
	}
}

func TestBranchConditions(t *testing.T) {
	want := map[string]uint8{
		"A": 0, "VF": 8, "NZ": 1, "Z": 9, "ZP": 2, "N": 10, "P": 3, "ZN": 11,
		"NI": 4, "NO": 12, "NC": 5, "C": 13, "GE": 6, "LT": 14, "GT": 7, "LE": 15,
	}
	for cond, delta := range want {
		got, ok := isa.BranchCondition(cond)
		if !ok || got != delta {
			t.Errorf("BranchCondition(%s) = %d; want %d", cond, got, delta)
		}
		name, _ := isa.BranchName(isa.OPBranch + delta)
		if name != "B"+cond {
			t.Errorf("BranchName(%02X) = %s; want B%s", isa.OPBranch+delta, name, cond)
		}
	}
}

func TestModes(t *testing.T) {
	if isa.Mode(3).Valid() {
		t.Error("mode 3 is reserved")
	}
	if isa.ModeACC.Width() != 1 || isa.ModeIX.Width() != 1 {
		t.Error("register modes are one byte wide")
	}
	for _, m := range []isa.Mode{isa.ModeImmediate, isa.ModeAbsProgram, isa.ModeAbsData, isa.ModeIdxProgram, isa.ModeIdxData} {
		if !m.Valid() || m.Width() != 2 {
			t.Errorf("mode %s should be valid and two bytes wide", m)
		}
	}
}
