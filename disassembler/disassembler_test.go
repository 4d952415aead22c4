package disassembler_test

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/kue2/assembler"
	"github.com/Urethramancer/kue2/disassembler"
)

func assemble(src string) []byte {
	asm := assembler.New(assembler.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	res, err := asm.Assemble(strings.NewReader(src), nil)
	Expect(err).NotTo(HaveOccurred())
	return res.Code.Bytes()
}

var _ = Describe("Decode", func() {
	DescribeTable("single instructions",
		func(code []byte, want string, size int) {
			in, err := disassembler.Decode(code, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(in.String()).To(Equal(want))
			Expect(in.Size).To(Equal(size))
		},
		Entry("NOP", []byte{0x00}, "NOP", 1),
		Entry("HLT", []byte{0x0F}, "HLT", 1),
		Entry("IN", []byte{0x1F}, "IN", 1),
		Entry("SCF", []byte{0x2F}, "SCF", 1),
		Entry("BA", []byte{0x30, 0x05}, "BA 05", 2),
		Entry("BLE", []byte{0x3F, 0xFF}, "BLE FF", 2),
		Entry("SRA ACC", []byte{0x40}, "SRA ACC", 1),
		Entry("RLL IX", []byte{0x4F}, "RLL IX", 1),
		Entry("LD ACC ACC", []byte{0x60}, "LD ACC ACC", 1),
		Entry("LD IX ACC", []byte{0x68}, "LD IX ACC", 1),
		Entry("LD ACC immediate", []byte{0x62, 0x3F}, "LD ACC 3F", 2),
		Entry("ST IX (IX+d)", []byte{0x7F, 0x05}, "ST IX (IX+05)", 2),
		Entry("ADD ACC [d]", []byte{0xB4, 0x10}, "ADD ACC [10]", 2),
		Entry("CMP IX (d)", []byte{0xFD, 0x80}, "CMP IX (80)", 2),
		Entry("EOR ACC [IX+d]", []byte{0xC6, 0x01}, "EOR ACC [IX+01]", 2),
	)

	It("decodes at an offset", func() {
		in, err := disassembler.Decode([]byte{0x00, 0x31, 0x04}, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Mnemonic).To(Equal("BNZ"))
		Expect(in.Address).To(BeEquivalentTo(1))
	})

	It("rejects bytes outside the instruction set", func() {
		for _, op := range []byte{0x01, 0x0E, 0x50, 0x5F, 0x63, 0xFB} {
			_, err := disassembler.Decode([]byte{op, 0x00}, 0)
			Expect(err).To(MatchError(disassembler.ErrInvalidOpcode), "opcode %02X", op)
		}
	})

	It("refuses addresses past the address space", func() {
		_, err := disassembler.Decode(make([]byte, 300), 256)
		Expect(err).To(MatchError(disassembler.ErrImageTooLarge))
	})

	It("reports a missing operand byte", func() {
		_, err := disassembler.Decode([]byte{0x62}, 0)
		Expect(err).To(MatchError(disassembler.ErrTruncated))
		_, err = disassembler.Decode([]byte{0x30}, 0)
		Expect(err).To(MatchError(disassembler.ErrTruncated))
	})
})

var _ = Describe("Disassemble", func() {
	It("returns nothing for empty input", func() {
		text, err := disassembler.Disassemble(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())
	})

	It("labels branch targets", func() {
		code := []byte{0x62, 0x00, 0xB2, 0x01, 0x31, 0x02, 0x30, 0x09, 0x0F}
		text, err := disassembler.Disassemble(code)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(ContainSubstring("LAC:\n"))
		Expect(text).To(ContainSubstring("BNZ  LAC"))
		Expect(text).To(ContainSubstring("LAJ:\n"))
		Expect(text).To(ContainSubstring("BA   LAJ"))
	})

	It("keeps literal targets that are not instruction starts", func() {
		text, err := disassembler.Disassemble([]byte{0x62, 0x00, 0x30, 0x01})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(ContainSubstring("BA   01"))
		Expect(text).NotTo(ContainSubstring(":"))
	})

	It("rejects images larger than the address space", func() {
		code := append([]byte{0x30, 0x04}, bytes.Repeat([]byte{0x00}, 258)...)
		code = append(code, 0x0F, 0x0F)
		_, err := disassembler.Disassemble(code)
		Expect(err).To(MatchError(disassembler.ErrImageTooLarge))
	})

	It("disassembles a full address space", func() {
		code := append(bytes.Repeat([]byte{0x00}, 254), 0x30, 0x00)
		text, err := disassembler.Disassemble(code)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.Count(text, "LAA:")).To(Equal(1))
		Expect(assemble(text)).To(Equal(code))
	})

	It("fails on undecodable input", func() {
		_, err := disassembler.Disassemble([]byte{0x00, 0x55})
		Expect(err).To(MatchError(disassembler.ErrInvalidOpcode))
	})

	DescribeTable("round trips through the assembler",
		func(src string) {
			code := assemble(src)
			text, err := disassembler.Disassemble(code)
			Expect(err).NotTo(HaveOccurred())
			Expect(assemble(text)).To(Equal(code), "disassembly:\n%s", text)
		},
		Entry("sum loop", `
        LD   ACC 00
        LD   IX  0A
LOOP:
        SUB  IX  1
        ADD  ACC (IX+0)
        CMP  IX  0
        BNZ  LOOP
        ST   ACC (80)
        OUT
        HLT
`),
		Entry("every addressing mode", `
LD ACC ACC
LD ACC IX
LD ACC 12
LD ACC [34]
LD ACC (56)
LD ACC [IX+78]
LD IX (IX+9A)
`),
		Entry("forward branch past the end", "BZ END\nSLL ACC\nRRA IX\nEND:\n"),
		Entry("control only", "NOP\nIN\nOUT\nRCF\nSCF\nHLT\n"),
	)
})

var _ = Describe("ParseHex", func() {
	It("reads assembler output", func() {
		code, err := disassembler.ParseHex(strings.NewReader("62 3F\n0F\n\n30 05\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal([]byte{0x62, 0x3F, 0x0F, 0x30, 0x05}))
	})

	It("accepts lowercase digits", func() {
		code, err := disassembler.ParseHex(strings.NewReader("ab cd"))
		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal([]byte{0xAB, 0xCD}))
	})

	It("rejects malformed tokens", func() {
		for _, src := range []string{"6", "623F", "ZZ", "00\n0x1"} {
			_, err := disassembler.ParseHex(bytes.NewBufferString(src))
			Expect(err).To(MatchError(disassembler.ErrInvalidHex), "input %q", src)
		}
	})
})
