package z80

import "testing"

func TestLDRegImmediate(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x3E, 0x42}) // LD A, $42
	r.cpu.Step()
	requireEqualU8(t, "A", r.cpu.A, 0x42)
	requireEqualU16(t, "PC", r.cpu.PC, 2)
}

func TestIncDecRegister(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x06, 0x7F, 0x04, 0x05}) // LD B,$7F; INC B; DEC B
	r.cpu.Step()
	r.cpu.Step()
	requireEqualU8(t, "B after INC", r.cpu.B, 0x80)
	requireFlag(t, "S", r.cpu.F, FlagS, true)
	requireFlag(t, "PV (overflow 7F->80)", r.cpu.F, FlagPV, true)

	r.cpu.Step()
	requireEqualU8(t, "B after DEC", r.cpu.B, 0x7F)
}

func TestAddAWithCarryAndOverflow(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x3E, 0x7F, 0xC6, 0x01}) // LD A,$7F; ADD A,$01
	r.cpu.Step()
	r.cpu.Step()
	requireEqualU8(t, "A", r.cpu.A, 0x80)
	requireFlag(t, "S", r.cpu.F, FlagS, true)
	requireFlag(t, "PV", r.cpu.F, FlagPV, true)
	requireFlag(t, "C", r.cpu.F, FlagC, false)
}

func TestJPAbsolute(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xC3, 0x00, 0x10}) // JP $1000
	r.cpu.Step()
	requireEqualU16(t, "PC", r.cpu.PC, 0x1000)
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x1000)
}

func TestJPHLDoesNotSetWZ(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x21, 0x34, 0x12, 0xE9}) // LD HL,$1234; JP (HL)
	r.cpu.WZ = 0xBEEF
	r.cpu.Step()
	r.cpu.Step()
	requireEqualU16(t, "PC", r.cpu.PC, 0x1234)
	requireEqualU16(t, "WZ unchanged", r.cpu.WZ, 0xBEEF)
}

func TestPushPopRoundtrip(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x01, 0xCD, 0xAB, 0xC5, 0xC1}) // LD BC,$ABCD; PUSH BC; POP BC
	r.cpu.B, r.cpu.C = 0, 0
	r.cpu.Step()
	r.cpu.Step()
	r.cpu.B, r.cpu.C = 0, 0
	r.cpu.Step()
	requireEqualU16(t, "BC", r.cpu.BC(), 0xABCD)
}
