package z80

import "testing"

func TestLDIndexedWithDisplacementSetsWZ(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xDD, 0x21, 0x00, 0x20, 0xDD, 0x36, 0x05, 0x99}) // LD IX,$2000; LD (IX+5),$99
	r.cpu.Step()
	r.cpu.Step()
	requireEqualU8(t, "(IX+5)", r.bus.mem[0x2005], 0x99)
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x2005)
}

func TestDDCBBitSetsWZFromIndexedAddress(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xDD, 0x21, 0x00, 0x30, 0xDD, 0xCB, 0x02, 0x46}) // LD IX,$3000; BIT 0,(IX+2)
	r.bus.mem[0x3002] = 0xFF
	r.cpu.Step()
	r.cpu.Step()
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x3002)
	requireFlag(t, "Z (bit 0 is set)", r.cpu.F, FlagZ, false)
}

func TestUnrecognizedDDOpcodeFallsThroughToBaseTable(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xDD, 0x00}) // DD NOP: prefix wasted, base NOP runs
	r.cpu.Step()
	requireEqualU16(t, "PC", r.cpu.PC, 2)
}

func TestJPIXDoesNotSetWZ(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xDD, 0x21, 0x00, 0x40, 0xDD, 0xE9}) // LD IX,$4000; JP (IX)
	r.cpu.WZ = 0xCAFE
	r.cpu.Step()
	r.cpu.Step()
	requireEqualU16(t, "PC", r.cpu.PC, 0x4000)
	requireEqualU16(t, "WZ unchanged", r.cpu.WZ, 0xCAFE)
}
