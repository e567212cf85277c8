package z80

import "testing"

func TestLDIRCopiesBlockAndTracksWZOnRepeat(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xED, 0xB0}) // LDIR
	r.cpu.SetHL(0x2000)
	r.cpu.SetDE(0x3000)
	r.cpu.SetBC(3)
	r.bus.mem[0x2000] = 0x11
	r.bus.mem[0x2001] = 0x22
	r.bus.mem[0x2002] = 0x33

	for i := 0; i < 3; i++ {
		r.cpu.Step() // opLDIR rewinds PC itself while BC != 0
	}

	requireEqualU8(t, "(0x3000)", r.bus.mem[0x3000], 0x11)
	requireEqualU8(t, "(0x3001)", r.bus.mem[0x3001], 0x22)
	requireEqualU8(t, "(0x3002)", r.bus.mem[0x3002], 0x33)
	// Each repeating iteration sets WZ to the LDIR's address + 1; the final
	// iteration leaves it there.
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x0001)
}

func TestCPIAdvancesAndSetsWZ(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xED, 0xA1}) // CPI
	r.cpu.SetHL(0x4000)
	r.cpu.SetBC(1)
	r.cpu.A = 0x55
	r.cpu.WZ = 0x1000
	r.bus.mem[0x4000] = 0x55

	r.cpu.Step()

	requireEqualU16(t, "HL", r.cpu.HL(), 0x4001)
	requireEqualU16(t, "BC", r.cpu.BC(), 0)
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x1001)
	requireFlag(t, "Z", r.cpu.F, FlagZ, true)
	requireFlag(t, "PV (BC hit zero)", r.cpu.F, FlagPV, false)
}

func TestINISetsWZToPortPlusOne(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xED, 0xA2}) // INI
	r.cpu.SetBC(0x10FE)
	r.cpu.SetHL(0x5000)
	r.bus.io[0x10FE] = 0x99

	r.cpu.Step()

	requireEqualU8(t, "(HL)", r.bus.mem[0x5000], 0x99)
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x10FF)
	requireEqualU8(t, "B decremented", r.cpu.B, 0x0F)
}

func TestRRDSetsWZToAddrPlusOne(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0xED, 0x67}) // RRD
	r.cpu.SetHL(0x6000)
	r.cpu.A = 0x12
	r.bus.mem[0x6000] = 0x34

	r.cpu.Step()

	requireEqualU16(t, "WZ", r.cpu.WZ, 0x6001)
	requireEqualU8(t, "A", r.cpu.A, 0x14)
	requireEqualU8(t, "(HL)", r.bus.mem[0x6000], 0x23)
}
