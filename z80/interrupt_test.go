package z80

import "testing"

func TestNMIPushesPCAndClearsIFF1Only(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0x8000, []byte{0x00})
	r.cpu.IFF1, r.cpu.IFF2 = true, true
	r.cpu.SP = 0xFFF0
	r.cpu.SetNMILine(true)

	r.cpu.Step()

	requireEqualU16(t, "PC", r.cpu.PC, 0x0066)
	requireEqualU16(t, "WZ", r.cpu.WZ, 0x0066)
	if r.cpu.IFF1 {
		t.Fatal("IFF1 should be cleared after NMI")
	}
	if !r.cpu.IFF2 {
		t.Fatal("IFF2 must survive an NMI")
	}
	requireEqualU16(t, "pushed return address", r.cpu.SP, 0xFFEE)
	low := r.bus.mem[0xFFEE]
	high := r.bus.mem[0xFFEF]
	requireEqualU16(t, "stacked PC", uint16(high)<<8|uint16(low), 0x8000)
}

func TestIRQIgnoredWhenIFF1Clear(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0x8000, []byte{0x00})
	r.cpu.IFF1 = false
	r.cpu.SetIRQLine(true)

	r.cpu.Step()

	requireEqualU16(t, "PC", r.cpu.PC, 0x8001)
}

func TestIM1ServicesToFixedVector(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0x8000, []byte{0x00})
	r.cpu.IFF1, r.cpu.IFF2 = true, true
	r.cpu.IM = 1
	r.cpu.SP = 0xFFF0
	r.cpu.SetIRQLine(true)

	r.cpu.Step()

	requireEqualU16(t, "PC", r.cpu.PC, 0x0038)
	if r.cpu.IFF1 || r.cpu.IFF2 {
		t.Fatal("both IFF flags must clear on IRQ acceptance")
	}
}

func TestIM2ServicesViaVectorTable(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0x8000, []byte{0x00})
	r.cpu.IFF1, r.cpu.IFF2 = true, true
	r.cpu.IM = 2
	r.cpu.I = 0x20
	r.cpu.SetIRQVector(0x10)
	r.cpu.SP = 0xFFF0
	r.bus.mem[0x2010] = 0x00
	r.bus.mem[0x2011] = 0x90
	r.cpu.SetIRQLine(true)

	r.cpu.Step()

	requireEqualU16(t, "PC", r.cpu.PC, 0x9000)
}

func TestHaltIdlesWithoutAdvancingPC(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0x8000, []byte{0x76}) // HALT
	r.cpu.Step()
	requireEqualU16(t, "PC after HALT", r.cpu.PC, 0x8001)
	pcBefore := r.cpu.PC
	r.cpu.Step()
	requireEqualU16(t, "PC unchanged while halted", r.cpu.PC, pcBefore)
	if !r.cpu.Halted {
		t.Fatal("CPU should remain halted")
	}
}
