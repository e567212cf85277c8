package z80

import "testing"

func TestSCFUndocumentedBitsFollowQWhenFresh(t *testing.T) {
	r := newTestRig()
	// LD A,$FF; INC B (writes flags, Q becomes non-zero, but B's flags
	// don't touch X/Y so Q after INC B carries whatever INC wrote); SCF
	r.resetAndLoad(0, []byte{0x3E, 0xFF, 0x04, 0x37})
	r.cpu.Step() // LD A,$FF
	r.cpu.Step() // INC B
	qAfterInc := r.cpu.Q
	r.cpu.Step() // SCF
	requireFlag(t, "C", r.cpu.F, FlagC, true)
	wantXY := (r.cpu.A | qAfterInc) & (FlagX | FlagY)
	if r.cpu.F&(FlagX|FlagY) != wantXY {
		t.Fatalf("SCF X/Y bits = 0x%02X, want 0x%02X (A=0x%02X Q=0x%02X)", r.cpu.F&(FlagX|FlagY), wantXY, r.cpu.A, qAfterInc)
	}
}

func TestCCFTogglesCarryIntoHalfCarry(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x37, 0x3F}) // SCF; CCF
	r.cpu.Step()
	requireFlag(t, "C after SCF", r.cpu.F, FlagC, true)
	r.cpu.Step()
	requireFlag(t, "C after CCF", r.cpu.F, FlagC, false)
	requireFlag(t, "H after CCF", r.cpu.F, FlagH, true)
}

func TestQResetsAfterNonFlagWritingInstruction(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x37, 0x00, 0x3F}) // SCF; NOP; CCF
	r.cpu.Step()
	r.cpu.Step() // NOP doesn't touch F, so Q must reset to 0
	if r.cpu.Q != 0 {
		t.Fatalf("Q after NOP = 0x%02X, want 0", r.cpu.Q)
	}
}
