package ula

import "testing"

type fakeScreen struct {
	bytes [0x4000]byte
	banks map[int]*[0x4000]byte
}

func (s *fakeScreen) ScreenRAM() *[0x4000]byte { return &s.bytes }

func (s *fakeScreen) RAMBank(n int) *[0x4000]byte {
	if bank, ok := s.banks[n]; ok {
		return bank
	}
	return &s.bytes
}

func newTestULA() (*ULA, *fakeScreen) {
	screen := &fakeScreen{}
	u := New(Profiles[Variant48K], screen)
	return u, screen
}

func TestStartEndFrameProducesFullSizedBuffer(t *testing.T) {
	u, _ := newTestULA()
	u.StartFrame()
	frame := u.EndFrame()
	want := FrameWidth * FrameHeight * 4
	if len(frame) != want {
		t.Fatalf("frame length = %d, want %d", len(frame), want)
	}
}

func TestBorderChangeIsVisibleAfterEndFrame(t *testing.T) {
	u, _ := newTestULA()
	u.StartFrame()
	u.OnPortWrite(0xFE, 0x02, 100) // border = red (index 2)
	frame := u.EndFrame()

	off := (0*FrameWidth + 0) * 4 // top-left corner is always border
	r, g, b := frame[off], frame[off+1], frame[off+2]
	wantR, wantG, wantB := ColorNormal[2][0], ColorNormal[2][1], ColorNormal[2][2]
	if r != wantR || g != wantG || b != wantB {
		t.Fatalf("top-left border pixel = (%d,%d,%d), want (%d,%d,%d)", r, g, b, wantR, wantG, wantB)
	}
}

func TestKeyboardScanReflectsPressedKey(t *testing.T) {
	u, _ := newTestULA()
	u.Keyboard().KeyDown(KeyA)
	// Row 1 (A-G) is selected by clearing bit 1 of the high byte.
	result := u.OnPortRead(0xFDFE, 0)
	if result&0x01 != 0 {
		t.Fatalf("bit 0 (A) should read low while held, got 0x%02X", result)
	}
	u.Keyboard().KeyUp(KeyA)
	result = u.OnPortRead(0xFDFE, 0)
	if result&0x01 == 0 {
		t.Fatalf("bit 0 (A) should read high once released, got 0x%02X", result)
	}
}

func TestULAPlusPaletteRoundtrip(t *testing.T) {
	u, _ := newTestULA()
	u.OnPortWrite(0xBF3B, 8, 0)    // select palette register 8 (border)
	u.OnPortWrite(0xFF3B, 0xE0, 0) // write GRB332: full green
	u.OnPortWrite(0xBF3B, 64, 0)   // select mode register
	u.OnPortWrite(0xFF3B, 0x01, 0) // enable ULAplus

	u.OnPortWrite(0xBF3B, 8, 0)
	got := u.OnPortRead(0xFF3B, 0)
	if got != 0xE0 {
		t.Fatalf("palette readback = 0x%02X, want 0xE0", got)
	}
}

func TestRasterPaletteChangeOnlyAffectsLinesAfterIt(t *testing.T) {
	u, _ := newTestULA()
	u.OnPortWrite(0xBF3B, 8, 0)    // select border register
	u.OnPortWrite(0xFF3B, 0x00, 0) // black border, before StartFrame
	u.OnPortWrite(0xBF3B, 64, 0)
	u.OnPortWrite(0xFF3B, 0x01, 0) // enable ULAplus

	u.StartFrame()

	// Mid-frame rewrite of the same single register: a per-scanline style
	// effect touching one unique entry, so strategy A (time-ordered replay
	// up to each line's start) applies.
	midLine := 100
	midT := u.lines.LineStart(midLine)
	u.OnPortWrite(0xBF3B, 8, midT)
	u.OnPortWrite(0xFF3B, 0xE0, midT) // full green from here on

	before := u.paletteAtPaperLine(midLine - 1)
	after := u.paletteAtPaperLine(midLine + 1)

	if before[8] != 0x00 {
		t.Fatalf("palette before the rewrite = 0x%02X, want 0x00 (still black)", before[8])
	}
	if after[8] != 0xE0 {
		t.Fatalf("palette after the rewrite = 0x%02X, want 0xE0 (green)", after[8])
	}
}

func TestSplitScreenReplaysBankSelectedAtFetchTime(t *testing.T) {
	screen := &fakeScreen{banks: map[int]*[0x4000]byte{}}
	bankSeven := &[0x4000]byte{}
	screen.banks[7] = bankSeven

	// Live screen reads as all-ink so a renderer that ignores the replayed
	// bank (and just reads ScreenRAM()) would wrongly paint this cell black.
	screen.bytes[0] = 0xFF
	screen.bytes[0x1800] = 0x38 // ink=black, paper=white
	bankSeven[0] = 0x00         // bank 7's actual pixel data: all paper

	u := New(Profiles[Variant128K], screen)
	u.StartFrame()

	lineStart := u.lines.LineStart(0)
	u.OnScreenBankChange(5, 0)
	u.OnScreenBankChange(7, lineStart-5)
	u.OnScreenBankChange(5, lineStart+1_000_000) // future event, must not apply yet

	frame := u.EndFrame()

	off := (BorderWidth*FrameWidth + BorderWidth) * 4
	r, g, b := frame[off], frame[off+1], frame[off+2]
	wantR, wantG, wantB := ColorNormal[7][0], ColorNormal[7][1], ColorNormal[7][2]
	if r != wantR || g != wantG || b != wantB {
		t.Fatalf("split-screen cell = (%d,%d,%d), want bank-7 paper color (%d,%d,%d)", r, g, b, wantR, wantG, wantB)
	}
}

func TestAttributeWriteOnlyTrackedInAttributeRegion(t *testing.T) {
	u, _ := newTestULA()
	u.StartFrame()
	u.OnMemoryWrite(0x5800, 0x47, 10) // first attribute cell
	u.OnMemoryWrite(0x4000, 0x47, 10) // bitmap area, not tracked
	if len(u.attrLog[0]) != 1 {
		t.Fatalf("attrLog[0] length = %d, want 1", len(u.attrLog[0]))
	}
}
