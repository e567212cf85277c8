package machine

import "testing"

func blankROM(n int) [][]byte {
	pages := make([][]byte, n)
	for i := range pages {
		pages[i] = make([]byte, 0x4000)
	}
	return pages
}

func TestNewWiresReadWriteThroughMemory(t *testing.T) {
	m := New(Variant48K, blankROM(1))
	m.Write(0x8000, 0x42)
	if got := m.Read(0x8000); got != 0x42 {
		t.Fatalf("Read(0x8000) = 0x%02X, want 0x42", got)
	}
}

func TestBorderPortWriteReachesULA(t *testing.T) {
	m := New(Variant48K, blankROM(1))
	m.Out(0xFE, 0x04) // border = green (index 4)
	frame := m.ULA.EndFrame()
	off := 0
	if frame[off] == 0 && frame[off+1] == 0 && frame[off+2] == 0 {
		t.Fatal("expected border color to be rendered, got black")
	}
}

func TestPagingPortOnlyAppliesOnNon48K(t *testing.T) {
	m48 := New(Variant48K, blankROM(1))
	m48.Out(0x7FFD, 0x07) // must be a no-op on 48K
	if m48.Memory.MappedRAMBank() != 0 {
		t.Fatalf("48K MappedRAMBank = %d, want 0 (no paging)", m48.Memory.MappedRAMBank())
	}

	m128 := New(Variant128K, blankROM(2))
	m128.Out(0x7FFD, 0x07)
	if m128.Memory.MappedRAMBank() != 7 {
		t.Fatalf("128K MappedRAMBank = %d, want 7", m128.Memory.MappedRAMBank())
	}
}

func TestRunFrameAdvancesAtLeastOneFrameBoundary(t *testing.T) {
	m := New(Variant48K, blankROM(1))
	// An infinite JP $8000 loop in RAM guarantees Step always has work to
	// do (ROM at 0x0000 is read-only, so the loop can't live there).
	m.Memory.Write(0x8000, 0xC3)
	m.Memory.Write(0x8001, 0x00)
	m.Memory.Write(0x8002, 0x80)
	m.CPU.PC = 0x8000

	frame, err := m.RunFrame()
	if err != nil {
		t.Fatalf("RunFrame returned an error: %v", err)
	}
	if len(frame) == 0 {
		t.Fatal("RunFrame returned an empty framebuffer")
	}
}

func TestStepSurfacesHostCallbackPanicAsCoreError(t *testing.T) {
	m := New(Variant48K, blankROM(1))
	m.CPU.OnMemoryWrite = func(addr uint16, value byte) {
		panic("simulated host callback failure")
	}
	m.Memory.Write(0x8000, 0x3E) // LD A,$99
	m.Memory.Write(0x8001, 0x99)
	m.Memory.Write(0x8002, 0x32) // LD ($9000),A -- triggers OnMemoryWrite
	m.Memory.Write(0x8003, 0x00)
	m.Memory.Write(0x8004, 0x90)
	m.CPU.PC = 0x8000

	if err := m.Step(); err != nil {
		t.Fatalf("LD A,$99 should not fail: %v", err)
	}
	if err := m.Step(); err == nil {
		t.Fatal("expected Step to surface the panicking OnMemoryWrite as an error")
	}
}
