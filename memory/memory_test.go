package memory

import "testing"

func rom(fill byte) []byte {
	page := make([]byte, PageSize)
	for i := range page {
		page[i] = fill
	}
	return page
}

func TestFortyEightKFixedSlots(t *testing.T) {
	m := New(Variant48K, [][]byte{rom(0xAA)})
	requireEqualU8(t, "ROM byte", m.Read(0x0000), 0xAA)

	m.Write(0x4000, 0x11) // bank 5
	requireEqualU8(t, "bank 5", m.Read(0x4000), 0x11)

	m.Write(0x8000, 0x22) // bank 2
	requireEqualU8(t, "bank 2", m.Read(0x8000), 0x22)

	m.Write(0xC000, 0x33) // bank 0
	requireEqualU8(t, "bank 0", m.Read(0xC000), 0x33)
}

func TestROMWritesAreSilentNoOps(t *testing.T) {
	m := New(Variant48K, [][]byte{rom(0xAA)})
	m.Write(0x0000, 0xFF)
	requireEqualU8(t, "ROM after write attempt", m.Read(0x0000), 0xAA)
}

func Test128KPagingSelectsRAMBankAndScreenBank(t *testing.T) {
	m := New(Variant128K, [][]byte{rom(0), rom(1)})
	m.Write(0xC000, 0x77) // slot 3, bank 0 by default
	m.WritePaging(0x03)   // select RAM bank 3 for slot 3, ROM 0, screen 5
	requireEqualU8(t, "bank 3 initially empty", m.Read(0xC000), 0)

	m.WritePaging(0x00) // back to bank 0
	requireEqualU8(t, "bank 0 retains write", m.Read(0xC000), 0x77)

	if m.ScreenBank() != 5 {
		t.Fatalf("screen bank = %d, want 5", m.ScreenBank())
	}
	m.WritePaging(0x08) // bit 3 selects screen bank 7
	if m.ScreenBank() != 7 {
		t.Fatalf("screen bank = %d, want 7", m.ScreenBank())
	}
}

func TestPagingDisableLatchIsSticky(t *testing.T) {
	m := New(Variant128K, [][]byte{rom(0), rom(1)})
	m.WritePaging(0x20) // set disable bit
	m.WritePaging(0x07) // should be ignored now
	if m.MappedRAMBank() != 0 {
		t.Fatalf("RAM bank = %d, want 0 (paging disabled)", m.MappedRAMBank())
	}
	m.Reset()
	m.WritePaging(0x07)
	if m.MappedRAMBank() != 7 {
		t.Fatalf("RAM bank after reset = %d, want 7", m.MappedRAMBank())
	}
}

func TestContentionRules(t *testing.T) {
	m48 := New(Variant48K, [][]byte{rom(0)})
	if !m48.IsContended(0x4000) {
		t.Fatal("48K bank 5 (0x4000-0x7FFF) must always be contended")
	}
	if m48.IsContended(0xC000) {
		t.Fatal("48K bank 0 must never be contended")
	}

	m128 := New(Variant128K, [][]byte{rom(0), rom(1)})
	m128.WritePaging(0x01) // odd bank -> contended
	if !m128.IsContended(0xC000) {
		t.Fatal("128K slot 3 with odd bank must be contended")
	}
	m128.WritePaging(0x02) // even bank -> not contended
	if m128.IsContended(0xC000) {
		t.Fatal("128K slot 3 with even bank must not be contended")
	}

	pentagon := New(VariantPentagon, [][]byte{rom(0), rom(1)})
	if pentagon.IsContended(0x4000) {
		t.Fatal("Pentagon must never report contention")
	}
}

func requireEqualU8(t *testing.T, name string, got, want byte) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = 0x%02X, want 0x%02X", name, got, want)
	}
}
