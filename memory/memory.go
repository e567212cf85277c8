// Package memory implements the ZX Spectrum's banked address space: ROM
// pages, eight 16 KiB RAM banks, the four-slot mapping that composes them
// into a 64 KiB view, and the 128K paging latch.
package memory

import "sync"

const (
	// PageSize is the size of one ROM page or RAM bank.
	PageSize = 0x4000
	// SlotCount is the number of 16 KiB slots in the Z80 address space.
	SlotCount = 4
	// RAMBankCount is the number of addressable 16 KiB RAM banks.
	RAMBankCount = 8
)

// Variant selects which machine's ROM/RAM topology and paging rules apply.
type Variant int

const (
	Variant48K Variant = iota
	Variant128K
	VariantPentagon
)

// pagingState holds the 128K paging latch (port 0x7FFD and, on Pentagon,
// the equivalent port): selected ROM, selected RAM bank for slot 3, screen
// bank flag, and the sticky disable bit.
type pagingState struct {
	romIndex    int
	ramBank     int
	screenBank7 bool
	disabled    bool
}

// Memory composes ROM pages and RAM banks into the Z80's 64 KiB address
// space and tracks the paging latch for banked variants.
type Memory struct {
	mu sync.RWMutex

	variant Variant
	roms    [][PageSize]byte
	ram     [RAMBankCount][PageSize]byte
	paging  pagingState
}

// New creates a Memory for the given variant. romPages must supply one
// 16 KiB page per ROM slot the variant exposes (1 for 48K, 2 for 128K and
// Pentagon plus any TR-DOS page the caller appends).
func New(variant Variant, romPages [][]byte) *Memory {
	m := &Memory{variant: variant}
	m.roms = make([][PageSize]byte, len(romPages))
	for i, page := range romPages {
		n := copy(m.roms[i][:], page)
		_ = n
	}
	return m
}

// Reset clears the paging-disable latch and selects ROM 0, RAM bank 0,
// screen bank 5 — the 128K/Pentagon power-on state. 48K ignores the latch
// for everything but the screen-bank helper.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paging = pagingState{}
}

// slot resolves a 16-bit address to the backing page/bank and an offset
// within it, along with whether the slot is read-only (ROM).
func (m *Memory) slot(address uint16) (page *[PageSize]byte, offset uint16, readOnly bool) {
	slotIndex := address >> 14
	offset = address & (PageSize - 1)

	switch m.variant {
	case Variant48K:
		switch slotIndex {
		case 0:
			return m.romAt(0), offset, true
		case 1:
			return &m.ram[5], offset, false
		case 2:
			return &m.ram[2], offset, false
		default:
			return &m.ram[0], offset, false
		}
	default: // Variant128K, VariantPentagon
		switch slotIndex {
		case 0:
			return m.romAt(m.paging.romIndex), offset, true
		case 1:
			return &m.ram[5], offset, false
		case 2:
			return &m.ram[2], offset, false
		default:
			return &m.ram[m.paging.ramBank], offset, false
		}
	}
}

func (m *Memory) romAt(index int) *[PageSize]byte {
	if index < 0 || index >= len(m.roms) {
		return nil
	}
	return &m.roms[index]
}

// Read resolves the slot for address and returns its byte. Unmapped ROM
// (an out-of-range ROM index) reads as 0xFF, matching the real machine's
// floating-bus default for an absent page.
func (m *Memory) Read(address uint16) byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, offset, _ := m.slot(address)
	if page == nil {
		return 0xFF
	}
	return page[offset]
}

// Write resolves the slot for address and stores value there. Writes
// targeting a ROM slot are silent no-ops.
func (m *Memory) Write(address uint16, value byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, offset, readOnly := m.slot(address)
	if page == nil || readOnly {
		return
	}
	page[offset] = value
}

// WritePaging updates the 128K paging latch from a write to port 0x7FFD
// (or its Pentagon equivalent). Once the disable bit (bit 5) has been set,
// further writes are ignored until Reset.
func (m *Memory) WritePaging(value byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.paging.disabled {
		return
	}
	m.paging.ramBank = int(value & 0x07)
	m.paging.romIndex = int((value >> 4) & 0x01)
	m.paging.screenBank7 = value&0x08 != 0
	m.paging.disabled = value&0x20 != 0
}

// ScreenBank returns the index (5 or 7) of the RAM bank currently selected
// as the display's screen memory.
func (m *Memory) ScreenBank() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.paging.screenBank7 {
		return 7
	}
	return 5
}

// ScreenRAM returns a read-only view of the current screen bank's bytes.
func (m *Memory) ScreenRAM() *[PageSize]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &m.ram[m.ScreenBankLocked()]
}

// ScreenBankLocked is ScreenBank without re-acquiring the lock; callers
// must already hold m.mu for reading.
func (m *Memory) ScreenBankLocked() int {
	if m.paging.screenBank7 {
		return 7
	}
	return 5
}

// RAMBank returns direct access to RAM bank n, for snapshot load/save.
func (m *Memory) RAMBank(n int) *[PageSize]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n < 0 || n >= RAMBankCount {
		return nil
	}
	return &m.ram[n]
}

// SetBlock performs an unchecked fill of RAM bank n starting at offset,
// for snapshot restore.
func (m *Memory) SetBlock(n int, offset uint16, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 0 || n >= RAMBankCount {
		return
	}
	copy(m.ram[n][offset:], data)
}

// MappedRAMBank returns the RAM bank index currently occupying slot 3
// (always 0 on 48K, which has no paging).
func (m *Memory) MappedRAMBank() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.variant == Variant48K {
		return 0
	}
	return m.paging.ramBank
}

// contendedBanks are the RAM banks the ULA competes for on a 128K/+2
// machine; odd banks share silicon with the ULA's pixel fetcher.
var contendedBanks = map[int]bool{1: true, 3: true, 5: true, 7: true}

// IsContended reports whether address falls in the contended RAM window.
// On 48K every access to 0x4000-0x7FFF (bank 5) is contended. On 128K/+2
// the 0xC000-0xFFFF slot is also contended whenever the currently mapped
// bank is odd. Pentagon clones have no contention at all.
func (m *Memory) IsContended(address uint16) bool {
	if m.variant == VariantPentagon {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	slotIndex := address >> 14
	switch slotIndex {
	case 1:
		return true // bank 5, always contended
	case 3:
		if m.variant == Variant128K {
			return contendedBanks[m.paging.ramBank]
		}
		return false
	default:
		return false
	}
}
