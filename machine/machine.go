// Package machine wires a CPU, a banked Memory, and a ULA together into one
// runnable Spectrum: it owns the port and memory decode tables the three
// packages don't know about each other through, and drives the per-frame
// interrupt/render cycle.
package machine

import (
	"github.com/zx-core/spectrum/memory"
	"github.com/zx-core/spectrum/ula"
	"github.com/zx-core/spectrum/z80"
	"github.com/zx-core/spectrum/zxlog"
)

// Variant identifies which ZX Spectrum model a Machine emulates.
type Variant int

const (
	Variant48K Variant = iota
	Variant128K
	VariantPentagon
)

func (v Variant) memoryVariant() memory.Variant {
	switch v {
	case Variant128K:
		return memory.Variant128K
	case VariantPentagon:
		return memory.VariantPentagon
	default:
		return memory.Variant48K
	}
}

func (v Variant) ulaVariant() ula.Variant {
	switch v {
	case Variant128K:
		return ula.Variant128K
	case VariantPentagon:
		return ula.VariantPentagon
	default:
		return ula.Variant48K
	}
}

// irqAssertTStates is how long the ULA holds the INT line low at the start
// of each frame, long enough for the CPU to sample it on any instruction
// boundary within that window.
const irqAssertTStates = 32

// Machine is the Spectrum aggregate: the single owner of CPU, Memory, and
// ULA, and the only place their cross-callbacks are wired. Per-component
// packages never import one another; Machine is where the domain's wiring
// decisions live.
type Machine struct {
	variant Variant

	CPU    *z80.CPU
	Memory *memory.Memory
	ULA    *ula.ULA
	Logger *zxlog.Logger

	frameTStates int
	tState       int
	irqPending   int
	frameCount   uint64

	lastFrame  []byte
	frameReady bool
}

// New builds a Machine for variant, loading romPages into Memory (one page
// per ROM slot the variant exposes) and wiring every cross-component
// callback: contention, the port decode table, and attribute-write
// tracking.
func New(variant Variant, romPages [][]byte) *Machine {
	m := &Machine{variant: variant, Logger: zxlog.Default()}
	m.Memory = memory.New(variant.memoryVariant(), romPages)

	profile := ula.Profiles[variant.ulaVariant()]
	m.ULA = ula.New(profile, m.Memory)
	m.frameTStates = profile.TStatesPerLine * profile.LinesPerFrame

	m.CPU = z80.New(m)
	m.CPU.OnMemoryWrite = m.onMemoryWrite
	m.CPU.OnContention = m.onContention

	m.Reset()
	return m
}

// SetLogger replaces the Machine's logger; New installs zxlog.Default() so
// this is only needed when a host wants a different level or sink.
func (m *Machine) SetLogger(l *zxlog.Logger) { m.Logger = l }

// Reset returns every component to its power-on state and begins a new
// render frame.
func (m *Machine) Reset() {
	m.Memory.Reset()
	m.CPU.Reset()
	m.tState = 0
	m.irqPending = 0
	m.frameCount = 0
	m.ULA.StartFrame()
	m.Logger.Debugf("machine reset: variant=%d", m.variant)
}

// Read implements z80.Bus.
func (m *Machine) Read(addr uint16) byte { return m.Memory.Read(addr) }

// Write implements z80.Bus.
func (m *Machine) Write(addr uint16, value byte) { m.Memory.Write(addr, value) }

// Tick implements z80.Bus: it advances the frame's T-state position and
// asserts/releases the interrupt line across frame boundaries.
func (m *Machine) Tick(cycles int) {
	m.tState += cycles

	if m.irqPending > 0 {
		m.irqPending -= cycles
		if m.irqPending <= 0 {
			m.irqPending = 0
			m.CPU.SetIRQLine(false)
		}
	}

	if m.tState >= m.frameTStates {
		m.tState -= m.frameTStates
		m.ULA.Keyboard().AdvanceFrame()
		m.lastFrame = m.ULA.EndFrame()
		m.frameReady = true
		m.frameCount++
		m.ULA.StartFrame()
		m.CPU.SetIRQLine(true)
		m.irqPending = irqAssertTStates
		m.Logger.Debugf("frame %d rendered", m.frameCount)
	}
}

// In implements z80.Bus, decoding the port ranges per §6: even low byte
// reaches the ULA (keyboard/EAR), 0xFF3B is the ULAplus data port,
// everything else (including the write-only 0xBF3B) floats high.
func (m *Machine) In(port uint16) byte {
	switch port {
	case 0xFF3B:
		return m.ULA.OnPortRead(port, m.tState)
	default:
		if port&0x01 == 0 {
			return m.ULA.OnPortRead(port, m.tState)
		}
		return 0xFF
	}
}

// Out implements z80.Bus, dispatching the 128K/Pentagon paging port to
// Memory and everything ULA-owned to the ULA.
func (m *Machine) Out(port uint16, value byte) {
	switch {
	case port == 0x7FFD && m.variant != Variant48K:
		m.Memory.WritePaging(value)
		m.ULA.OnScreenBankChange(byte(m.Memory.ScreenBank()), m.tState)
	case port == 0xBF3B, port == 0xFF3B:
		m.ULA.OnPortWrite(port, value, m.tState)
	case port&0x01 == 0:
		m.ULA.OnPortWrite(port, value, m.tState)
	}
}

func (m *Machine) onMemoryWrite(addr uint16, value byte) {
	m.ULA.OnMemoryWrite(addr, value, m.tState)
}

// onContention computes the ULA stall for a CPU memory or IO access, per
// §4.1/§4.3.3: memory accesses contend only when the target bank is
// contended; IO accesses always run through the ULA's port-contention
// rule, which itself checks the port's low bit and the 0x4000-0x7FFF
// window.
func (m *Machine) onContention(addr uint16, isIO bool) int {
	if isIO {
		return m.ULA.IOContentionDelay(m.tState, addr)
	}
	if !m.Memory.IsContended(addr) {
		return 0
	}
	return m.ULA.ContentionDelay(m.tState, true)
}

// Step runs one CPU instruction (or one interrupt-acceptance/HALT-idle
// group), surfacing a host-callback failure as the zxerr.CoreError the CPU
// returned rather than letting it panic the caller's loop.
func (m *Machine) Step() error {
	if err := m.CPU.Step(); err != nil {
		m.Logger.Errorf("step failed: %v", err)
		return err
	}
	return nil
}

// RunFrame steps the CPU until a full display frame has been rendered and
// returns its framebuffer, stopping early on the first failing Step.
// Intended for host loops that want exactly one frame per call rather than
// driving Step directly.
func (m *Machine) RunFrame() ([]byte, error) {
	m.frameReady = false
	for !m.frameReady {
		if err := m.Step(); err != nil {
			return nil, err
		}
	}
	return m.lastFrame, nil
}
