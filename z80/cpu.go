// Package z80 implements a cycle-accurate Zilog Z80 interpreter: the full
// documented and undocumented opcode set, T-state accounting, the MEMPTR
// (WZ) internal latch, and the Q flag latch that governs SCF/CCF's
// undocumented bits.
package z80

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zx-core/spectrum/zxerr"
)

// Bus is the interface a host system provides so the CPU can read and write
// memory and I/O space and account for clock cycles spent doing so.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	In(port uint16) byte
	Out(port uint16, value byte)
	Tick(cycles int)
}

// CPU is a single Z80 core. All state is exported so a host can snapshot or
// restore it directly; callers that mutate state concurrently with Step must
// hold their own synchronization (Step itself only locks around the bits an
// interrupt-line setter can race with).
type CPU struct {
	A  byte
	F  byte
	B  byte
	C  byte
	D  byte
	E  byte
	H  byte
	L  byte
	A2 byte
	F2 byte
	B2 byte
	C2 byte
	D2 byte
	E2 byte
	H2 byte
	L2 byte

	IX uint16
	IY uint16
	SP uint16
	PC uint16

	I  byte
	R  byte
	IM byte
	WZ uint16 // MEMPTR

	// Q latches the post-instruction value of F, but only for instructions
	// that actually wrote flags; it is reset to 0 after any instruction
	// that didn't. SCF/CCF consume it to compute their undocumented bits.
	Q byte

	IFF1 bool
	IFF2 bool

	Halted  bool
	running atomic.Bool
	Cycles  uint64

	irqLine    bool
	nmiLine    bool
	nmiPending bool
	nmiPrev    bool
	iffDelay   int
	irqVector  byte

	bus   Bus
	mutex sync.RWMutex

	baseOps [256]func(*CPU)
	cbOps   [256]func(*CPU)
	ddOps   [256]func(*CPU)
	fdOps   [256]func(*CPU)
	edOps   [256]func(*CPU)

	prefixMode   byte
	prefixOpcode byte

	regs8 [8]*byte // B, C, D, E, H, L, (HL)=nil, A

	// PerfEnabled turns on the instruction counter Step maintains; Execute
	// additionally times a run with it to report throughput, the same
	// opt-in MIPS-reporting pattern the teacher's other cores use.
	PerfEnabled      bool
	InstructionCount uint64
	perfStartTime    time.Time

	// OnMemoryWrite, when set, is invoked after the bus has serviced a
	// write. A panic escaping it (or OnContention) is recovered by Step and
	// returned as a zxerr.CoreError, never crashing the instruction loop.
	OnMemoryWrite func(addr uint16, value byte)

	// OnContention, when set, is invoked before every memory and IO access
	// with the target address (or port) and whether the access is IO; it
	// returns the extra T-states the ULA's shared-bus stall adds, which are
	// ticked before the access itself completes. Nil disables contention
	// entirely (single-instruction stepping/debug mode).
	OnContention func(addr uint16, isIO bool) int
}

const (
	FlagS  = 0x80
	FlagZ  = 0x40
	FlagY  = 0x20
	FlagH  = 0x10
	FlagX  = 0x08
	FlagPV = 0x04
	FlagN  = 0x02
	FlagC  = 0x01
)

const (
	prefixNone byte = iota
	prefixDD
	prefixFD
)

// New constructs a CPU wired to bus and immediately resets it to power-on
// state.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.initBaseOps()
	c.initCBOps()
	c.initDDOps()
	c.initFDOps()
	c.initEDOps()
	c.Reset()
	return c
}

// Reset puts the CPU into ZX Spectrum power-on state: AF=FFFFh, SP=FFFFh,
// PC=0, interrupts disabled, IM 0.
func (c *CPU) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.A, c.F = 0xFF, 0xFF
	c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0
	c.A2, c.F2 = 0xFF, 0xFF
	c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = 0, 0, 0, 0, 0, 0
	c.IX, c.IY = 0, 0
	c.SP = 0xFFFF
	c.PC = 0
	c.I, c.R = 0, 0
	c.IM = 0
	c.WZ = 0
	c.Q = 0
	c.prefixMode = prefixNone
	c.prefixOpcode = 0
	c.IFF1, c.IFF2 = false, false
	c.irqLine, c.nmiLine = false, false
	c.nmiPending, c.nmiPrev = false, false
	c.iffDelay = 0
	c.irqVector = 0xFF
	c.Halted = false
	c.running.Store(true)
	c.Cycles = 0

	c.regs8 = [8]*byte{&c.B, &c.C, &c.D, &c.E, &c.H, &c.L, nil, &c.A}
}

func (c *CPU) Running() bool      { return c.running.Load() }
func (c *CPU) SetRunning(v bool)  { c.running.Store(v) }

func (c *CPU) AF() uint16  { return uint16(c.A)<<8 | uint16(c.F) }
func (c *CPU) BC() uint16  { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) DE() uint16  { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) HL() uint16  { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) AF2() uint16 { return uint16(c.A2)<<8 | uint16(c.F2) }
func (c *CPU) BC2() uint16 { return uint16(c.B2)<<8 | uint16(c.C2) }
func (c *CPU) DE2() uint16 { return uint16(c.D2)<<8 | uint16(c.E2) }
func (c *CPU) HL2() uint16 { return uint16(c.H2)<<8 | uint16(c.L2) }

func (c *CPU) SetAF(v uint16)  { c.A, c.F = byte(v>>8), byte(v) }
func (c *CPU) SetBC(v uint16)  { c.B, c.C = byte(v>>8), byte(v) }
func (c *CPU) SetDE(v uint16)  { c.D, c.E = byte(v>>8), byte(v) }
func (c *CPU) SetHL(v uint16)  { c.H, c.L = byte(v>>8), byte(v) }
func (c *CPU) SetAF2(v uint16) { c.A2, c.F2 = byte(v>>8), byte(v) }
func (c *CPU) SetBC2(v uint16) { c.B2, c.C2 = byte(v>>8), byte(v) }
func (c *CPU) SetDE2(v uint16) { c.D2, c.E2 = byte(v>>8), byte(v) }
func (c *CPU) SetHL2(v uint16) { c.H2, c.L2 = byte(v>>8), byte(v) }

func (c *CPU) Flag(mask byte) bool { return c.F&mask != 0 }

func (c *CPU) SetFlag(mask byte, on bool) {
	if on {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}

func (c *CPU) ExAF() {
	c.A, c.A2 = c.A2, c.A
	c.F, c.F2 = c.F2, c.F
}

func (c *CPU) Exx() {
	c.B, c.B2 = c.B2, c.B
	c.C, c.C2 = c.C2, c.C
	c.D, c.D2 = c.D2, c.D
	c.E, c.E2 = c.E2, c.E
	c.H, c.H2 = c.H2, c.H
	c.L, c.L2 = c.L2, c.L
}

// Step executes exactly one instruction (or one NMI/IRQ acceptance, or one
// HALT-idle T-state group), returning control with Cycles advanced by
// however many T-states that took.
// Step executes one CPU instruction, or one interrupt-acceptance/HALT-idle
// group, and returns a zxerr.CoreError (KindHostIO) if a host callback
// (OnMemoryWrite, OnContention, or the Bus itself) panics instead of
// returning normally, per §7.
func (c *CPU) Step() (err error) {
	unlocked := false
	unlock := func() {
		if !unlocked {
			c.mutex.Unlock()
			unlocked = true
		}
	}
	defer func() {
		if r := recover(); r != nil {
			unlock()
			if e, ok := r.(error); ok {
				err = zxerr.HostIO("Step", e)
			} else {
				err = zxerr.HostIO("Step", fmt.Errorf("%v", r))
			}
		}
	}()

	c.mutex.Lock()

	if !c.running.Load() {
		unlock()
		return nil
	}

	if c.PerfEnabled {
		c.InstructionCount++
	}

	if c.nmiLine && !c.nmiPrev {
		c.nmiPending = true
	}
	c.nmiPrev = c.nmiLine

	if c.nmiPending {
		c.serviceNMI()
		unlock()
		return nil
	}

	if c.irqLine && c.IFF1 {
		c.serviceIRQ()
		unlock()
		return nil
	}

	if c.Halted {
		c.tick(4)
		unlock()
		return nil
	}

	unlock()

	fBefore := c.F
	opcode := c.fetchOpcode()
	c.baseOps[opcode](c)
	if c.F != fBefore {
		c.Q = c.F
	} else {
		c.Q = 0
	}
	c.finishInstruction()
	return nil
}

// Execute runs Step in a loop until SetRunning(false) stops it or a Step
// fails, resetting the perf counters first when PerfEnabled is set so
// MIPS reflects only this run.
func (c *CPU) Execute() error {
	if c.PerfEnabled {
		c.perfStartTime = time.Now()
		c.InstructionCount = 0
	}

	for c.running.Load() {
		if err := c.Step(); err != nil {
			c.SetRunning(false)
			return err
		}
	}
	return nil
}

// MIPS reports instructions executed per second since Execute last reset
// the perf counters. It returns 0 if PerfEnabled is false or no time has
// elapsed yet; Step increments InstructionCount regardless of whether the
// run was driven by Execute or by a host calling Step directly, so a host
// loop (like the Machine aggregate's) can set PerfEnabled and read MIPS
// without going through Execute at all.
func (c *CPU) MIPS() float64 {
	if !c.PerfEnabled || c.perfStartTime.IsZero() {
		return 0
	}
	elapsed := time.Since(c.perfStartTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(c.InstructionCount) / elapsed
}

// StartPerfClock resets the perf counters without running Execute's loop,
// for hosts (like Machine) that drive Step themselves but still want MIPS.
func (c *CPU) StartPerfClock() {
	c.perfStartTime = time.Now()
	c.InstructionCount = 0
}

func (c *CPU) SetIRQLine(assert bool) {
	c.mutex.Lock()
	c.irqLine = assert
	c.mutex.Unlock()
}

func (c *CPU) SetNMILine(assert bool) {
	c.mutex.Lock()
	c.nmiLine = assert
	c.mutex.Unlock()
}

func (c *CPU) SetIRQVector(vector byte) {
	c.mutex.Lock()
	c.irqVector = vector
	c.mutex.Unlock()
}

func (c *CPU) incrementR() {
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
}

func (c *CPU) fetchOpcode() byte {
	opcode := c.read(c.PC)
	c.PC++
	c.incrementR()
	return opcode
}

func (c *CPU) fetchByte() byte {
	value := c.read(c.PC)
	c.PC++
	return value
}

func (c *CPU) contend(addr uint16, isIO bool) {
	if c.OnContention == nil {
		return
	}
	if delay := c.OnContention(addr, isIO); delay > 0 {
		c.tick(delay)
	}
}

func (c *CPU) read(addr uint16) byte {
	c.contend(addr, false)
	return c.bus.Read(addr)
}

func (c *CPU) write(addr uint16, v byte) {
	c.contend(addr, false)
	c.bus.Write(addr, v)
	if c.OnMemoryWrite != nil {
		c.OnMemoryWrite(addr, v)
	}
}

func (c *CPU) in(port uint16) byte {
	c.contend(port, true)
	return c.bus.In(port)
}

func (c *CPU) out(port uint16, v byte) {
	c.contend(port, true)
	c.bus.Out(port, v)
}
func (c *CPU) tick(cycles int) {
	c.Cycles += uint64(cycles)
	c.bus.Tick(cycles)
}

func (c *CPU) finishInstruction() {
	if c.iffDelay > 0 {
		c.iffDelay--
		if c.iffDelay == 0 {
			c.IFF1 = true
			c.IFF2 = true
		}
	}
}

func (c *CPU) readReg8(code byte) byte {
	switch code {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.readIndexHigh()
	case 5:
		return c.readIndexLow()
	case 6:
		return c.read(c.HL())
	case 7:
		return c.A
	default:
		return 0
	}
}

func (c *CPU) writeReg8(code byte, value byte) {
	switch code {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.writeIndexHigh(value)
	case 5:
		c.writeIndexLow(value)
	case 6:
		c.write(c.HL(), value)
	case 7:
		c.A = value
	}
}

func (c *CPU) readReg8Plain(code byte) byte {
	switch code {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read(c.HL())
	case 7:
		return c.A
	default:
		return 0
	}
}

func (c *CPU) writeReg8Plain(code byte, value byte) {
	switch code {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.write(c.HL(), value)
	case 7:
		c.A = value
	}
}

func (c *CPU) readIndexHigh() byte {
	switch c.prefixMode {
	case prefixDD:
		return byte(c.IX >> 8)
	case prefixFD:
		return byte(c.IY >> 8)
	default:
		return c.H
	}
}

func (c *CPU) readIndexLow() byte {
	switch c.prefixMode {
	case prefixDD:
		return byte(c.IX)
	case prefixFD:
		return byte(c.IY)
	default:
		return c.L
	}
}

func (c *CPU) writeIndexHigh(value byte) {
	switch c.prefixMode {
	case prefixDD:
		c.IX = (c.IX & 0x00FF) | uint16(value)<<8
	case prefixFD:
		c.IY = (c.IY & 0x00FF) | uint16(value)<<8
	default:
		c.H = value
	}
}

func (c *CPU) writeIndexLow(value byte) {
	switch c.prefixMode {
	case prefixDD:
		c.IX = (c.IX & 0xFF00) | uint16(value)
	case prefixFD:
		c.IY = (c.IY & 0xFF00) | uint16(value)
	default:
		c.L = value
	}
}
