package z80

import (
	"errors"
	"testing"

	"github.com/zx-core/spectrum/zxerr"
)

func TestStepRecoversOnMemoryWritePanicAsCoreError(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x32, 0x00, 0x90}) // LD ($9000),A
	r.cpu.OnMemoryWrite = func(addr uint16, value byte) {
		panic("simulated host callback failure")
	}

	err := r.cpu.Step()
	if err == nil {
		t.Fatal("expected Step to return an error when OnMemoryWrite panics")
	}
	var coreErr *zxerr.CoreError
	if !errors.As(err, &coreErr) {
		t.Fatalf("expected *zxerr.CoreError, got %T", err)
	}
	if coreErr.Kind != zxerr.KindHostIO {
		t.Fatalf("Kind = %v, want KindHostIO", coreErr.Kind)
	}
}

func TestStepRecoversOnContentionPanicAsCoreError(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x00}) // NOP
	r.cpu.OnContention = func(addr uint16, isIO bool) int {
		panic("contention hook exploded")
	}

	if err := r.cpu.Step(); err == nil {
		t.Fatal("expected Step to return an error when OnContention panics")
	}
}

func TestStepIncrementsInstructionCountWhenPerfEnabled(t *testing.T) {
	r := newTestRig()
	r.resetAndLoad(0, []byte{0x00, 0x00, 0x00}) // NOP x3
	r.cpu.PerfEnabled = true
	r.cpu.StartPerfClock()

	r.cpu.Step()
	r.cpu.Step()
	r.cpu.Step()

	if r.cpu.InstructionCount != 3 {
		t.Fatalf("InstructionCount = %d, want 3", r.cpu.InstructionCount)
	}
}
