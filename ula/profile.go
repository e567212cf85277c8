package ula

// Variant identifies which machine's raster timing and contention rules
// the ULA should use. Mirrors memory.Variant but kept independent so this
// package has no import-cycle dependency on memory.
type Variant int

const (
	Variant48K Variant = iota
	Variant128K
	VariantPentagon
)

// Profile tabulates the per-machine constants that drive raster timing,
// replacing the teacher's dynamic-dispatch-per-device pattern with a fixed
// table indexed by Variant.
type Profile struct {
	Variant Variant

	TStatesPerLine  int
	LinesPerFrame   int
	FirstScreenLine int // first line of the 192-line paper area
	TopLeftT        int // absolute T-state of the top-left paper pixel
	ContentionStart int // absolute T-state where contention begins on the first paper line
	BorderQuantMask int // border-change T-states are rounded down to a multiple of this

	// VerticalDrift corrects a per-machine rounding discrepancy between
	// the nominal line_start_t_state formula and the real Ferranti ULA's
	// observed timing; zero on machines with no such drift.
	VerticalDrift int

	HasContention bool
}

// Profiles is the fixed table of machine constants, keyed by Variant.
var Profiles = map[Variant]Profile{
	Variant48K: {
		Variant:         Variant48K,
		TStatesPerLine:  224,
		LinesPerFrame:   312,
		FirstScreenLine: 64,
		TopLeftT:        14336,
		ContentionStart: 14335,
		BorderQuantMask: 4,
		HasContention:   true,
	},
	Variant128K: {
		Variant:         Variant128K,
		TStatesPerLine:  228,
		LinesPerFrame:   311,
		FirstScreenLine: 63,
		TopLeftT:        14364,
		ContentionStart: 14361,
		BorderQuantMask: 4,
		HasContention:   true,
	},
	VariantPentagon: {
		Variant:         VariantPentagon,
		TStatesPerLine:  224,
		LinesPerFrame:   320,
		FirstScreenLine: 80,
		TopLeftT:        17988,
		BorderQuantMask: 1,
		HasContention:   false,
	},
}

// lineStartTable caches line_start_t_state for every visible paper line,
// built once per profile instead of recomputed per access.
type lineStartTable struct {
	profile Profile
	starts  [DisplayHeight]int
}

func newLineStartTable(p Profile) *lineStartTable {
	t := &lineStartTable{profile: p}
	base := p.TopLeftT - p.FirstScreenLine*p.TStatesPerLine
	for y := 0; y < DisplayHeight; y++ {
		line := p.FirstScreenLine + y
		t.starts[y] = base + line*p.TStatesPerLine + p.VerticalDrift
	}
	return t
}

// LineStart returns the absolute T-state at which paper line visibleY
// (0-191) begins rendering its first pixel.
func (t *lineStartTable) LineStart(visibleY int) int {
	if visibleY < 0 || visibleY >= DisplayHeight {
		return 0
	}
	return t.starts[visibleY]
}

// Beam computes the raster beam's (line, x pixel) position for an absolute
// T-state, per §4.3.1: relT = T - TopLeftT-relative base; line = relT /
// TStatesPerLine; x = (relT mod TStatesPerLine) * 2.
func (p Profile) Beam(t int) (line, x int) {
	base := p.TopLeftT - p.FirstScreenLine*p.TStatesPerLine
	relT := t - base
	if relT < 0 {
		return -1, 0
	}
	line = relT / p.TStatesPerLine
	x = (relT % p.TStatesPerLine) * 2
	return
}
