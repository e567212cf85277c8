package ula

// Display geometry, in the Spectrum's own paper coordinates (border not
// included). The framebuffer adds BorderWidth pixels on every side.
const (
	DisplayWidth  = 256
	DisplayHeight = 192
	CellWidth     = 8
	CellHeight    = 8
	CellsX        = DisplayWidth / CellWidth  // 32
	CellsY        = DisplayHeight / CellHeight // 24

	BorderWidth = 32

	FrameWidth  = DisplayWidth + 2*BorderWidth
	FrameHeight = DisplayHeight + 2*BorderWidth

	AttrCellCount = CellsX * CellsY // 768
)

// FlashToggleFrames is how many frames elapse between FLASH phase flips
// (~1.6 Hz at 50 Hz refresh — 16 frames, not the 25 a naive reading of
// "toggles twice a second" would suggest).
const FlashToggleFrames = 16

// ScreenBankSplitThreshold is the number of recorded screen-bank changes
// in a frame above which paper rendering is deferred to end-of-frame, to
// distinguish genuine split-screen effects from simple double buffering.
// Empirical; see the open question in the design notes.
const ScreenBankSplitThreshold = 2

// mcWriteAdjust approximates the T-state offset between an instruction's
// recorded start and the cycle at which a PUSH-class write actually drives
// the bus. Observed from reference emulators, not derived from a datasheet.
const mcWriteAdjust = 5

// ColorNormal holds the eight base (non-bright) RGB colors, indices 0-7.
var ColorNormal = [8][3]uint8{
	{0, 0, 0},
	{0, 0, 205},
	{205, 0, 0},
	{205, 0, 205},
	{0, 205, 0},
	{0, 205, 205},
	{205, 205, 0},
	{205, 205, 205},
}

// ColorBright holds the eight bright RGB colors, indices 0-7 (index 0,
// black, cannot brighten and is identical to ColorNormal[0]).
var ColorBright = [8][3]uint8{
	{0, 0, 0},
	{0, 0, 255},
	{255, 0, 0},
	{255, 0, 255},
	{0, 255, 0},
	{0, 255, 255},
	{255, 255, 0},
	{255, 255, 255},
}

// bitReplicate3 expands a 3-bit channel to 8 bits by replicating the top
// bits into the low bits, used for ULAplus's GRB332 palette format.
func bitReplicate3(v byte) byte {
	v &= 0x07
	return (v << 5) | (v << 2) | (v >> 1)
}

// bitReplicate2 expands a 2-bit channel to 8 bits, for GRB332's blue field.
func bitReplicate2(v byte) byte {
	v &= 0x03
	return (v << 6) | (v << 4) | (v << 2) | v
}
