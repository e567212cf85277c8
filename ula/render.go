package ula

// lineBaseT is the absolute T-state at which line (0-indexed from the
// first emulated scanline, not just the visible paper lines) begins,
// using the same base the lineStartTable derives for paper lines.
func (p Profile) lineBaseT(line int) int {
	base := p.TopLeftT - p.FirstScreenLine*p.TStatesPerLine
	return base + line*p.TStatesPerLine + p.VerticalDrift
}

// visibleWindowT is half of BorderWidth in T-states (2 pixels/T-state),
// i.e. how many T-states before a line's paper start the visible border
// begins.
const visibleWindowT = BorderWidth / 2

// visibleSpanT is the number of T-states spanning one full visible line
// (border + paper + border), at 2 pixels/T-state.
const visibleSpanT = FrameWidth / 2

// beamToFrame maps an absolute T-state to framebuffer coordinates. ok is
// false when t falls in horizontal flyback or outside the vertically
// visible band.
func (u *ULA) beamToFrame(t int) (x, y int, ok bool) {
	p := u.profile
	relBase := t - (p.TopLeftT - p.FirstScreenLine*p.TStatesPerLine) + visibleWindowT
	if relBase < 0 {
		return 0, 0, false
	}
	line := relBase / p.TStatesPerLine
	withinLineT := relBase % p.TStatesPerLine
	if withinLineT >= visibleSpanT {
		return 0, 0, false
	}

	frameY := line - (p.FirstScreenLine - BorderWidth)
	if frameY < 0 || frameY >= FrameHeight {
		return 0, 0, false
	}
	frameX := withinLineT * 2
	return frameX, frameY, true
}

func (u *ULA) setPixel(x, y int, color uint32) {
	if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
		return
	}
	off := (y*FrameWidth + x) * 4
	u.frame[off+0] = byte(color)
	u.frame[off+1] = byte(color >> 8)
	u.frame[off+2] = byte(color >> 16)
	u.frame[off+3] = byte(color >> 24)
}

// renderBorderUpTo fills every visible border pixel between the last
// rendered T-state and uptoT, honoring each recorded border-change event
// in order; paper-area pixels are overwritten afterward by renderPaper.
func (u *ULA) renderBorderUpTo(uptoT int) {
	borderColor := func(idx byte, atT int) uint32 {
		if u.plus.enabled {
			palette := u.paletteAtPaperLine(u.paperLineForTState(atT))
			return u.ulaPlusBorderColor(palette)
		}
		return u.colorForIndex(idx, false)
	}

	from := u.lastRenderedT
	colorIdx := u.border
	for _, ev := range u.borderLog {
		if ev.t <= from {
			colorIdx = ev.color
			continue
		}
		if ev.t > uptoT {
			break
		}
		u.fillBorderSpan(from, ev.t, borderColor(colorIdx, from))
		from = ev.t
		colorIdx = ev.color
	}
	u.fillBorderSpan(from, uptoT, borderColor(colorIdx, from))
	u.lastRenderedT = uptoT
}

// paperLineForTState maps an absolute T-state to the paper line (0-191)
// whose raster-palette state applies there, clamped to the visible range
// so vertical-border T-states reuse the nearest paper line's snapshot.
func (u *ULA) paperLineForTState(t int) int {
	line, _ := u.profile.Beam(t)
	paperLine := line - u.profile.FirstScreenLine
	if paperLine < 0 {
		return 0
	}
	if paperLine >= DisplayHeight {
		return DisplayHeight - 1
	}
	return paperLine
}

func (u *ULA) fillBorderSpan(fromT, toT int, color uint32) {
	if toT <= fromT {
		return
	}
	for t := fromT; t < toT; t++ {
		x, y, ok := u.beamToFrame(t)
		if !ok {
			continue
		}
		u.setPixel(x, y, color)
		u.setPixel(x+1, y, color)
	}
}

// renderPaper renders the 256x192 paper area. For each screen line it
// determines the effective screen bank (single bank unless split-screen
// bank changes exceeded ScreenBankSplitThreshold during the frame, in
// which case the bank is resolved per column by replaying bankLog), then
// for each 8-pixel cell reads the bitmap byte from that bank and the
// attribute byte in effect at the cell's lookup T-state by replaying the
// cell's attrLog against the initial-frame snapshot.
func (u *ULA) renderPaper() {
	deferredSplit := len(u.bankLog) > ScreenBankSplitThreshold

	for screenY := 0; screenY < DisplayHeight; screenY++ {
		lineStartT := u.lines.LineStart(screenY)
		frameY := BorderWidth + screenY
		rowAddr := bitmapRowAddress(screenY)
		cellY := screenY / CellHeight

		var palette [ulaPlusRegCount]byte
		if u.plus.enabled {
			palette = u.paletteAtPaperLine(screenY)
		}

		for cellX := 0; cellX < CellsX; cellX++ {
			colT := lineStartT + cellX*4
			bank, fromLog := u.bankForColumn(deferredSplit, colT)
			bitmapByte := u.bitmapByteFromBank(bank, fromLog, rowAddr+cellX)

			cellIdx := cellY*CellsX + cellX
			attr := u.attrAt(cellIdx, colT)

			u.renderCell(frameY, cellX, bitmapByte, attr, palette)
		}
	}
}

func bitmapRowAddress(y int) int {
	highY := (y & 0xC0) << 5
	lowY := (y & 0x07) << 8
	midY := (y & 0x38) << 2
	return highY + lowY + midY
}

// bankForColumn resolves the effective screen bank for the pixel at T-state
// colT. Outside a real split-screen (few or no bank-change events), the
// currently selected screen is used throughout and fromLog is false.
func (u *ULA) bankForColumn(deferredSplit bool, colT int) (bank byte, fromLog bool) {
	if !deferredSplit || len(u.bankLog) == 0 {
		return 0, false
	}
	bank = u.bankLog[0].bank
	for _, ev := range u.bankLog {
		if ev.t > colT {
			break
		}
		bank = ev.bank
	}
	return bank, true
}

// bitmapByteFromBank reads a bitmap byte from the screen bank. When
// fromLog is set, bank names the bank that was actually selected at the
// column's fetch T-state and is read directly via RAMBank, replaying the
// split exactly as the ULA's pixel fetcher saw it; otherwise the currently
// mapped screen bank is used.
func (u *ULA) bitmapByteFromBank(bank byte, fromLog bool, addr int) byte {
	if addr < 0 || addr >= 0x1800 {
		return 0
	}
	var screen *[0x4000]byte
	if fromLog {
		screen = u.screen.RAMBank(int(bank))
	} else {
		screen = u.screen.ScreenRAM()
	}
	if screen == nil {
		return 0
	}
	return screen[addr]
}

// attrAt returns the attribute byte in effect for cellIdx at lookup
// T-state t: the most recent recorded change at or before t, or the
// frame's initial snapshot if none has occurred yet.
func (u *ULA) attrAt(cellIdx, t int) byte {
	value := u.initialAttrSnapshot[cellIdx]
	for _, ev := range u.attrLog[cellIdx] {
		if ev.t > t {
			break
		}
		value = ev.value
	}
	return value
}

func (u *ULA) renderCell(frameY, cellX int, bitmapByte, attr byte, palette [ulaPlusRegCount]byte) {
	ink := attr & 0x07
	paper := (attr >> 3) & 0x07
	bright := attr&0x40 != 0
	flash := attr&0x80 != 0

	fg, bg := ink, paper
	if flash && u.flashOn {
		fg, bg = bg, fg
	}

	var fgU32, bgU32 uint32
	if u.plus.enabled {
		fgU32 = u.ulaPlusColor(attr, true, palette)
		bgU32 = u.ulaPlusColor(attr, false, palette)
	} else {
		fgU32 = u.colorForIndex(fg, bright)
		bgU32 = u.colorForIndex(bg, bright)
	}

	frameX := BorderWidth + cellX*CellWidth
	for bit := 7; bit >= 0; bit-- {
		px := frameX + (7 - bit)
		if (bitmapByte>>bit)&1 != 0 {
			u.setPixel(px, frameY, fgU32)
		} else {
			u.setPixel(px, frameY, bgU32)
		}
	}
}
