package ula

// Key identifies one physical key on the 40-key Spectrum keyboard, named
// by its matrix position so Key stays a small closed enum rather
// than a rune.
type Key int

const (
	KeyCapsShift Key = iota
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	Key1
	Key2
	Key3
	Key4
	Key5
	Key0
	Key9
	Key8
	Key7
	Key6
	KeyP
	KeyO
	KeyI
	KeyU
	KeyY
	KeyEnter
	KeyL
	KeyK
	KeyJ
	KeyH
	KeySpace
	KeySymbolShift
	KeyM
	KeyN
	KeyB
)

// keyPos is the (row, bit) matrix coordinate for each Key, per the table
// in §6 of the specification.
var keyPos = map[Key][2]int{
	KeyCapsShift: {0, 0}, KeyZ: {0, 1}, KeyX: {0, 2}, KeyC: {0, 3}, KeyV: {0, 4},
	KeyA: {1, 0}, KeyS: {1, 1}, KeyD: {1, 2}, KeyF: {1, 3}, KeyG: {1, 4},
	KeyQ: {2, 0}, KeyW: {2, 1}, KeyE: {2, 2}, KeyR: {2, 3}, KeyT: {2, 4},
	Key1: {3, 0}, Key2: {3, 1}, Key3: {3, 2}, Key4: {3, 3}, Key5: {3, 4},
	Key0: {4, 0}, Key9: {4, 1}, Key8: {4, 2}, Key7: {4, 3}, Key6: {4, 4},
	KeyP: {5, 0}, KeyO: {5, 1}, KeyI: {5, 2}, KeyU: {5, 3}, KeyY: {5, 4},
	KeyEnter: {6, 0}, KeyL: {6, 1}, KeyK: {6, 2}, KeyJ: {6, 3}, KeyH: {6, 4},
	KeySpace: {7, 0}, KeySymbolShift: {7, 1}, KeyM: {7, 2}, KeyN: {7, 3}, KeyB: {7, 4},
}

const (
	KeyArrowLeft Key = 100 + iota
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
)

// arrowCombo maps the four cursor pseudo-keys to the (CAPS SHIFT + digit)
// combo the real keyboard uses, since the Spectrum has no dedicated arrow
// keys.
var arrowCombo = map[Key]Key{
	KeyArrowLeft:  Key5,
	KeyArrowRight: Key8,
	KeyArrowUp:    Key7,
	KeyArrowDown:  Key6,
}

// Keyboard models the 8x8 active-low key matrix and the two-frame
// "extended mode" sequence (both shifts, then a letter) used for symbols
// that have no direct key.
type Keyboard struct {
	rows [8]byte // active low; bit clear = key held

	extendedPending bool
	extendedKey     Key
	extendedFrames  int
}

// NewKeyboard returns a Keyboard with every row fully released (0xFF).
func NewKeyboard() *Keyboard {
	k := &Keyboard{}
	for i := range k.rows {
		k.rows[i] = 0xFF
	}
	return k
}

func (k *Keyboard) setBit(row, bit int, down bool) {
	mask := byte(1 << bit)
	if down {
		k.rows[row] &^= mask
	} else {
		k.rows[row] |= mask
	}
}

// KeyDown presses key, pressing CAPS SHIFT alongside it first if key is
// one of the four arrow pseudo-keys.
func (k *Keyboard) KeyDown(key Key) {
	if combo, ok := arrowCombo[key]; ok {
		k.press(KeyCapsShift, true)
		k.press(combo, true)
		return
	}
	k.press(key, true)
}

// KeyUp releases key (and its CAPS SHIFT combo, for arrow pseudo-keys).
func (k *Keyboard) KeyUp(key Key) {
	if combo, ok := arrowCombo[key]; ok {
		k.press(KeyCapsShift, false)
		k.press(combo, false)
		return
	}
	k.press(key, false)
}

func (k *Keyboard) press(key Key, down bool) {
	pos, ok := keyPos[key]
	if !ok {
		return
	}
	k.setBit(pos[0], pos[1], down)
}

// BeginExtended starts a two-frame extended-mode sequence: both shift keys
// held for one frame, then key alone on the next, reproducing how the
// real keyboard driver types symbols that need SYMBOL SHIFT + a letter
// chosen from a menu rather than a direct key.
func (k *Keyboard) BeginExtended(key Key) {
	k.extendedPending = true
	k.extendedKey = key
	k.extendedFrames = 0
	k.press(KeyCapsShift, true)
	k.press(KeySymbolShift, true)
}

// AdvanceFrame steps the extended-mode sequence; call once per emulated
// frame while a BeginExtended sequence is pending.
func (k *Keyboard) AdvanceFrame() {
	if !k.extendedPending {
		return
	}
	k.extendedFrames++
	switch k.extendedFrames {
	case 1:
		k.press(KeyCapsShift, false)
		k.press(KeySymbolShift, false)
		k.press(k.extendedKey, true)
	case 2:
		k.press(k.extendedKey, false)
		k.extendedPending = false
	}
}

// Scan ANDs together the rows selected by zero bits in selector (the high
// byte of a port read address), per §4.3/§6.
func (k *Keyboard) Scan(selector byte) byte {
	result := byte(0x1F)
	any := false
	for row := 0; row < 8; row++ {
		if selector&(1<<row) == 0 {
			result &= k.rows[row] & 0x1F
			any = true
		}
	}
	if !any {
		result = 0x1F
	}
	return result
}
