package hostui

import "fyne.io/fyne/v2"

// keyCodes assigns a numeric code to the keys worth naming explicitly;
// every other single-character key falls back to its ASCII value in
// keyCode below. There is no requirement to match any real keyboard's
// scan codes, so this table only needs to be internally consistent
// from one run to the next.
var keyCodes = map[fyne.KeyName]uint16{
	fyne.KeyUp:     1,
	fyne.KeyDown:   2,
	fyne.KeyLeft:   3,
	fyne.KeyRight:  4,
	fyne.KeySpace:  5,
	fyne.KeyReturn: 6,
	fyne.KeyEscape: 7,
}

func keyCode(name fyne.KeyName) uint16 {
	if code, ok := keyCodes[name]; ok {
		return code
	}
	if len(name) == 1 {
		return uint16(name[0])
	}
	return 0
}
