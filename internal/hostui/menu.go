package hostui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// SetOnOpenROM registers a callback invoked with the chosen file's
// local path when the user picks File > Open ROM.... main wires this
// to copy the chosen image into RAM from address 0; the running CPU is
// neither stopped nor reset, and RAM beyond the new image is not
// cleared.
func (win *Window) SetOnOpenROM(fn func(path string)) {
	win.onOpenROM = fn
}

func (win *Window) buildMenu() *fyne.MainMenu {
	open := fyne.NewMenuItem("Open ROM...", func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			defer r.Close()
			if win.onOpenROM != nil {
				win.onOpenROM(r.URI().Path())
			}
		}, win.window)
		d.Show()
	})
	return fyne.NewMainMenu(fyne.NewMenu("File", open))
}
