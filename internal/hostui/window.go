// Package hostui hosts the machine's rasterized output in a Fyne
// window, feeds host keystrokes into the input FIFO, and presents
// composed frames at a fixed rate.
package hostui

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"tilemach/internal/debug"
	"tilemach/internal/memfab"
	"tilemach/internal/rasterizer"
)

// presentHz is the host presentation rate; the machine has no vsync
// alignment requirement, so this is simply a steady wall-clock tick.
const presentHz = 60

// Window hosts one machine's output and input.
type Window struct {
	app    fyne.App
	window fyne.Window

	bus *memfab.Bus
	log *debug.Logger

	image  *canvas.Image
	status *statusBar

	onOpenROM func(path string)

	running bool
}

// New creates the window sized to the logical frame at the given
// integer zoom factor (the host's own display scaling, independent of
// the machine's SCALE register; rasterizer.Compose already bakes 2^n
// into the image it returns) and wires keyboard callbacks into bus's
// input FIFO.
func New(bus *memfab.Bus, log *debug.Logger, zoom int) *Window {
	if zoom < 1 {
		zoom = 1
	}

	a := app.NewWithID("tilemach.emulator")
	w := a.NewWindow("tilemach")

	blank := image.NewRGBA(image.Rect(0, 0, memfab.FrameWidth, memfab.FrameHeight))
	img := canvas.NewImageFromImage(blank)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(memfab.FrameWidth*zoom), float32(memfab.FrameHeight*zoom)))

	status := newStatusBar()
	w.SetContent(container.NewBorder(nil, status.label, nil, nil, img))
	w.Resize(fyne.NewSize(float32(memfab.FrameWidth*zoom), float32(memfab.FrameHeight*zoom)))

	win := &Window{app: a, window: w, bus: bus, log: log, image: img, status: status}
	w.SetMainMenu(win.buildMenu())
	win.bindKeys()
	return win
}

func (win *Window) bindKeys() {
	c, ok := win.window.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	c.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		code := keyCode(ev.Name)
		win.bus.Input().Push(code)
		if win.log != nil {
			win.log.LogInput(debug.LogLevelDebug, "key down: %s -> 0x%04X", ev.Name, code)
		}
	})
	// Key-release is a no-op: the input FIFO only ever grows on
	// key-press.
	c.SetOnKeyUp(func(*fyne.KeyEvent) {})
}

// Run blocks, presenting composed frames until the window closes or,
// for a non-interactive program (stayOpen=false), until the machine
// halts.
func (win *Window) Run(stayOpen bool) {
	win.running = true
	go win.presentLoop(stayOpen)
	win.window.ShowAndRun()
	win.running = false
}

func (win *Window) presentLoop(stayOpen bool) {
	ticker := time.NewTicker(time.Second / presentHz)
	defer ticker.Stop()

	frames := 0
	windowStart := time.Now()
	fps := 0.0

	for win.running {
		<-ticker.C

		if !stayOpen && win.bus.Halted().Get() {
			fyne.Do(win.window.Close)
			return
		}

		img := rasterizer.Compose(win.bus)
		frames++
		if elapsed := time.Since(windowStart); elapsed >= time.Second {
			fps = float64(frames) / elapsed.Seconds()
			frames = 0
			windowStart = time.Now()
		}

		halted := win.bus.Halted().Get()
		queued := win.bus.Input().Len()
		fyne.Do(func() {
			win.image.Image = img
			win.image.Refresh()
			win.status.update(fps, halted, queued)
		})
	}
}

// Close stops the present loop and closes the window.
func (win *Window) Close() {
	win.running = false
	win.window.Close()
}
