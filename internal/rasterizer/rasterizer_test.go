package rasterizer

import (
	"image/color"
	"testing"

	"tilemach/internal/memfab"
)

func uniformTile(w uint16) [memfab.TilePixels]uint16 {
	var t [memfab.TilePixels]uint16
	for i := range t {
		t[i] = w
	}
	return t
}

func TestDecodeColor(t *testing.T) {
	got := decodeColor(0x0F0A) // R=0xA, G=0x0, B=0xF
	want := color.RGBA{R: 0xA0, G: 0x00, B: 0xF0, A: 255}
	if got != want {
		t.Errorf("decodeColor(0x0F0A) = %+v, want %+v", got, want)
	}
}

func TestWrapToroidal(t *testing.T) {
	cases := []struct{ v, m, want int }{
		{5, 640, 5},
		{640, 640, 0},
		{645, 640, 5},
		{-1, 640, 639},
	}
	for _, c := range cases {
		if got := wrap(c.v, c.m); got != c.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", c.v, c.m, got, c.want)
		}
	}
}

func TestComposeFillsTileAtOrigin(t *testing.T) {
	bus := memfab.NewBus()
	bus.TileMap().LoadTile(0, uniformTile(0x0001)) // R=16

	img := Compose(bus)
	want := decodeColor(0x0001)
	if got := img.RGBAAt(0, 0); got != want {
		t.Errorf("pixel (0,0) = %+v, want %+v", got, want)
	}
	if got := img.RGBAAt(7, 7); got != want {
		t.Errorf("pixel (7,7) = %+v, want %+v", got, want)
	}
}

func TestComposeScaleDoublesBlockSize(t *testing.T) {
	bus := memfab.NewBus()
	bus.TileMap().LoadTile(0, uniformTile(0x0001))
	bus.Write(memfab.ScaleReg, 1) // 2^1 = 2x

	img := Compose(bus)
	bounds := img.Bounds()
	if bounds.Dx() != memfab.FrameWidth*2 || bounds.Dy() != memfab.FrameHeight*2 {
		t.Fatalf("composed image size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), memfab.FrameWidth*2, memfab.FrameHeight*2)
	}
	want := decodeColor(0x0001)
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if got := img.RGBAAt(p[0], p[1]); got != want {
			t.Errorf("scaled pixel %v = %+v, want %+v", p, got, want)
		}
	}
}

func TestComposeScrollWrapEquivalence(t *testing.T) {
	bus := memfab.NewBus()
	bus.TileMap().LoadTile(0, uniformTile(0x0001))
	bus.TileMap().LoadTile(1, uniformTile(0x00F0))
	bus.Write(memfab.FrameBufferStart, 0x0100) // cell(0,0)=tile0, cell(1,0)=tile1

	bus.Write(memfab.HScrollReg, 3)
	a := Compose(bus)

	bus.Write(memfab.HScrollReg, 3+memfab.FrameWidth)
	b := Compose(bus)

	for y := 0; y < memfab.FrameHeight; y += 37 {
		for x := 0; x < memfab.FrameWidth; x += 41 {
			if a.RGBAAt(x, y) != b.RGBAAt(x, y) {
				t.Fatalf("scroll-wrap mismatch at (%d,%d): %+v != %+v", x, y, a.RGBAAt(x, y), b.RGBAAt(x, y))
			}
		}
	}
}

func TestComposeSpriteTransparencyAndOverwrite(t *testing.T) {
	bus := memfab.NewBus()
	bus.TileMap().LoadTile(0, uniformTile(0x0001))

	var pixels [memfab.SpritePixels]uint16
	for i := range pixels {
		pixels[i] = 0x00F0 // opaque green
	}
	pixels[0] = 0xF000 // transparent at (0,0) within the sprite
	bus.SpriteTable().LoadSprite(0, pixels)
	bus.SpriteTable().WriteCoord(0, 10) // sprite 0 x
	bus.SpriteTable().WriteCoord(1, 10) // sprite 0 y

	img := Compose(bus)
	if got, want := img.RGBAAt(10, 10), decodeColor(0x0001); got != want {
		t.Errorf("transparent sprite pixel at (10,10) = %+v, want tile color %+v", got, want)
	}
	if got, want := img.RGBAAt(11, 10), decodeColor(0x00F0); got != want {
		t.Errorf("opaque sprite pixel at (11,10) = %+v, want %+v", got, want)
	}
}
