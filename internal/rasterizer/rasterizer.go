// Package rasterizer turns a snapshot of the memory fabric's video
// state into a pixel image, following the tile-plane/sprite-plane
// compositing rules of the machine's graphics processor.
package rasterizer

import (
	"image"
	"image/color"

	"tilemach/internal/memfab"
)

// Compose snapshots the tile map, frame buffer, sprite table and
// scroll/scale registers and renders one frame. Each Snapshot call
// acquires exactly one read lock for its own duration; no two guards
// are ever held at once. The returned image is a pure function of the
// snapshot: identical shared state always produces
// an identical buffer.
func Compose(bus *memfab.Bus) *image.RGBA {
	tiles := bus.TileMap().Snapshot()
	cells := bus.FrameBuffer().Snapshot()
	sprites := bus.SpriteTable().Snapshot()
	hscroll, vscroll, scaleReg := bus.ScrollScale().Snapshot()

	scale := 1 << scaleReg
	width := memfab.FrameWidth * scale
	height := memfab.FrameHeight * scale
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	fbWidth := bus.FrameBuffer().Width
	fbHeight := bus.FrameBuffer().Height

	for cy := 0; cy < fbHeight; cy++ {
		for cx := 0; cx < fbWidth; cx++ {
			t := memfab.GetTile(cells, fbWidth, cx, cy)
			tile := tiles[t]
			for py := 0; py < memfab.TileSize; py++ {
				for px := 0; px < memfab.TileSize; px++ {
					lx := wrap(cx*memfab.TileSize+px+int(hscroll), memfab.FrameWidth)
					ly := wrap(cy*memfab.TileSize+py+int(vscroll), memfab.FrameHeight)
					w := tile[py*memfab.TileSize+px]
					fillBlock(img, lx*scale, ly*scale, scale, decodeColor(w))
				}
			}
		}
	}

	for i := range sprites {
		sp := &sprites[i]
		for py := 0; py < memfab.SpriteSize; py++ {
			for px := 0; px < memfab.SpriteSize; px++ {
				w := sp.Pixels[py*memfab.SpriteSize+px]
				if w&0xF000 == 0xF000 {
					continue
				}
				x := int(sp.X) + px
				y := int(sp.Y) + py
				if x < 0 || x >= memfab.FrameWidth || y < 0 || y >= memfab.FrameHeight {
					continue
				}
				fillBlock(img, x*scale, y*scale, scale, decodeColor(w))
			}
		}
	}

	return img
}

// wrap reduces v modulo m into [0, m), implementing the tile plane's
// toroidal scroll wrap.
func wrap(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// decodeColor unpacks a pixel word's 4-4-4 RGB channels. The
// transparency nibble is meaningless outside sprites and is simply
// ignored here.
func decodeColor(w uint16) color.RGBA {
	r := uint8(w&0x000F) * 16
	g := uint8((w&0x00F0)>>4) * 16
	b := uint8((w&0x0F00)>>8) * 16
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// fillBlock paints the size x size physical block anchored at (x0,
// y0), clipped to the image bounds.
func fillBlock(img *image.RGBA, x0, y0, size int, c color.RGBA) {
	b := img.Bounds()
	for y := y0; y < y0+size; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x < x0+size; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}
