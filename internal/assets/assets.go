// Package assets loads the tile-sheet and sprite-sheet bitmap files
// that seed the machine's tile map and sprite table at boot.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "github.com/jsummers/gobmp" // registers the "bmp" format with image.Decode

	"tilemach/internal/memfab"
)

const (
	tileSheetFile   = "tiles.bmp"
	spriteSheetFile = "sprites.bmp"
)

// magenta is the source-pixel sentinel that maps to the transparent
// color word 0xFFFF.
const (
	magentaR = 0xFF
	magentaG = 0x00
	magentaB = 0xFF
)

// LoadInto decodes <dir>/tiles.bmp and <dir>/sprites.bmp and
// populates bus's tile map and sprite table. A missing or
// wrong-dimensioned sheet is a fatal startup error; callers should
// treat a non-nil return as fatal.
func LoadInto(bus *memfab.Bus, dir string) error {
	tileSheet, err := decodeSheet(filepath.Join(dir, tileSheetFile))
	if err != nil {
		return fmt.Errorf("loading tile sheet: %w", err)
	}
	if err := loadTiles(bus, tileSheet); err != nil {
		return fmt.Errorf("loading tile sheet: %w", err)
	}

	spriteSheet, err := decodeSheet(filepath.Join(dir, spriteSheetFile))
	if err != nil {
		return fmt.Errorf("loading sprite sheet: %w", err)
	}
	if err := loadSprites(bus, spriteSheet); err != nil {
		return fmt.Errorf("loading sprite sheet: %w", err)
	}
	return nil
}

func decodeSheet(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// loadTiles slices a sheet into memfab.TileCount cells of
// memfab.TileSize x memfab.TileSize pixels, row-major by sheet
// position, and packs each cell's pixels with the loader's standard
// 4-4-4 formula (no transparency nibble: tiles never carry one).
func loadTiles(bus *memfab.Bus, sheet image.Image) error {
	b := sheet.Bounds()
	cols := b.Dx() / memfab.TileSize
	rows := b.Dy() / memfab.TileSize
	if cols*rows != memfab.TileCount {
		return fmt.Errorf("tile sheet is %dx%d pixels (%d cells), want exactly %d cells of %dx%d",
			b.Dx(), b.Dy(), cols*rows, memfab.TileCount, memfab.TileSize, memfab.TileSize)
	}

	index := 0
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			var pixels [memfab.TilePixels]uint16
			for py := 0; py < memfab.TileSize; py++ {
				for px := 0; px < memfab.TileSize; px++ {
					x := b.Min.X + tx*memfab.TileSize + px
					y := b.Min.Y + ty*memfab.TileSize + py
					pixels[py*memfab.TileSize+px] = packColor(sheet, x, y)
				}
			}
			bus.TileMap().LoadTile(index, pixels)
			index++
		}
	}
	return nil
}

// loadSprites slices a sheet into at least memfab.SpriteCount cells
// of memfab.SpriteSize x memfab.SpriteSize pixels, packing each pixel
// the same way as loadTiles but mapping magenta source pixels to the
// transparent sentinel 0xFFFF.
func loadSprites(bus *memfab.Bus, sheet image.Image) error {
	b := sheet.Bounds()
	cols := b.Dx() / memfab.SpriteSize
	rows := b.Dy() / memfab.SpriteSize
	if cols*rows < memfab.SpriteCount {
		return fmt.Errorf("sprite sheet is %dx%d pixels (%d cells), want at least %d cells of %dx%d",
			b.Dx(), b.Dy(), cols*rows, memfab.SpriteCount, memfab.SpriteSize, memfab.SpriteSize)
	}

	index := 0
	for sy := 0; sy < rows && index < memfab.SpriteCount; sy++ {
		for sx := 0; sx < cols && index < memfab.SpriteCount; sx++ {
			var pixels [memfab.SpritePixels]uint16
			for py := 0; py < memfab.SpriteSize; py++ {
				for px := 0; px < memfab.SpriteSize; px++ {
					x := b.Min.X + sx*memfab.SpriteSize + px
					y := b.Min.Y + sy*memfab.SpriteSize + py
					if isMagenta(sheet, x, y) {
						pixels[py*memfab.SpriteSize+px] = memfab.OffscreenCoord // 0xFFFF sentinel
						continue
					}
					pixels[py*memfab.SpriteSize+px] = packColor(sheet, x, y)
				}
			}
			bus.SpriteTable().LoadSprite(index, pixels)
			index++
		}
	}
	return nil
}

// packColor quantizes an 8-bit RGB pixel down to the machine's 4-4-4
// color word, per the loader's standard formula.
func packColor(img image.Image, x, y int) uint16 {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint16(r>>12) | uint16(g>>12)<<4 | uint16(b>>12)<<8
}

func isMagenta(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r>>8) == magentaR && uint8(g>>8) == magentaG && uint8(b>>8) == magentaB
}
