package assets

import (
	"image"
	"image/color"
	"testing"

	"tilemach/internal/memfab"
)

func solidSheet(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLoadTilesRejectsWrongCellCount(t *testing.T) {
	bus := memfab.NewBus()
	sheet := solidSheet(8, 8, color.White) // 1 cell, not 128
	if err := loadTiles(bus, sheet); err == nil {
		t.Fatal("expected error for wrong tile count, got nil")
	}
}

func TestLoadTilesPacksColor(t *testing.T) {
	bus := memfab.NewBus()
	// 16x8 sheet = 2x1 cells of 8x8 = 2 cells; pad to 128 cells via a
	// 1024x8 sheet (128 columns x 1 row).
	sheet := solidSheet(memfab.TileCount*memfab.TileSize, memfab.TileSize, color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF})
	if err := loadTiles(bus, sheet); err != nil {
		t.Fatalf("loadTiles: %v", err)
	}
	if got := bus.TileMap().ReadPixel(0); got != 0x000F {
		t.Errorf("packed red pixel = 0x%04X, want 0x000F", got)
	}
}

func TestLoadSpritesMapsMagentaToTransparentSentinel(t *testing.T) {
	bus := memfab.NewBus()
	sheet := image.NewRGBA(image.Rect(0, 0, memfab.SpriteSize*memfab.SpriteCount, memfab.SpriteSize))
	for y := 0; y < memfab.SpriteSize; y++ {
		for x := 0; x < sheet.Bounds().Dx(); x++ {
			sheet.Set(x, y, color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF})
		}
	}
	if err := loadSprites(bus, sheet); err != nil {
		t.Fatalf("loadSprites: %v", err)
	}
	if got := bus.SpriteTable().ReadPixel(0); got != memfab.OffscreenCoord {
		t.Errorf("magenta sprite pixel = 0x%04X, want 0x%04X", got, memfab.OffscreenCoord)
	}
}

func TestLoadSpritesRejectsTooFewCells(t *testing.T) {
	bus := memfab.NewBus()
	sheet := solidSheet(memfab.SpriteSize, memfab.SpriteSize, color.Black) // 1 cell, need >= 8
	if err := loadSprites(bus, sheet); err == nil {
		t.Fatal("expected error for too few sprite cells, got nil")
	}
}
