// Package memfab implements the machine's memory-mapped I/O fabric: a
// flat 64Ki-word address space that overlays RAM with windows onto the
// tile map, frame buffer, sprite table, scroll/scale registers and an
// input FIFO. Every mapped structure carries its own guard so the CPU
// and the rasterizer never serialize on a single coarse lock.
package memfab

import (
	"tilemach/internal/debug"
	"tilemach/internal/input"
)

// Address map. The sprite-pixel window spans 0xA000-0xBFFF (0x2000
// words: 8 sprites x 1024 words each), extended up to (but not
// overlapping) the tile-map window at 0xC000. See DESIGN.md.
const (
	SpritePixelStart = 0xA000
	SpritePixelEnd   = 0xBFFF

	TileMapStart = 0xC000
	TileMapEnd   = 0xDFFF

	FrameBufferStart = 0xE000
	FrameBufferEnd   = 0xEFFF

	SpriteCoordStart = 0xFFE0
	SpriteCoordEnd   = 0xFFEF

	ScaleReg   = 0xFFFC
	HScrollReg = 0xFFFD
	VScrollReg = 0xFFFE
	InputPort  = 0xFFFF
)

// Bus is the flat 64Ki-word address space. RAM is owned exclusively
// by the CPU (the rasterizer never touches it directly); every other
// field is a mapped structure with its own guard, reachable by the
// rasterizer through the accessor methods below.
type Bus struct {
	ram [65536]uint16

	tileMap     *TileMap
	frameBuffer *FrameBuffer
	spriteTable *SpriteTable
	scrollScale *ScrollScale
	input       *input.FIFO
	halted      *HaltFlag

	Log *debug.Logger
}

// NewBus returns a Bus with every mapped structure freshly allocated
// and RAM zero-filled.
func NewBus() *Bus {
	return &Bus{
		tileMap:     NewTileMap(),
		frameBuffer: NewFrameBuffer(),
		spriteTable: NewSpriteTable(),
		scrollScale: &ScrollScale{},
		input:       input.New(),
		halted:      &HaltFlag{},
	}
}

// LoadProgram copies a program image into RAM starting at address 0.
// RAM beyond the image is left as it was, so it is zero only on a
// fresh Bus.
func (b *Bus) LoadProgram(words []uint16) {
	copy(b.ram[:], words)
}

// TileMap, FrameBuffer, SpriteTable, ScrollScale, Input and Halted
// hand the rasterizer (and cmd/emulator's wiring) direct access to
// each guarded structure.
func (b *Bus) TileMap() *TileMap         { return b.tileMap }
func (b *Bus) FrameBuffer() *FrameBuffer { return b.frameBuffer }
func (b *Bus) SpriteTable() *SpriteTable { return b.spriteTable }
func (b *Bus) ScrollScale() *ScrollScale { return b.scrollScale }
func (b *Bus) Input() *input.FIFO        { return b.input }
func (b *Bus) Halted() *HaltFlag         { return b.halted }

// SetHalted satisfies internal/cpu's optional Haltable interface,
// letting the CPU publish its halt to the shared flag the rasterizer
// polls.
func (b *Bus) SetHalted(v bool) {
	b.halted.Set(v)
}

// Read dispatches a 16-bit read by address range.
func (b *Bus) Read(addr uint16) uint16 {
	switch {
	case addr >= SpritePixelStart && addr <= SpritePixelEnd:
		return b.spriteTable.ReadPixel(addr - SpritePixelStart)
	case addr >= TileMapStart && addr <= TileMapEnd:
		return b.tileMap.ReadPixel(addr - TileMapStart)
	case addr >= FrameBufferStart && addr <= FrameBufferEnd:
		return b.frameBuffer.ReadWord(addr - FrameBufferStart)
	case addr >= SpriteCoordStart && addr <= SpriteCoordEnd:
		return b.spriteTable.ReadCoord(addr - SpriteCoordStart)
	case addr == ScaleReg:
		return b.scrollScale.Scale()
	case addr == HScrollReg:
		return b.scrollScale.HScroll()
	case addr == VScrollReg:
		return b.scrollScale.VScroll()
	case addr == InputPort:
		v := b.input.PopOrZero()
		if b.Log != nil && b.Log.IsComponentEnabled(debug.ComponentInput) {
			b.Log.LogInput(debug.LogLevelDebug, "input read: value=0x%04X", v)
		}
		return v
	default:
		return b.ram[addr]
	}
}

// Write dispatches a 16-bit write by address range, applying the
// write-through policy to RAM for every mapped window.
func (b *Bus) Write(addr uint16, value uint16) {
	switch {
	case addr >= SpritePixelStart && addr <= SpritePixelEnd:
		b.spriteTable.WritePixel(addr-SpritePixelStart, value)
	case addr >= TileMapStart && addr <= TileMapEnd:
		b.tileMap.WritePixel(addr-TileMapStart, value)
	case addr >= FrameBufferStart && addr <= FrameBufferEnd:
		b.frameBuffer.WriteWord(addr-FrameBufferStart, value)
	case addr >= SpriteCoordStart && addr <= SpriteCoordEnd:
		b.spriteTable.WriteCoord(addr-SpriteCoordStart, value)
	case addr == ScaleReg:
		b.scrollScale.SetScale(value)
	case addr == HScrollReg:
		b.scrollScale.SetHScroll(value)
	case addr == VScrollReg:
		b.scrollScale.SetVScroll(value)
	case addr == InputPort:
		panic("memfab: illegal guest write to read-only input port")
	}
	b.ram[addr] = value
}
