package memfab

import "testing"

func TestRAMReadWrite(t *testing.T) {
	b := NewBus()
	b.Write(0x1234, 0xBEEF)
	if got := b.Read(0x1234); got != 0xBEEF {
		t.Errorf("ram readback = 0x%04X, want 0xBEEF", got)
	}
}

func TestTileMapWindowWriteThrough(t *testing.T) {
	b := NewBus()
	addr := uint16(TileMapStart + 5)
	b.Write(addr, 0x0F0F)

	if got := b.Read(addr); got != 0x0F0F {
		t.Errorf("tile-map readback = 0x%04X, want 0x0F0F", got)
	}
	if got := b.tileMap.ReadPixel(5); got != 0x0F0F {
		t.Errorf("tile map pixel 5 = 0x%04X, want 0x0F0F", got)
	}
	if b.ram[addr] != 0x0F0F {
		t.Errorf("write-through shadow not updated for tile-map window")
	}
}

func TestFrameBufferWindow(t *testing.T) {
	b := NewBus()
	addr := uint16(FrameBufferStart)
	b.Write(addr, 0x0201) // cell 0 = tile 1, cell 1 = tile 2

	cells := b.frameBuffer.Snapshot()
	if got := GetTile(cells, b.frameBuffer.Width, 0, 0); got != 1 {
		t.Errorf("cell (0,0) tile = %d, want 1", got)
	}
	if got := GetTile(cells, b.frameBuffer.Width, 1, 0); got != 2 {
		t.Errorf("cell (1,0) tile = %d, want 2", got)
	}
}

func TestSpritePixelAndCoordWindows(t *testing.T) {
	b := NewBus()
	b.Write(SpritePixelStart+SpritePixels+3, 0xF000) // sprite 1, pixel 3, transparent sentinel
	if got := b.spriteTable.ReadPixel(SpritePixels + 3); got != 0xF000 {
		t.Errorf("sprite 1 pixel 3 = 0x%04X, want 0xF000", got)
	}

	b.Write(SpriteCoordStart+2, 10) // sprite 1's x
	b.Write(SpriteCoordStart+3, 20) // sprite 1's y
	if got := b.spriteTable.ReadCoord(2); got != 10 {
		t.Errorf("sprite 1 x = %d, want 10", got)
	}
	if got := b.spriteTable.ReadCoord(3); got != 20 {
		t.Errorf("sprite 1 y = %d, want 20", got)
	}
}

func TestScrollScaleRegisters(t *testing.T) {
	b := NewBus()
	b.Write(HScrollReg, 64)
	b.Write(VScrollReg, 32)
	b.Write(ScaleReg, 2)

	if got := b.Read(HScrollReg); got != 64 {
		t.Errorf("hscroll = %d, want 64", got)
	}
	if got := b.Read(VScrollReg); got != 32 {
		t.Errorf("vscroll = %d, want 32", got)
	}
	if got := b.Read(ScaleReg); got != 2 {
		t.Errorf("scale = %d, want 2", got)
	}
}

func TestInputPortDequeuesOrZero(t *testing.T) {
	b := NewBus()
	if got := b.Read(InputPort); got != 0 {
		t.Errorf("empty input port read = %d, want 0", got)
	}

	b.Input().Push(65)
	b.Input().Push(66)
	if got := b.Read(InputPort); got != 65 {
		t.Errorf("first dequeue = %d, want 65", got)
	}
	if got := b.Read(InputPort); got != 66 {
		t.Errorf("second dequeue = %d, want 66", got)
	}
	if got := b.Read(InputPort); got != 0 {
		t.Errorf("drained input port read = %d, want 0", got)
	}
}

func TestInputPortWriteIsFatal(t *testing.T) {
	b := NewBus()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on write to input port")
		}
	}()
	b.Write(InputPort, 1)
}

func TestHaltFlag(t *testing.T) {
	b := NewBus()
	if b.Halted().Get() {
		t.Fatalf("halted should start false")
	}
	b.SetHalted(true)
	if !b.Halted().Get() {
		t.Errorf("halted should be true after SetHalted(true)")
	}
}
