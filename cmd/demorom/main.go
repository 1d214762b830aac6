// Command demorom emits a small program image that moves sprite 0
// across the screen and scrolls the tile plane to match, so the
// windowed front end has something to run without requiring an
// external assembler or bitmap assets beyond the bundled data
// directory's tile/sprite sheets.
package main

import (
	"fmt"
	"os"

	"tilemach/internal/isa"
	"tilemach/internal/memfab"
)

// Register assignments for the demo program.
const (
	rX       = uint8(1) // shared scroll/sprite-x counter
	rCoord   = uint8(2) // sprite-0 coordinate window base address
	rHScroll = uint8(3) // HSCROLL register address
	rScale   = uint8(4) // SCALE register address
	rFrameW  = uint8(5) // constant: FrameWidth
	rScratch = uint8(6) // scratch
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <output.bin>\n", os.Args[0])
		os.Exit(64)
	}

	b := isa.NewBuilder()

	// Address constants.
	b.Emit(isa.Movi(rCoord)).Immediate(memfab.SpriteCoordStart)
	b.Emit(isa.Movi(rHScroll)).Immediate(memfab.HScrollReg)
	b.Emit(isa.Movi(rScale)).Immediate(memfab.ScaleReg)
	b.Emit(isa.Movi(rFrameW)).Immediate(memfab.FrameWidth)

	// scale = 1 (2x physical pixels).
	b.Emit(isa.Movi(rScratch)).Immediate(0)
	b.Emit(isa.Addi(rScratch)).Immediate(1)
	b.Emit(isa.SW(rScale, rScratch)).Immediate(0)

	// sprite 0's y = 100, fixed for the whole run.
	b.Emit(isa.Movi(rScratch)).Immediate(0)
	b.Emit(isa.Addi(rScratch)).Immediate(100)
	b.Emit(isa.SW(rCoord, rScratch)).Immediate(1) // offset 1 = sprite 0's y

	// x counter starts at 0.
	b.Emit(isa.Movi(rX)).Immediate(0)

	loop := b.Label()
	b.Emit(isa.SW(rCoord, rX)).Immediate(0)   // sprite 0's x = rX
	b.Emit(isa.SW(rHScroll, rX)).Immediate(0) // HSCROLL = rX (tile plane wraps on its own)
	b.Emit(isa.Addi(rX)).Immediate(1)

	// rScratch = rX - FrameWidth; if the subtraction didn't borrow
	// (carry set, per this ISA's C-is-inverse-of-borrow convention),
	// rX has reached FrameWidth and the sprite's copy needs to wrap
	// back to 0 (sprite coordinates don't wrap on their own).
	b.Emit(isa.Movi(rScratch)).Immediate(0)
	b.Emit(isa.Add(rScratch, rX))
	b.Emit(isa.Sub(rScratch, rFrameW))

	b.Emit(isa.Branch(isa.BC))
	wrapSlot := b.Label()
	b.Immediate(0) // patched below, once wrapTarget is known

	b.Emit(isa.JMP()).Immediate(loop)

	wrapTarget := b.Label()
	b.Emit(isa.Movi(rX)).Immediate(0)
	b.Emit(isa.Add(rX, rScratch))
	b.Emit(isa.JMP()).Immediate(loop)

	b.Patch(wrapSlot, wrapTarget)

	if err := os.WriteFile(os.Args[1], b.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
