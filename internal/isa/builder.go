package isa

import "encoding/binary"

// Builder assembles a sequence of instruction/immediate words into a
// flat little-endian program image, for test vectors and demo programs.
type Builder struct {
	words []uint16
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Emit appends a raw instruction word, typically the return value of
// one of the mnemonic encoders (Add, Addi, Branch, ...).
func (b *Builder) Emit(instr uint16) *Builder {
	b.words = append(b.words, instr)
	return b
}

// Immediate appends a trailing literal/address word for the
// previously emitted instruction. Callers are responsible for only
// calling this after an instruction for which NeedsImmediate is true.
func (b *Builder) Immediate(v uint16) *Builder {
	b.words = append(b.words, v)
	return b
}

// Label returns the word offset the next Emit call will occupy, for
// patching forward branch/jump targets.
func (b *Builder) Label() uint16 {
	return uint16(len(b.words))
}

// Patch overwrites the word at offset, used to back-patch a forward
// branch target once its destination label is known.
func (b *Builder) Patch(offset, v uint16) {
	b.words[offset] = v
}

// Len reports the current program length in words.
func (b *Builder) Len() int {
	return len(b.words)
}

// Words returns the assembled program as a word slice, in program
// order, ready to be loaded starting at address 0.
func (b *Builder) Words() []uint16 {
	out := make([]uint16, len(b.words))
	copy(out, b.words)
	return out
}

// Bytes serializes the program to a flat little-endian byte image,
// the format cmd/emulator reads from the program-path argument and
// cmd/demorom writes to disk.
func (b *Builder) Bytes() []byte {
	out := make([]byte, len(b.words)*2)
	for i, w := range b.words {
		binary.LittleEndian.PutUint16(out[i*2:], w)
	}
	return out
}

// DecodeImage splits a flat little-endian byte image back into words,
// the inverse of Bytes, used by cmd/emulator to load a program file
// into the memory fabric.
func DecodeImage(data []byte) []uint16 {
	words := make([]uint16, len(data)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return words
}
