// Package input implements the machine's keyboard input port: an
// unbounded FIFO of key codes, pushed by the host UI on key-press and
// drained by the CPU through the memory fabric's input-port address.
package input

import "sync"

// FIFO is a single-producer (host)/single-consumer (CPU) queue of
// 16-bit key codes.
type FIFO struct {
	mu sync.Mutex
	q  []uint16
}

// New returns an empty FIFO.
func New() *FIFO {
	return &FIFO{}
}

// Push appends a key code. Called from the host-UI goroutine on
// key-press; key-release has no corresponding method here.
func (f *FIFO) Push(code uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.q = append(f.q, code)
}

// PopOrZero dequeues the oldest key code, returning 0 if the FIFO is
// empty.
func (f *FIFO) PopOrZero() uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.q) == 0 {
		return 0
	}
	v := f.q[0]
	f.q = f.q[1:]
	return v
}

// Len reports the current queue depth, used by internal/hostui's
// status readout.
func (f *FIFO) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.q)
}
