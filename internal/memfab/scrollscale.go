package memfab

import "sync"

// ScrollScale bundles the three single-word video registers: they are
// small and always read together by the rasterizer, so they
// share one guard rather than three.
type ScrollScale struct {
	mu      sync.RWMutex
	hscroll uint16
	vscroll uint16
	scale   uint16
}

func (s *ScrollScale) HScroll() uint16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hscroll
}

func (s *ScrollScale) SetHScroll(v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hscroll = v
}

func (s *ScrollScale) VScroll() uint16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vscroll
}

func (s *ScrollScale) SetVScroll(v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vscroll = v
}

func (s *ScrollScale) Scale() uint16 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale
}

func (s *ScrollScale) SetScale(v uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = v
}

// Snapshot returns (hscroll, vscroll, scale) under a single read lock.
func (s *ScrollScale) Snapshot() (hscroll, vscroll, scale uint16) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hscroll, s.vscroll, s.scale
}
