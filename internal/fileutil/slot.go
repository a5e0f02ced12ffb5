package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// CleanupSlot records the output path a single flow is currently writing,
// so an interrupt handler running on another goroutine can locate and
// delete the partial file. The writer sets the slot before the first output
// byte and clears it unconditionally when the flow exits.
type CleanupSlot struct {
	mu   sync.Mutex
	path string
}

// Set records path as the file currently being written.
func (s *CleanupSlot) Set(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = path
}

// Clear empties the slot without touching the filesystem.
func (s *CleanupSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = ""
}

// Path returns the currently recorded path, or "" if the slot is empty.
func (s *CleanupSlot) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.path
}

// Remove deletes the recorded file, if any, and empties the slot.
// Safe to call concurrently with the writer: the mutex serializes against
// Set/Clear, and a file that is already gone is not an error.
func (s *CleanupSlot) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	path := s.path
	s.path = ""

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// SlotGroup tracks the cleanup slots of concurrently running flows so a
// signal handler can remove every in-flight output with one call.
type SlotGroup struct {
	mu    sync.Mutex
	slots []*CleanupSlot
}

// NewSlotGroup returns an empty slot group.
func NewSlotGroup() *SlotGroup {
	return &SlotGroup{}
}

// NewSlot creates a slot and registers it with the group.
func (g *SlotGroup) NewSlot() *CleanupSlot {
	slot := &CleanupSlot{}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.slots = append(g.slots, slot)

	return slot
}

// RemoveAll removes every recorded in-flight output. Errors are ignored:
// this runs on the interrupt path where best-effort deletion is the contract.
func (g *SlotGroup) RemoveAll() {
	g.mu.Lock()
	slots := make([]*CleanupSlot, len(g.slots))
	copy(slots, g.slots)
	g.mu.Unlock()

	for _, slot := range slots {
		slot.Remove() //nolint:errcheck,gosec // best-effort cleanup
	}
}
