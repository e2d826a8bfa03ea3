// internal/retention/memory.go
package retention

import (
	"errors"
	"fmt"
	"sync"
)

// CellSize is the fixed width of one slot in bytes.
const CellSize = 4

var (
	ErrSlotRange = errors.New("retention: slot out of range")
	ErrLength    = errors.New("retention: buffer length must equal cell size")
)

// Memory is low-power retention memory addressed by slot.
// Contents survive deep sleep, not power loss.
// Slot ownership is agreed by the callers; Memory does not track owners.
type Memory interface {
	Read(slot uint16, buf []byte) error
	Write(slot uint16, buf []byte) error
}

func checkAccess(slot uint16, slots int, buf []byte) error {
	if len(buf) != CellSize {
		return fmt.Errorf("%w: got %d", ErrLength, len(buf))
	}
	if int(slot) >= slots {
		return fmt.Errorf("%w: slot=%d slots=%d", ErrSlotRange, slot, slots)
	}
	return nil
}

// RAM is an in-process retention block.
type RAM struct {
	mu   sync.Mutex
	data [][CellSize]byte
}

// NewRAM allocates slots zeroed cells.
func NewRAM(slots int) *RAM {
	return &RAM{data: make([][CellSize]byte, slots)}
}

func (r *RAM) Read(slot uint16, buf []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkAccess(slot, len(r.data), buf); err != nil {
		return err
	}
	copy(buf, r.data[slot][:])
	return nil
}

func (r *RAM) Write(slot uint16, buf []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkAccess(slot, len(r.data), buf); err != nil {
		return err
	}
	copy(r.data[slot][:], buf)
	return nil
}

// PowerLoss scrambles every cell, as a real block would after a power cut.
// Content after power loss is undefined; a fixed pattern keeps tests deterministic.
func (r *RAM) PowerLoss() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.data {
		r.data[i] = [CellSize]byte{0xA5, 0xA5, 0xA5, 0xA5}
	}
}

// Slots returns the number of cells.
func (r *RAM) Slots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
