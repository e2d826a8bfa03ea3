// internal/cell/cell.go
package cell

import (
	"encoding/binary"
	"fmt"

	"github.com/tamzrod/wakecell/internal/reset"
	"github.com/tamzrod/wakecell/internal/retention"
)

// Cell is one 32-bit value persisted in a single retention slot.
//
// The slot is fixed at construction and must be unique across the image;
// the cell does not detect collisions.
//
// The cached value mirrors retention memory only after Store, or after a
// Restore that actually read memory. Until then it holds zero.
type Cell struct {
	slot   uint16
	mem    retention.Memory
	oracle reset.Oracle
	value  uint32
}

// New binds a cell to slot. Call Restore once early in boot.
func New(slot uint16, mem retention.Memory, oracle reset.Oracle) *Cell {
	return &Cell{
		slot:   slot,
		mem:    mem,
		oracle: oracle,
	}
}

// Restore reloads the value only when the device woke from low-power sleep.
// After any other reset retention content is treated as undefined and the
// cached value is left as is.
func (c *Cell) Restore() error {
	if c.oracle.LastResetReason() != reset.LowPowerWake {
		return nil
	}

	var buf [retention.CellSize]byte
	if err := c.mem.Read(c.slot, buf[:]); err != nil {
		return fmt.Errorf("cell: restore slot %d: %w", c.slot, err)
	}

	c.value = binary.LittleEndian.Uint32(buf[:])
	return nil
}

// Store caches v and commits it to retention memory before returning.
// The cached value is updated even if the commit fails.
func (c *Cell) Store(v uint32) error {
	c.value = v

	var buf [retention.CellSize]byte
	binary.LittleEndian.PutUint32(buf[:], v)

	if err := c.mem.Write(c.slot, buf[:]); err != nil {
		return fmt.Errorf("cell: store slot %d: %w", c.slot, err)
	}
	return nil
}

// Data returns the cached value.
func (c *Cell) Data() uint32 {
	return c.value
}

func (c *Cell) Slot() uint16 {
	return c.slot
}
