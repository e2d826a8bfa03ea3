// internal/retention/modbus/memory.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/wakecell/internal/retention"
)

// RegistersPerSlot is the number of 16-bit holding registers one cell spans.
const RegistersPerSlot = retention.CellSize / 2

// registerClient is the subset of modbus.Client the memory needs.
type registerClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// Memory keeps retention cells in a holding-register block on a Modbus
// device (battery-backed RTC RAM, a companion MCU, a PLC).
// Slot n lives at BaseAddress + n*RegistersPerSlot.
// Requests are serialized; one TCP connection is shared.
type Memory struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  registerClient
	base    uint16
	slots   int
}

type Config struct {
	Endpoint    string
	UnitID      uint8
	BaseAddress uint16
	Slots       int
	Timeout     time.Duration
}

// New connects to the endpoint and returns the register-backed memory.
func New(cfg Config) (*Memory, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("retention modbus: endpoint required")
	}
	if cfg.Slots <= 0 {
		return nil, errors.New("retention modbus: slots must be > 0")
	}
	if int(cfg.BaseAddress)+cfg.Slots*RegistersPerSlot > 0x10000 {
		return nil, errors.New("retention modbus: register block exceeds address space")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("retention modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &Memory{
		handler: h,
		client:  modbus.NewClient(h),
		base:    cfg.BaseAddress,
		slots:   cfg.Slots,
	}, nil
}

// newWithClient wires a prebuilt client (tests).
func newWithClient(c registerClient, base uint16, slots int) *Memory {
	return &Memory{client: c, base: base, slots: slots}
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handler == nil {
		return nil
	}
	return m.handler.Close()
}

// ---- retention.Memory ----

func (m *Memory) Read(slot uint16, buf []byte) error {
	if err := m.check(slot, buf); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	addr := m.addr(slot)
	raw, err := m.client.ReadHoldingRegisters(addr, RegistersPerSlot)
	if err != nil {
		return fmt.Errorf("retention modbus: read slot=%d addr=%d: %w", slot, addr, err)
	}
	if len(raw) != retention.CellSize {
		return fmt.Errorf("retention modbus: read slot=%d: got %d bytes want %d", slot, len(raw), retention.CellSize)
	}

	copy(buf, raw)
	return nil
}

func (m *Memory) Write(slot uint16, buf []byte) error {
	if err := m.check(slot, buf); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	addr := m.addr(slot)

	// register payload is the cell bytes verbatim (2 bytes per register)
	payload := make([]byte, retention.CellSize)
	copy(payload, buf)

	if _, err := m.client.WriteMultipleRegisters(addr, RegistersPerSlot, payload); err != nil {
		return fmt.Errorf("retention modbus: write slot=%d addr=%d: %w", slot, addr, err)
	}
	return nil
}

// ---- helpers ----

func (m *Memory) check(slot uint16, buf []byte) error {
	if len(buf) != retention.CellSize {
		return fmt.Errorf("%w: got %d", retention.ErrLength, len(buf))
	}
	if int(slot) >= m.slots {
		return fmt.Errorf("%w: slot=%d slots=%d", retention.ErrSlotRange, slot, m.slots)
	}
	return nil
}

func (m *Memory) addr(slot uint16) uint16 {
	return m.base + slot*RegistersPerSlot
}
