// internal/retention/file.go
package retention

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// imageVersion is the current retention image format.
const imageVersion = 1

// image is the on-disk form of a retention block.
// Integer keys keep the file compact.
type image struct {
	Version int               `cbor:"1,keyasint"`
	Cells   map[uint16][]byte `cbor:"2,keyasint"`
}

var (
	imageEncMode cbor.EncMode
	imageDecMode cbor.DecMode
)

func init() {
	var err error

	imageEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("retention: cbor enc mode: %v", err))
	}

	imageDecMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("retention: cbor dec mode: %v", err))
	}
}

// File emulates retention memory on a host by mirroring the block into a
// CBOR image. Every Write rewrites the image before returning, so a
// process exit ("deep sleep") keeps the contents.
type File struct {
	mu    sync.Mutex
	path  string
	slots int
	cells map[uint16][]byte
}

// OpenFile loads the image at path, or starts an empty block if absent.
func OpenFile(path string, slots int) (*File, error) {
	if path == "" {
		return nil, errors.New("retention: file path required")
	}
	if slots <= 0 {
		return nil, errors.New("retention: slots must be > 0")
	}

	f := &File{
		path:  path,
		slots: slots,
		cells: make(map[uint16][]byte),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retention: read image: %w", err)
	}

	var img image
	if err := imageDecMode.Unmarshal(data, &img); err != nil {
		return nil, fmt.Errorf("retention: decode image: %w", err)
	}
	if img.Version != imageVersion {
		return nil, fmt.Errorf("retention: image version %d unsupported", img.Version)
	}

	for slot, v := range img.Cells {
		if int(slot) >= slots || len(v) != CellSize {
			continue
		}
		f.cells[slot] = v
	}

	return f, nil
}

func (f *File) Read(slot uint16, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := checkAccess(slot, f.slots, buf); err != nil {
		return err
	}

	v, ok := f.cells[slot]
	if !ok {
		for i := range buf {
			buf[i] = 0
		}
		return nil
	}
	copy(buf, v)
	return nil
}

func (f *File) Write(slot uint16, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := checkAccess(slot, f.slots, buf); err != nil {
		return err
	}

	prev, had := f.cells[slot]

	v := make([]byte, CellSize)
	copy(v, buf)
	f.cells[slot] = v

	if err := f.flush(); err != nil {
		// keep the in-memory block consistent with the image
		if had {
			f.cells[slot] = prev
		} else {
			delete(f.cells, slot)
		}
		return err
	}
	return nil
}

// PowerLoss removes the image, as a power cut clears the real block.
func (f *File) PowerLoss() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cells = make(map[uint16][]byte)
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("retention: remove image: %w", err)
	}
	return nil
}

// flush writes via a temp file and rename so a crash never leaves half an image.
func (f *File) flush() error {
	data, err := imageEncMode.Marshal(image{
		Version: imageVersion,
		Cells:   f.cells,
	})
	if err != nil {
		return fmt.Errorf("retention: encode image: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("retention: mkdir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("retention: write image: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("retention: commit image: %w", err)
	}
	return nil
}
