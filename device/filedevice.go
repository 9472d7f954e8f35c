package device

import (
	"fmt"
	"os"
)

// SimDevice is a simulated disk: every sector lives in a single in-memory
// buffer, and ReadSector/WriteSector never touch a host file directly. Load
// and Save are the only operations that cross into the host file system,
// the same division LibDisk draws between Disk_Read/Disk_Write (in-memory)
// and Disk_Load/Disk_Save (host file).
type SimDevice struct {
	sectorSize   int
	totalSectors int
	buf          []byte
}

// NewSimDevice creates a SimDevice for the given geometry. Init must still be
// called before use.
func NewSimDevice(sectorSize, totalSectors int) *SimDevice {
	return &SimDevice{sectorSize: sectorSize, totalSectors: totalSectors}
}

func (d *SimDevice) Init() error {
	d.buf = make([]byte, d.sectorSize*d.totalSectors)
	return nil
}

func (d *SimDevice) SectorSize() int   { return d.sectorSize }
func (d *SimDevice) TotalSectors() int { return d.totalSectors }
func (d *SimDevice) SizeBytes() int64  { return int64(d.sectorSize) * int64(d.totalSectors) }

func (d *SimDevice) checkBounds(index int) error {
	if index < 0 || index >= d.totalSectors {
		return fmt.Errorf("sector %d out of range [0, %d)", index, d.totalSectors)
	}
	return nil
}

func (d *SimDevice) ReadSector(index int, buf []byte) error {
	if err := d.checkBounds(index); err != nil {
		return err
	}
	if len(buf) != d.sectorSize {
		return fmt.Errorf("read buffer must be %d bytes, got %d", d.sectorSize, len(buf))
	}
	offset := index * d.sectorSize
	copy(buf, d.buf[offset:offset+d.sectorSize])
	return nil
}

func (d *SimDevice) WriteSector(index int, buf []byte) error {
	if err := d.checkBounds(index); err != nil {
		return err
	}
	if len(buf) != d.sectorSize {
		return fmt.Errorf("write buffer must be %d bytes, got %d", d.sectorSize, len(buf))
	}
	offset := index * d.sectorSize
	copy(d.buf[offset:offset+d.sectorSize], buf)
	return nil
}

// Load reads path into the device's in-memory buffer. If path doesn't exist
// the returned error wraps os.ErrNotExist, which fsys.Boot uses to decide
// whether to format a fresh image instead of failing outright.
func (d *SimDevice) Load(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	n := copy(d.buf, contents)
	if n < len(d.buf) {
		// Zero the remainder so a short file doesn't leave stale bytes from
		// a previous Init around; the caller is expected to reject the image
		// on a subsequent size check anyway.
		for i := n; i < len(d.buf); i++ {
			d.buf[i] = 0
		}
	}
	return nil
}

// Save writes the device's in-memory buffer to path, creating or truncating
// it as needed.
func (d *SimDevice) Save(path string) error {
	return os.WriteFile(path, d.buf, 0o644)
}
