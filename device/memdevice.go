package device

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xaionaro-go/bytesextra"
)

// MemDevice is a SimDevice variant whose sectors live behind an
// io.ReadWriteSeeker instead of a flat slice, seeking to the sector's byte
// offset on every read/write the way drivers/common/blockdevice.go's
// BlockDevice does over an arbitrary io.Seeker. It's backed by
// bytesextra.NewReadWriteSeeker so tests can build and tear down disk images
// without touching the host file system until Save is actually called.
type MemDevice struct {
	sectorSize   int
	totalSectors int
	stream       io.ReadWriteSeeker
}

func NewMemDevice(sectorSize, totalSectors int) *MemDevice {
	return &MemDevice{sectorSize: sectorSize, totalSectors: totalSectors}
}

func (d *MemDevice) Init() error {
	d.stream = bytesextra.NewReadWriteSeeker(make([]byte, d.sectorSize*d.totalSectors))
	return nil
}

func (d *MemDevice) SectorSize() int   { return d.sectorSize }
func (d *MemDevice) TotalSectors() int { return d.totalSectors }
func (d *MemDevice) SizeBytes() int64  { return int64(d.sectorSize) * int64(d.totalSectors) }

func (d *MemDevice) seekToSector(index int) error {
	if index < 0 || index >= d.totalSectors {
		return fmt.Errorf("sector %d out of range [0, %d)", index, d.totalSectors)
	}
	_, err := d.stream.Seek(int64(index)*int64(d.sectorSize), io.SeekStart)
	return err
}

func (d *MemDevice) ReadSector(index int, buf []byte) error {
	if len(buf) != d.sectorSize {
		return fmt.Errorf("read buffer must be %d bytes, got %d", d.sectorSize, len(buf))
	}
	if err := d.seekToSector(index); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, buf)
	return err
}

func (d *MemDevice) WriteSector(index int, buf []byte) error {
	if len(buf) != d.sectorSize {
		return fmt.Errorf("write buffer must be %d bytes, got %d", d.sectorSize, len(buf))
	}
	if err := d.seekToSector(index); err != nil {
		return err
	}
	_, err := d.stream.Write(buf)
	return err
}

// Load replaces the in-memory stream's contents with the bytes at path.
func (d *MemDevice) Load(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	buf := make([]byte, d.sectorSize*d.totalSectors)
	copy(buf, contents)
	d.stream = bytesextra.NewReadWriteSeeker(buf)
	return nil
}

// Save writes the stream's full contents out to path.
func (d *MemDevice) Save(path string) error {
	if _, err := d.stream.Seek(0, io.SeekStart); err != nil {
		return err
	}
	var out bytes.Buffer
	if _, err := io.Copy(&out, d.stream); err != nil {
		return err
	}
	return os.WriteFile(path, out.Bytes(), 0o644)
}

// LoadBytes seeds the device directly from an in-memory image, bypassing the
// host file system entirely. Tests use this to set up fixtures fast.
func (d *MemDevice) LoadBytes(image []byte) error {
	if len(image) != d.sectorSize*d.totalSectors {
		return fmt.Errorf(
			"image is %d bytes, expected %d", len(image), d.sectorSize*d.totalSectors)
	}
	buf := make([]byte, len(image))
	copy(buf, image)
	d.stream = bytesextra.NewReadWriteSeeker(buf)
	return nil
}
