// Package device is the block device adapter spec.md treats as an external
// collaborator: sector-granular reads and writes against a backing store,
// plus lifecycle load/save to a host path. Nothing in this package knows
// about inodes, bitmaps, or directories.
package device

// Device is the contract every consumer in this repository programs
// against. It mirrors LibDisk's Disk_Init/Disk_Read/Disk_Write/Disk_Load/
// Disk_Save, generalized the way drivers/common/blockdevice.go generalizes
// sector I/O over an io.Seeker.
type Device interface {
	// Init prepares the device for use. It must be called before any other
	// method.
	Init() error

	// ReadSector fills buf (which must be exactly SectorSize() bytes) with
	// the contents of sector index.
	ReadSector(index int, buf []byte) error

	// WriteSector writes buf (which must be exactly SectorSize() bytes) to
	// sector index.
	WriteSector(index int, buf []byte) error

	// Load replaces the device's contents with the bytes at path. It fails
	// with os.ErrNotExist (wrapped) if path doesn't exist; callers use this
	// to distinguish "format a new image" from "something is wrong."
	Load(path string) error

	// Save flushes the device's contents to path.
	Save(path string) error

	// SectorSize returns the fixed size, in bytes, of one sector.
	SectorSize() int

	// TotalSectors returns the fixed number of sectors on the device.
	TotalSectors() int

	// SizeBytes returns the total addressable size of the device.
	SizeBytes() int64
}
