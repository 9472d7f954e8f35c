// Package layout derives the five on-disk region boundaries and the
// per-sector record counts from a disk's tunable parameters. Nothing here
// touches a device; it's pure arithmetic, grounded on the region layout
// macros LibFS.c derives from SECTOR_SIZE/TOTAL_SECTORS/MAX_FILES/
// MAX_SECTORS_PER_FILE.
package layout

// Fixed limits that spec.md pins regardless of disk geometry.
const (
	MaxName      = 16
	MaxPath      = 256
	MaxOpenFiles = 256
)

// Magic is the 32-bit little-endian value stamped into the first four bytes
// of the superblock sector.
const Magic uint32 = 0xDEADBEEF

// InodeSize is the on-disk size, in bytes, of one packed inode record:
// a 4-byte size, a 4-byte type tag, and MaxSectorsPerFile 4-byte sector
// indices.
func InodeSize(maxSectorsPerFile int) int {
	return 4 + 4 + 4*maxSectorsPerFile
}

// DirentSize is the on-disk size, in bytes, of one packed directory entry:
// MaxName bytes of name followed by a 4-byte inode number.
const DirentSize = MaxName + 4

// Params are the tunable knobs a disk image is formatted with.
type Params struct {
	SectorSize        int
	TotalSectors      int
	MaxFiles          int
	MaxSectorsPerFile int
}

// Layout is the derived, ready-to-use geometry for a set of Params: sector
// counts and start offsets for each of the five regions, plus the per-sector
// record counts used throughout the inode and directory code.
type Layout struct {
	Params

	InodeBitmapStart   int
	InodeBitmapSectors int

	SectorBitmapStart   int
	SectorBitmapSectors int

	InodeTableStart   int
	InodeTableSectors int
	InodesPerSector   int

	DataRegionStart int

	DirentsPerSector int
}

const superblockSectors = 1

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// New computes a Layout from Params. It does not validate Params: a zero
// SectorSize, or a sector too small to hold one inode record, makes it panic
// with a division by zero, and neither New nor the formatter checks for
// that beforehand.
func New(p Params) Layout {
	l := Layout{Params: p}

	inodeBitmapSize := ceilDiv(p.MaxFiles, 8)
	l.InodeBitmapStart = superblockSectors
	l.InodeBitmapSectors = ceilDiv(inodeBitmapSize, p.SectorSize)

	sectorBitmapSize := ceilDiv(p.TotalSectors, 8)
	l.SectorBitmapStart = l.InodeBitmapStart + l.InodeBitmapSectors
	l.SectorBitmapSectors = ceilDiv(sectorBitmapSize, p.SectorSize)

	l.InodesPerSector = p.SectorSize / InodeSize(p.MaxSectorsPerFile)
	l.InodeTableStart = l.SectorBitmapStart + l.SectorBitmapSectors
	l.InodeTableSectors = ceilDiv(p.MaxFiles, l.InodesPerSector)

	l.DataRegionStart = l.InodeTableStart + l.InodeTableSectors

	l.DirentsPerSector = p.SectorSize / DirentSize

	return l
}

// RootInode is the fixed inode number of the root directory.
const RootInode = 0
