// Package inode encodes and decodes fixed-size inode records and provides a
// Manager that loads and stores them by inode number, grounded on LibFS.c's
// inode struct and its sector-arithmetic for locating a given inode, and
// styled after drivers/unixv1/inode.go's RawInode/InodeManager split.
package inode

import (
	"bytes"
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/proyashpodder/File-System-Development/device"
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/layout"
)

// Type tags the two kinds of inode spec.md distinguishes.
type Type int32

const (
	TypeFile Type = 0
	TypeDir  Type = 1
)

// Raw is the on-disk shape of one inode record: a size, a type tag, and a
// fixed array of data sector indices. A zero value (Size 0, Type 0, every
// Data slot 0) is indistinguishable from an unallocated inode on disk, which
// is why allocation state lives in the inode bitmap rather than the record.
type Raw struct {
	Size int32
	Type Type
	Data []int32 // length MaxSectorsPerFile
}

// Encode packs raw into exactly layout.InodeSize(maxSectorsPerFile) bytes.
func Encode(raw Raw, maxSectorsPerFile int) []byte {
	buf := make([]byte, layout.InodeSize(maxSectorsPerFile))
	w := bytewriter.New(buf)
	binary.Write(w, binary.LittleEndian, raw.Size)
	binary.Write(w, binary.LittleEndian, raw.Type)
	data := make([]int32, maxSectorsPerFile)
	copy(data, raw.Data)
	binary.Write(w, binary.LittleEndian, data)
	return buf
}

// Decode unpacks a raw inode record previously produced by Encode.
func Decode(buf []byte, maxSectorsPerFile int) Raw {
	r := bytes.NewReader(buf)
	var raw Raw
	binary.Read(r, binary.LittleEndian, &raw.Size)
	binary.Read(r, binary.LittleEndian, &raw.Type)
	raw.Data = make([]int32, maxSectorsPerFile)
	binary.Read(r, binary.LittleEndian, &raw.Data)
	return raw
}

// Manager loads and stores inode records by number against a device's inode
// table region.
type Manager struct {
	Device device.Device
	Layout layout.Layout
}

// New binds a Manager to a device and layout.
func New(dev device.Device, l layout.Layout) Manager {
	return Manager{Device: dev, Layout: l}
}

func (m Manager) locate(n int) (sector int, offset int) {
	recordSize := layout.InodeSize(m.Layout.MaxSectorsPerFile)
	sector = m.Layout.InodeTableStart + n/m.Layout.InodesPerSector
	offset = (n % m.Layout.InodesPerSector) * recordSize
	return sector, offset
}

// Load reads inode n's record off disk.
func (m Manager) Load(n int) (Raw, error) {
	sector, offset := m.locate(n)
	recordSize := layout.InodeSize(m.Layout.MaxSectorsPerFile)

	sectorBuf := make([]byte, m.Layout.SectorSize)
	if err := m.Device.ReadSector(sector, sectorBuf); err != nil {
		return Raw{}, errors.NewFromError(errors.E_IO, err)
	}

	return Decode(sectorBuf[offset:offset+recordSize], m.Layout.MaxSectorsPerFile), nil
}

// Store writes raw as inode n's record, read-modify-writing the owning
// sector since multiple inode records share a sector.
func (m Manager) Store(n int, raw Raw) error {
	sector, offset := m.locate(n)
	recordSize := layout.InodeSize(m.Layout.MaxSectorsPerFile)

	sectorBuf := make([]byte, m.Layout.SectorSize)
	if err := m.Device.ReadSector(sector, sectorBuf); err != nil {
		return errors.NewFromError(errors.E_IO, err)
	}

	copy(sectorBuf[offset:offset+recordSize], Encode(raw, m.Layout.MaxSectorsPerFile))

	if err := m.Device.WriteSector(sector, sectorBuf); err != nil {
		return errors.NewFromError(errors.E_IO, err)
	}
	return nil
}

// NewRaw builds an empty record of the given type, every data slot unset (0
// means "no sector allocated here", valid since sector 0 always belongs to
// the superblock and is never handed out by the sector bitmap allocator).
func NewRaw(t Type, maxSectorsPerFile int) Raw {
	return Raw{Size: 0, Type: t, Data: make([]int32, maxSectorsPerFile)}
}
