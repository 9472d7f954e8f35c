// Package dirent packs and searches directory-entry records. A directory's
// contents are just a flat, ungrouped sequence of these records spread
// across the sectors named in its inode's Data array, DirentsPerSector to a
// sector, the layout LibFS.c's find_child_inode/add_inode/remove_inode
// walk by hand.
package dirent

import (
	"bytes"
	"encoding/binary"

	"github.com/noxer/bytewriter"

	"github.com/proyashpodder/File-System-Development/device"
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/layout"
)

// Raw is the on-disk shape of one directory entry: a fixed-width name field
// and the child's inode number. Name is zero-padded; an all-zero Name with
// Inode 0 marks a hole left by a removed entry.
type Raw struct {
	Name  [layout.MaxName]byte
	Inode int32
}

// Encode packs a name and inode number into a MaxName+4 byte record.
func Encode(name string, inumber int32) []byte {
	buf := make([]byte, layout.DirentSize)
	w := bytewriter.New(buf)
	var nameField [layout.MaxName]byte
	copy(nameField[:], name)
	binary.Write(w, binary.LittleEndian, nameField)
	binary.Write(w, binary.LittleEndian, inumber)
	return buf
}

// Decode unpacks a record previously produced by Encode.
func Decode(buf []byte) Raw {
	r := bytes.NewReader(buf)
	var raw Raw
	binary.Read(r, binary.LittleEndian, &raw.Name)
	binary.Read(r, binary.LittleEndian, &raw.Inode)
	return raw
}

// Filename returns the entry's name with trailing zero padding stripped.
func (raw Raw) Filename() string {
	n := bytes.IndexByte(raw.Name[:], 0)
	if n < 0 {
		n = len(raw.Name)
	}
	return string(raw.Name[:n])
}

// Manager reads and writes directory entries against a parent directory's
// inode record.
type Manager struct {
	Device device.Device
	Layout layout.Layout
	Inodes inode.Manager
}

func New(dev device.Device, l layout.Layout, inodes inode.Manager) Manager {
	return Manager{Device: dev, Layout: l, Inodes: inodes}
}

// Find searches parentRaw's directory entries for name, returning the
// child's inode number, or -1 if not found. parentRaw must be a directory
// inode (callers are expected to have checked Type already).
func (m Manager) Find(parentRaw inode.Raw, name string) (int, error) {
	dps := m.Layout.DirentsPerSector
	remaining := int(parentRaw.Size)

	for group := 0; remaining > 0; group++ {
		sectorBuf := make([]byte, m.Layout.SectorSize)
		if err := m.Device.ReadSector(int(parentRaw.Data[group]), sectorBuf); err != nil {
			return -1, errors.NewFromError(errors.E_IO, err)
		}

		count := dps
		if remaining < count {
			count = remaining
		}
		for i := 0; i < count; i++ {
			raw := Decode(sectorBuf[i*layout.DirentSize : (i+1)*layout.DirentSize])
			if raw.Filename() == name {
				return int(raw.Inode), nil
			}
		}
		remaining -= dps
	}

	return -1, nil
}

// List returns every live (non-hole) entry under parentRaw.
func (m Manager) List(parentRaw inode.Raw) ([]Raw, error) {
	dps := m.Layout.DirentsPerSector
	remaining := int(parentRaw.Size)

	var out []Raw
	for group := 0; remaining > 0; group++ {
		sectorBuf := make([]byte, m.Layout.SectorSize)
		if err := m.Device.ReadSector(int(parentRaw.Data[group]), sectorBuf); err != nil {
			return nil, errors.NewFromError(errors.E_IO, err)
		}

		count := dps
		if remaining < count {
			count = remaining
		}
		for i := 0; i < count; i++ {
			raw := Decode(sectorBuf[i*layout.DirentSize : (i+1)*layout.DirentSize])
			if raw.Inode != 0 || raw.Filename() != "" {
				out = append(out, raw)
			}
		}
		remaining -= dps
	}

	return out, nil
}

// Append adds a new entry (name, childInode) to parentRaw's directory,
// allocating a fresh data sector through allocSector when the last group is
// full and no sector is recorded yet for the next group. It returns the updated parent inode record, which the caller is
// responsible for storing back via the inode Manager (Append only touches
// the dirent sector itself and the parent's Data slot in memory).
func (m Manager) Append(parentRaw inode.Raw, name string, childInode int32, allocSector func() (int32, error)) (inode.Raw, error) {
	dps := m.Layout.DirentsPerSector
	group := int(parentRaw.Size) / dps

	sectorBuf := make([]byte, m.Layout.SectorSize)
	if int(parentRaw.Size)%dps == 0 && parentRaw.Data[group] == 0 {
		newSector, err := allocSector()
		if err != nil {
			return parentRaw, err
		}
		parentRaw.Data[group] = newSector
	} else {
		if err := m.Device.ReadSector(int(parentRaw.Data[group]), sectorBuf); err != nil {
			return parentRaw, errors.NewFromError(errors.E_IO, err)
		}
	}

	offset := (int(parentRaw.Size) % dps) * layout.DirentSize
	copy(sectorBuf[offset:offset+layout.DirentSize], Encode(name, childInode))

	if err := m.Device.WriteSector(int(parentRaw.Data[group]), sectorBuf); err != nil {
		return parentRaw, errors.NewFromError(errors.E_IO, err)
	}

	parentRaw.Size++
	return parentRaw, nil
}

// Remove zeroes the entry matching childInode under parentRaw, leaving a
// hole rather than compacting later entries down, the same behavior
// LibFS.c's remove_inode exhibits for any removed entry that isn't the last
// one written. parentRaw.Size is decremented whenever it's still positive,
// matching the reference's bookkeeping even though a hole elsewhere means
// Size no longer equals the exact live-entry count.
func (m Manager) Remove(parentRaw inode.Raw, childInode int32) (inode.Raw, error) {
	dps := m.Layout.DirentsPerSector
	remaining := int(parentRaw.Size)

	for group := 0; remaining > 0; group++ {
		sectorBuf := make([]byte, m.Layout.SectorSize)
		if err := m.Device.ReadSector(int(parentRaw.Data[group]), sectorBuf); err != nil {
			return parentRaw, errors.NewFromError(errors.E_IO, err)
		}

		count := dps
		if remaining < count {
			count = remaining
		}
		found := false
		for i := 0; i < count; i++ {
			offset := i * layout.DirentSize
			raw := Decode(sectorBuf[offset : offset+layout.DirentSize])
			if raw.Inode == childInode {
				for b := 0; b < layout.DirentSize; b++ {
					sectorBuf[offset+b] = 0
				}
				found = true
				break
			}
		}
		if found {
			if err := m.Device.WriteSector(int(parentRaw.Data[group]), sectorBuf); err != nil {
				return parentRaw, errors.NewFromError(errors.E_IO, err)
			}
			if parentRaw.Size > 0 {
				parentRaw.Size--
			}
			return parentRaw, nil
		}

		remaining -= dps
	}

	return parentRaw, errors.New(errors.E_NO_SUCH_FILE)
}
