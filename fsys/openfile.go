package fsys

import (
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/pathwalk"
)

// FileOpen resolves path to a regular file and returns a descriptor
// positioned at offset 0. Mirrors LibFS.c's File_Open.
func (fs *FS) FileOpen(path string) (int, error) {
	result, err := fs.Paths.Resolve(path)
	if err != nil {
		return -1, err
	}
	if result.ChildInode == pathwalk.Missing {
		return -1, errors.New(errors.E_NO_SUCH_FILE)
	}

	raw, err := fs.Inodes.Load(result.ChildInode)
	if err != nil {
		return -1, err
	}
	if raw.Type != inode.TypeFile {
		return -1, errors.NewWithMessage(errors.E_GENERAL, "not a regular file")
	}

	return fs.Open.Open(result.ChildInode, int(raw.Size))
}

// FileClose releases fd.
func (fs *FS) FileClose(fd int) error {
	return fs.Open.Close(fd)
}

// FileSeek sets fd's read/write position to offset, which must be within
// [0, size]. The bad-fd check uses '==', spec.md's REDESIGN FLAG fix for
// LibFS.c's File_Seek, which used '=' and so always treated every fd as
// open.
func (fs *FS) FileSeek(fd, offset int) error {
	slot, err := fs.Open.Get(fd)
	if err != nil {
		return err
	}
	if slot.Inode == 0 {
		return errors.New(errors.E_BAD_FD)
	}
	if offset < 0 || offset > slot.Size {
		return errors.New(errors.E_SEEK_OUT_OF_BOUNDS)
	}

	slot.Pos = offset
	return fs.Open.Update(fd, slot)
}

// FileRead copies up to len(buf) bytes starting at fd's current position
// into buf, advances the position by the number of bytes copied, and
// returns that count. Reading past the end of file yields fewer bytes than
// requested, never an error. Mirrors LibFS.c's File_Read.
func (fs *FS) FileRead(fd int, buf []byte) (int, error) {
	slot, err := fs.Open.Get(fd)
	if err != nil {
		return 0, err
	}

	raw, err := fs.Inodes.Load(slot.Inode)
	if err != nil {
		return 0, err
	}

	sectorSize := fs.Layout.SectorSize
	count := 0
	sectorIdx := slot.Pos / sectorSize

	for count < len(buf) && slot.Pos+count < slot.Size && sectorIdx < len(raw.Data) && raw.Data[sectorIdx] != 0 {
		sectorBuf := make([]byte, sectorSize)
		if err := fs.Device.ReadSector(int(raw.Data[sectorIdx]), sectorBuf); err != nil {
			return count, errors.NewFromError(errors.E_IO, err)
		}

		startByte := 0
		if count == 0 {
			startByte = slot.Pos % sectorSize
		}
		for b := startByte; b < sectorSize && count < len(buf) && slot.Pos+count < slot.Size; b++ {
			buf[count] = sectorBuf[b]
			count++
		}
		sectorIdx++
	}

	slot.Pos += count
	if err := fs.Open.Update(fd, slot); err != nil {
		return count, err
	}
	return count, nil
}

// FileWrite writes len(data) bytes starting at fd's current position,
// advances the position, grows the file's cached size if the write extends
// past the previous end, and returns the number of bytes written.
//
// Unlike LibFS.c's File_Write, which always calls bitmap_first_unused for
// every sector touched (leaking the previously allocated sector on any
// in-place overwrite), this reuses raw.Data[sectorIdx] whenever a sector is
// already allocated there and only allocates a fresh one when extending the
// file past its previous sector count, spec.md's REDESIGN FLAG fix.
func (fs *FS) FileWrite(fd int, data []byte) (int, error) {
	slot, err := fs.Open.Get(fd)
	if err != nil {
		return 0, err
	}

	raw, err := fs.Inodes.Load(slot.Inode)
	if err != nil {
		return 0, err
	}

	sectorSize := fs.Layout.SectorSize
	count := 0
	sectorIdx := slot.Pos / sectorSize

	for count < len(data) {
		if sectorIdx >= len(raw.Data) {
			return count, errors.New(errors.E_FILE_TOO_BIG)
		}

		var sectorBuf []byte
		startByte := 0
		if count == 0 {
			startByte = slot.Pos % sectorSize
		}

		if raw.Data[sectorIdx] != 0 {
			// Overwriting an already-allocated sector: read it first so any
			// bytes this write doesn't touch (before startByte, or after the
			// write ends short of the sector boundary) are preserved.
			sectorBuf = make([]byte, sectorSize)
			if err := fs.Device.ReadSector(int(raw.Data[sectorIdx]), sectorBuf); err != nil {
				return count, errors.NewFromError(errors.E_IO, err)
			}
		} else {
			newSector, err := fs.Sectors.FirstUnused(fs.Layout.TotalSectors)
			if err != nil {
				return count, err
			}
			if newSector < 0 {
				return count, errors.New(errors.E_NO_SPACE)
			}
			raw.Data[sectorIdx] = int32(newSector)
			sectorBuf = make([]byte, sectorSize)
		}

		for b := startByte; b < sectorSize && count < len(data); b++ {
			sectorBuf[b] = data[count]
			count++
		}

		if err := fs.Device.WriteSector(int(raw.Data[sectorIdx]), sectorBuf); err != nil {
			return count, errors.NewFromError(errors.E_IO, err)
		}
		sectorIdx++
	}

	newPos := slot.Pos + count
	if int32(newPos) > raw.Size {
		raw.Size = int32(newPos)
	}
	if err := fs.Inodes.Store(slot.Inode, raw); err != nil {
		return count, err
	}

	slot.Pos = newPos
	if newPos > slot.Size {
		slot.Size = newPos
	}
	if err := fs.Open.Update(fd, slot); err != nil {
		return count, err
	}

	return count, nil
}
