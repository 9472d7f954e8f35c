// Package fsys wires the layout, bitmap, inode, dirent, pathwalk, and
// openfile packages together into the public operations spec.md names:
// Boot, Sync, FileCreate/Open/Read/Write/Seek/Close/Unlink, DirCreate/Size/
// Read/Unlink. It plays the role LibFS.c's FS_Boot/FS_Sync and the
// File_*/Dir_* functions play in the reference implementation.
package fsys

import (
	"encoding/binary"
	"log"
	"os"

	"github.com/proyashpodder/File-System-Development/bitmap"
	"github.com/proyashpodder/File-System-Development/device"
	"github.com/proyashpodder/File-System-Development/dirent"
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/layout"
	"github.com/proyashpodder/File-System-Development/openfile"
	"github.com/proyashpodder/File-System-Development/pathwalk"
)

// Logger is the package-level trace logger for dprintf-style noise; swap it
// with log.New(io.Discard, "", 0) to mute.
var Logger = log.New(os.Stderr, "fsys: ", log.Ltime)

// FS bundles a device and every derived manager needed to service the
// public operations. The zero value is not usable; build one with Boot.
type FS struct {
	Device  device.Device
	Layout  layout.Layout
	Inodes  inode.Manager
	Dirents dirent.Manager
	Sectors bitmap.Allocator
	Inos    bitmap.Allocator
	Paths   pathwalk.Resolver
	Open    *openfile.Table

	path string
}

// Boot mirrors FS_Boot: it tries to load an existing image from path, and
// formats a fresh one if the file doesn't exist. Any other Load failure, a
// size mismatch, or a bad magic number is reported as E_GENERAL.
func Boot(path string, p layout.Params) (*FS, error) {
	l := layout.New(p)
	dev := device.NewSimDevice(p.SectorSize, p.TotalSectors)
	if err := dev.Init(); err != nil {
		return nil, errors.NewFromError(errors.E_GENERAL, err)
	}

	fs := newFS(dev, l, path)

	err := dev.Load(path)
	if os.IsNotExist(err) {
		Logger.Printf("no existing image at %q, formatting a new one", path)
		if err := fs.format(); err != nil {
			return nil, err
		}
		if err := fs.Sync(); err != nil {
			return nil, err
		}
		return fs, nil
	}
	if err != nil {
		return nil, errors.NewWithMessage(errors.E_GENERAL, "load failed: "+err.Error())
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewFromError(errors.E_GENERAL, err)
	}
	if info.Size() != int64(p.SectorSize)*int64(p.TotalSectors) {
		return nil, errors.NewWithMessage(errors.E_GENERAL, "image size mismatch")
	}
	if err := fs.checkMagic(); err != nil {
		return nil, err
	}

	Logger.Printf("loaded existing image at %q", path)
	return fs, nil
}

func newFS(dev device.Device, l layout.Layout, path string) *FS {
	inodes := inode.New(dev, l)
	dirents := dirent.New(dev, l, inodes)
	return &FS{
		Device:  dev,
		Layout:  l,
		Inodes:  inodes,
		Dirents: dirents,
		Inos:    bitmap.New(dev, l.InodeBitmapStart, l.InodeBitmapSectors),
		Sectors: bitmap.New(dev, l.SectorBitmapStart, l.SectorBitmapSectors),
		Paths:   pathwalk.New(inodes, dirents),
		Open:    openfile.New(layout.MaxOpenFiles),
		path:    path,
	}
}

func (fs *FS) checkMagic() error {
	buf := make([]byte, fs.Layout.SectorSize)
	if err := fs.Device.ReadSector(0, buf); err != nil {
		return errors.NewFromError(errors.E_IO, err)
	}
	magic := binary.LittleEndian.Uint32(buf[:4])
	if magic != layout.Magic {
		return errors.NewWithMessage(errors.E_GENERAL, "bad superblock magic")
	}
	return nil
}

// format stamps a fresh superblock, bitmaps, and inode table, reserving
// inode 0 for the root directory and the first DataRegionStart sectors
// (everything before the data region) as permanently allocated.
func (fs *FS) format() error {
	buf := make([]byte, fs.Layout.SectorSize)
	binary.LittleEndian.PutUint32(buf[:4], layout.Magic)
	if err := fs.Device.WriteSector(0, buf); err != nil {
		return errors.NewFromError(errors.E_IO, err)
	}

	if err := fs.Inos.Init(1); err != nil {
		return err
	}
	if err := fs.Sectors.Init(fs.Layout.DataRegionStart); err != nil {
		return err
	}

	rootDir := inode.NewRaw(inode.TypeDir, fs.Layout.MaxSectorsPerFile)
	if err := fs.Inodes.Store(layout.RootInode, rootDir); err != nil {
		return err
	}
	for n := 1; n < fs.Layout.MaxFiles; n++ {
		if err := fs.Inodes.Store(n, inode.Raw{Data: make([]int32, fs.Layout.MaxSectorsPerFile)}); err != nil {
			return err
		}
	}

	Logger.Printf("formatted new image: %d inodes, %d sectors, root at inode %d",
		fs.Layout.MaxFiles, fs.Layout.TotalSectors, layout.RootInode)
	return nil
}

// Sync flushes the device's in-memory image out to the backing path.
func (fs *FS) Sync() error {
	if err := fs.Device.Save(fs.path); err != nil {
		return errors.NewFromError(errors.E_GENERAL, err)
	}
	return nil
}
