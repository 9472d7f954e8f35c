// Package openfile tracks the in-memory table of open file descriptors,
// grounded on LibFS.c's open_files array / is_file_open / new_file_fd trio.
// Unlike the on-disk bitmaps in package bitmap, free-slot tracking here
// never touches a device, so it uses github.com/boljen/go-bitmap directly
// the way drivers/common/allocatormap.go does for its in-memory allocator.
package openfile

import (
	"github.com/boljen/go-bitmap"

	"github.com/proyashpodder/File-System-Development/errors"
)

// Slot is one entry in the open-file table: the inode it refers to (0 means
// unused; inode 0 is permanently the root directory and can never be
// opened as a file), the cached file size, and the current read/write
// position.
type Slot struct {
	Inode int
	Size  int
	Pos   int
}

// Table is the fixed-size open-file table. Its capacity is set once, at
// construction, from layout.MaxOpenFiles.
type Table struct {
	slots []Slot
	free  bitmap.Bitmap
}

// New creates an empty table with room for capacity descriptors.
func New(capacity int) *Table {
	return &Table{
		slots: make([]Slot, capacity),
		free:  bitmap.New(capacity),
	}
}

// IsOpen reports whether any slot's Inode equals inodeNum. Free slots hold
// Inode 0, so IsOpen(0) is true whenever at least one slot is free.
func (t *Table) IsOpen(inodeNum int) bool {
	for _, s := range t.slots {
		if s.Inode == inodeNum {
			return true
		}
	}
	return false
}

// Open allocates the lowest-numbered free descriptor, points it at inodeNum
// with the given cached size, and returns its descriptor number.
func (t *Table) Open(inodeNum, size int) (int, error) {
	for fd := range t.slots {
		if !t.free.Get(fd) {
			t.free.Set(fd, true)
			t.slots[fd] = Slot{Inode: inodeNum, Size: size, Pos: 0}
			return fd, nil
		}
	}
	return -1, errors.New(errors.E_TOO_MANY_OPEN_FILES)
}

// Get returns the descriptor's current slot. It fails if fd is out of range
// or not currently open.
func (t *Table) Get(fd int) (Slot, error) {
	if fd < 0 || fd >= len(t.slots) || !t.free.Get(fd) {
		return Slot{}, errors.New(errors.E_BAD_FD)
	}
	return t.slots[fd], nil
}

// Update overwrites fd's slot in place. It fails under the same conditions
// as Get.
func (t *Table) Update(fd int, s Slot) error {
	if fd < 0 || fd >= len(t.slots) || !t.free.Get(fd) {
		return errors.New(errors.E_BAD_FD)
	}
	t.slots[fd] = s
	return nil
}

// Close releases fd back to the free pool. It fails under the same
// conditions as Get.
func (t *Table) Close(fd int) error {
	if fd < 0 || fd >= len(t.slots) || !t.free.Get(fd) {
		return errors.New(errors.E_BAD_FD)
	}
	t.free.Set(fd, false)
	t.slots[fd] = Slot{}
	return nil
}
