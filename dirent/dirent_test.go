package dirent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proyashpodder/File-System-Development/device"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/layout"
)

func newTestManager(t *testing.T) (Manager, layout.Layout) {
	l := layout.New(layout.Params{SectorSize: 512, TotalSectors: 64, MaxFiles: 16, MaxSectorsPerFile: 8})
	dev := device.NewMemDevice(l.SectorSize, l.TotalSectors)
	require.NoError(t, dev.Init())
	inodes := inode.New(dev, l)
	return New(dev, l, inodes), l
}

func TestAppendThenFindRoundTrips(t *testing.T) {
	m, l := newTestManager(t)

	parent := inode.NewRaw(inode.TypeDir, l.MaxSectorsPerFile)
	nextSector := int32(10)
	alloc := func() (int32, error) {
		s := nextSector
		nextSector++
		return s, nil
	}

	parent, err := m.Append(parent, "alpha.txt", 3, alloc)
	require.NoError(t, err)
	parent, err = m.Append(parent, "beta.txt", 4, alloc)
	require.NoError(t, err)

	require.Equal(t, int32(2), parent.Size)

	found, err := m.Find(parent, "alpha.txt")
	require.NoError(t, err)
	require.Equal(t, 3, found)

	found, err = m.Find(parent, "beta.txt")
	require.NoError(t, err)
	require.Equal(t, 4, found)

	found, err = m.Find(parent, "missing")
	require.NoError(t, err)
	require.Equal(t, -1, found)
}

// Removing a non-terminal entry zeroes its slot in place and decrements
// Size, but Size is also what bounds how many slots later lookups scan, so
// an entry written after the removed one becomes unreachable even though
// its bytes are still sitting on disk. This is the accepted behavior from
// spec.md's Open Question on remove_child's non-compacting removal, not a
// bug this repo fixes.
func TestRemoveOfNonTerminalEntryStrandsLaterEntries(t *testing.T) {
	m, l := newTestManager(t)

	parent := inode.NewRaw(inode.TypeDir, l.MaxSectorsPerFile)
	nextSector := int32(10)
	alloc := func() (int32, error) {
		s := nextSector
		nextSector++
		return s, nil
	}

	parent, err := m.Append(parent, "a", 1, alloc)
	require.NoError(t, err)
	parent, err = m.Append(parent, "b", 2, alloc)
	require.NoError(t, err)
	parent, err = m.Append(parent, "c", 3, alloc)
	require.NoError(t, err)

	parent, err = m.Remove(parent, 2)
	require.NoError(t, err)
	require.Equal(t, int32(2), parent.Size)

	entries, err := m.List(parent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a", entries[0].Filename())

	found, err := m.Find(parent, "b")
	require.NoError(t, err)
	require.Equal(t, -1, found)

	found, err = m.Find(parent, "c")
	require.NoError(t, err)
	require.Equal(t, -1, found)
}

// Removing the terminal entry behaves the way callers would naively expect,
// since nothing lies beyond it to be stranded.
func TestRemoveOfTerminalEntryLeavesPriorEntriesIntact(t *testing.T) {
	m, l := newTestManager(t)

	parent := inode.NewRaw(inode.TypeDir, l.MaxSectorsPerFile)
	nextSector := int32(10)
	alloc := func() (int32, error) {
		s := nextSector
		nextSector++
		return s, nil
	}

	parent, err := m.Append(parent, "a", 1, alloc)
	require.NoError(t, err)
	parent, err = m.Append(parent, "b", 2, alloc)
	require.NoError(t, err)

	parent, err = m.Remove(parent, 2)
	require.NoError(t, err)
	require.Equal(t, int32(1), parent.Size)

	entries, err := m.List(parent)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a", entries[0].Filename())
}
