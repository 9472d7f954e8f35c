package pathwalk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proyashpodder/File-System-Development/device"
	"github.com/proyashpodder/File-System-Development/dirent"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/layout"
)

func TestValidateRejectsBadNames(t *testing.T) {
	require.True(t, Validate("a.b-c_d9"))
	require.False(t, Validate(""))
	require.False(t, Validate("has space"))
	require.False(t, Validate("slash/es"))
	require.False(t, Validate("0123456789012345")) // 16 chars, MaxName-1 is 15
}

func newTestResolver(t *testing.T) (Resolver, inode.Manager, dirent.Manager, layout.Layout) {
	l := layout.New(layout.Params{SectorSize: 512, TotalSectors: 64, MaxFiles: 16, MaxSectorsPerFile: 8})
	dev := device.NewMemDevice(l.SectorSize, l.TotalSectors)
	require.NoError(t, dev.Init())
	inodes := inode.New(dev, l)
	dirents := dirent.New(dev, l, inodes)
	require.NoError(t, inodes.Store(layout.RootInode, inode.NewRaw(inode.TypeDir, l.MaxSectorsPerFile)))
	return New(inodes, dirents), inodes, dirents, l
}

func TestResolveRootPath(t *testing.T) {
	r, _, _, _ := newTestResolver(t)

	result, err := r.Resolve("/")
	require.NoError(t, err)
	require.Equal(t, layout.RootInode, result.ParentInode)
	require.Equal(t, layout.RootInode, result.ChildInode)
}

func TestResolveExistingChild(t *testing.T) {
	r, inodes, dirents, l := newTestResolver(t)

	root, err := inodes.Load(layout.RootInode)
	require.NoError(t, err)

	nextSector := int32(20)
	root, err = dirents.Append(root, "docs", 1, func() (int32, error) {
		s := nextSector
		nextSector++
		return s, nil
	})
	require.NoError(t, err)
	require.NoError(t, inodes.Store(layout.RootInode, root))
	require.NoError(t, inodes.Store(1, inode.NewRaw(inode.TypeDir, l.MaxSectorsPerFile)))

	result, err := r.Resolve("/docs")
	require.NoError(t, err)
	require.Equal(t, layout.RootInode, result.ParentInode)
	require.Equal(t, 1, result.ChildInode)
	require.Equal(t, "docs", result.LastName)
}

func TestResolveMissingChildReportsParentAndMissingSentinel(t *testing.T) {
	r, _, _, _ := newTestResolver(t)

	result, err := r.Resolve("/nope.txt")
	require.NoError(t, err)
	require.Equal(t, layout.RootInode, result.ParentInode)
	require.Equal(t, Missing, result.ChildInode)
	require.Equal(t, "nope.txt", result.LastName)
}

func TestResolveRejectsRelativePath(t *testing.T) {
	r, _, _, _ := newTestResolver(t)

	_, err := r.Resolve("relative/path")
	require.Error(t, err)
}

func TestResolveRejectsIllegalComponentName(t *testing.T) {
	r, _, _, _ := newTestResolver(t)

	_, err := r.Resolve("/has space/file")
	require.Error(t, err)
}
