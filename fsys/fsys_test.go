package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/layout"
)

func testParams() layout.Params {
	return layout.Params{SectorSize: 512, TotalSectors: 64, MaxFiles: 16, MaxSectorsPerFile: 8}
}

func bootFresh(t *testing.T) (*FS, string) {
	path := filepath.Join(t.TempDir(), "image.bin")
	fs, err := Boot(path, testParams())
	require.NoError(t, err)
	return fs, path
}

// S1: format + root.
func TestBootFormatsFreshImageWithEmptyRoot(t *testing.T) {
	fs, _ := bootFresh(t)

	size, err := fs.DirSize("/")
	require.NoError(t, err)
	require.Equal(t, 0, size)
}

// S2: create/list.
func TestCreateThenListReturnsEntriesInInsertionOrder(t *testing.T) {
	fs, _ := bootFresh(t)

	require.NoError(t, fs.FileCreate("/a"))
	require.NoError(t, fs.FileCreate("/b"))

	size, err := fs.DirSize("/")
	require.NoError(t, err)
	require.Equal(t, 2*layout.DirentSize, size)

	buf := make([]byte, size)
	n, err := fs.DirRead("/", buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	names := []string{}
	inodes := []int32{}
	for i := 0; i < n; i++ {
		offset := i * layout.DirentSize
		name := buf[offset : offset+layout.MaxName]
		trimmed := name[:0]
		for _, b := range name {
			if b == 0 {
				break
			}
			trimmed = append(trimmed, b)
		}
		names = append(names, string(trimmed))

		var inodeNum int32
		for j := 0; j < 4; j++ {
			inodeNum |= int32(buf[offset+layout.MaxName+j]) << (8 * j)
		}
		inodes = append(inodes, inodeNum)
	}

	require.Equal(t, []string{"a", "b"}, names)
	require.NotEqual(t, inodes[0], inodes[1])
	require.NotZero(t, inodes[0])
	require.NotZero(t, inodes[1])
}

// S3: write/read.
func TestWriteThenSeekThenReadRoundTrips(t *testing.T) {
	fs, _ := bootFresh(t)
	require.NoError(t, fs.FileCreate("/x"))

	fd, err := fs.FileOpen("/x")
	require.NoError(t, err)

	n, err := fs.FileWrite(fd, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.NoError(t, fs.FileSeek(fd, 0))

	out := make([]byte, 5)
	n, err = fs.FileRead(fd, out)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(out))

	slot, err := fs.Open.Get(fd)
	require.NoError(t, err)
	require.Equal(t, 5, slot.Size)
}

// S4: seek bounds.
func TestSeekPastEndOfFileFailsWithOutOfBounds(t *testing.T) {
	fs, _ := bootFresh(t)
	require.NoError(t, fs.FileCreate("/x"))
	fd, err := fs.FileOpen("/x")
	require.NoError(t, err)

	_, err = fs.FileWrite(fd, []byte("hello"))
	require.NoError(t, err)

	err = fs.FileSeek(fd, 6)
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_SEEK_OUT_OF_BOUNDS, driverErr.Errno())
}

// S5: persist across reboot.
func TestSyncThenRebootPreservesFileContents(t *testing.T) {
	fs, path := bootFresh(t)
	require.NoError(t, fs.FileCreate("/x"))
	fd, err := fs.FileOpen("/x")
	require.NoError(t, err)
	_, err = fs.FileWrite(fd, []byte("hello"))
	require.NoError(t, err)
	require.NoError(t, fs.FileClose(fd))
	require.NoError(t, fs.Sync())

	reopened, err := Boot(path, testParams())
	require.NoError(t, err)

	fd2, err := reopened.FileOpen("/x")
	require.NoError(t, err)

	out := make([]byte, 5)
	n, err := reopened.FileRead(fd2, out)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(out))
}

// S6: unlink while busy.
func TestUnlinkFailsWhileOpenThenSucceedsAfterClose(t *testing.T) {
	fs, _ := bootFresh(t)
	require.NoError(t, fs.FileCreate("/x"))
	fd, err := fs.FileOpen("/x")
	require.NoError(t, err)
	_, err = fs.FileWrite(fd, []byte("hello"))
	require.NoError(t, err)

	err = fs.FileUnlink("/x")
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_FILE_IN_USE, driverErr.Errno())

	require.NoError(t, fs.FileClose(fd))
	require.NoError(t, fs.FileUnlink("/x"))

	_, err = fs.FileOpen("/x")
	require.Error(t, err)
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_NO_SUCH_FILE, driverErr.Errno())
}

// S7: directory not empty.
func TestDirUnlinkFailsWhileNonEmptyThenSucceedsOnceEmptied(t *testing.T) {
	fs, _ := bootFresh(t)
	require.NoError(t, fs.DirCreate("/d"))
	require.NoError(t, fs.FileCreate("/d/f"))

	err := fs.DirUnlink("/d")
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_DIR_NOT_EMPTY, driverErr.Errno())

	require.NoError(t, fs.FileUnlink("/d/f"))
	require.NoError(t, fs.DirUnlink("/d"))
}

func TestDirUnlinkOfRootIsRejected(t *testing.T) {
	fs, _ := bootFresh(t)

	err := fs.DirUnlink("/")
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_ROOT_DIR, driverErr.Errno())
}

func TestOverwriteWithinFileReusesAllocatedSectorInsteadOfLeakingIt(t *testing.T) {
	fs, _ := bootFresh(t)
	require.NoError(t, fs.FileCreate("/x"))
	fd, err := fs.FileOpen("/x")
	require.NoError(t, err)

	_, err = fs.FileWrite(fd, []byte("hello world"))
	require.NoError(t, err)

	raw, err := fs.Inodes.Load(1)
	require.NoError(t, err)
	firstSector := raw.Data[0]

	require.NoError(t, fs.FileSeek(fd, 0))
	_, err = fs.FileWrite(fd, []byte("HELLO"))
	require.NoError(t, err)

	raw, err = fs.Inodes.Load(1)
	require.NoError(t, err)
	require.Equal(t, firstSector, raw.Data[0])

	require.NoError(t, fs.FileSeek(fd, 0))
	out := make([]byte, 11)
	n, err := fs.FileRead(fd, out)
	require.NoError(t, err)
	require.Equal(t, 11, n)
	require.Equal(t, "HELLO world", string(out))
}

func TestCreateDuplicateNameFails(t *testing.T) {
	fs, _ := bootFresh(t)
	require.NoError(t, fs.FileCreate("/dup"))

	err := fs.FileCreate("/dup")
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_CREATE, driverErr.Errno())
}

func TestBootRejectsCorruptSuperblockMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	params := testParams()
	size := int64(params.SectorSize) * int64(params.TotalSectors)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))

	_, err := Boot(path, params)
	require.Error(t, err)
}

// A backing file shorter than SectorSize*TotalSectors must be rejected
// outright rather than silently zero-padded up to geometry and booted.
func TestBootRejectsTruncatedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.bin")
	params := testParams()

	full, err := Boot(path, params)
	require.NoError(t, err)
	require.NoError(t, full.Sync())

	require.NoError(t, os.Truncate(path, int64(params.SectorSize)*int64(params.TotalSectors)-1))

	_, err = Boot(path, params)
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_GENERAL, driverErr.Errno())
}

// A backing file longer than SectorSize*TotalSectors is just as invalid as
// a short one; both are geometry mismatches Boot must reject.
func TestBootRejectsOversizedImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oversized.bin")
	params := testParams()

	full, err := Boot(path, params)
	require.NoError(t, err)
	require.NoError(t, full.Sync())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, append(contents, 0), 0o644))

	_, err = Boot(path, params)
	require.Error(t, err)
	var driverErr errors.DriverError
	require.ErrorAs(t, err, &driverErr)
	require.Equal(t, errors.E_GENERAL, driverErr.Errno())
}
