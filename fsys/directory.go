package fsys

import (
	"github.com/proyashpodder/File-System-Development/dirent"
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/layout"
	"github.com/proyashpodder/File-System-Development/pathwalk"
)

// DirSize returns the number of directory-entry slots (live and holes) a
// directory has recorded, in bytes: its inode's Size field times
// layout.DirentSize, exactly as LibFS.c's Dir_Size computes it.
func (fs *FS) DirSize(path string) (int, error) {
	raw, err := fs.loadDir(path)
	if err != nil {
		return 0, err
	}
	return int(raw.Size) * layout.DirentSize, nil
}

// DirRead fills buf with every live entry under path, packed as
// layout.DirentSize-byte records in the same on-disk shape dirent.Encode
// produces, and returns the number of entries written. It fails with
// E_BUFFER_TOO_SMALL if buf isn't large enough to hold DirSize(path) bytes.
//
// LibFS.c's Dir_Read never got past reading the raw sectors into a
// throwaway buffer; it always returns -1. spec.md §6 describes the intended
// contract, so this fills it in for real rather than carrying the stub
// forward.
func (fs *FS) DirRead(path string, buf []byte) (int, error) {
	result, err := fs.Paths.Resolve(path)
	if err != nil {
		return 0, err
	}
	if result.ChildInode == pathwalk.Missing {
		return 0, errors.New(errors.E_NO_SUCH_DIR)
	}

	raw, err := fs.Inodes.Load(result.ChildInode)
	if err != nil {
		return 0, err
	}
	if raw.Type != inode.TypeDir {
		return 0, errors.New(errors.E_NO_SUCH_DIR)
	}

	needed := int(raw.Size) * layout.DirentSize
	if len(buf) < needed {
		return 0, errors.New(errors.E_BUFFER_TOO_SMALL)
	}

	entries, err := fs.Dirents.List(raw)
	if err != nil {
		return 0, err
	}

	offset := 0
	for _, e := range entries {
		copy(buf[offset:offset+layout.DirentSize], dirent.Encode(e.Filename(), e.Inode))
		offset += layout.DirentSize
	}

	return len(entries), nil
}

func (fs *FS) loadDir(path string) (inode.Raw, error) {
	result, err := fs.Paths.Resolve(path)
	if err != nil {
		return inode.Raw{}, err
	}
	if result.ChildInode == pathwalk.Missing {
		return inode.Raw{}, errors.New(errors.E_NO_SUCH_DIR)
	}

	raw, err := fs.Inodes.Load(result.ChildInode)
	if err != nil {
		return inode.Raw{}, err
	}
	if raw.Type != inode.TypeDir {
		return inode.Raw{}, errors.New(errors.E_NO_SUCH_DIR)
	}
	return raw, nil
}
