package fsys

import (
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/pathwalk"
)

// FileCreate creates an empty regular file at path. It fails with E_CREATE
// if the parent doesn't resolve, the path is malformed, or something of
// that name already exists.
func (fs *FS) FileCreate(path string) error {
	return fs.createInode(inode.TypeFile, path)
}

// DirCreate creates an empty directory at path. Same failure modes as
// FileCreate.
func (fs *FS) DirCreate(path string) error {
	return fs.createInode(inode.TypeDir, path)
}

func (fs *FS) createInode(t inode.Type, path string) error {
	result, err := fs.Paths.Resolve(path)
	if err != nil {
		return errors.New(errors.E_CREATE)
	}
	if result.ChildInode != pathwalk.Missing {
		return errors.New(errors.E_CREATE)
	}

	if err := fs.addInode(t, result.ParentInode, result.LastName); err != nil {
		return errors.New(errors.E_CREATE)
	}
	return nil
}

// addInode allocates a fresh inode of type t, initializes it, and appends a
// directory entry named name for it under parentInode, grounded on
// LibFS.c's add_inode.
func (fs *FS) addInode(t inode.Type, parentInode int, name string) error {
	childNum, err := fs.Inos.FirstUnused(fs.Layout.MaxFiles)
	if err != nil {
		return err
	}
	if childNum < 0 {
		return errors.New(errors.E_CREATE)
	}

	if err := fs.Inodes.Store(childNum, inode.NewRaw(t, fs.Layout.MaxSectorsPerFile)); err != nil {
		return err
	}

	parentRaw, err := fs.Inodes.Load(parentInode)
	if err != nil {
		return err
	}
	if parentRaw.Type != inode.TypeDir {
		return errors.New(errors.E_NO_SUCH_DIR)
	}

	updatedParent, err := fs.Dirents.Append(parentRaw, name, int32(childNum), func() (int32, error) {
		sec, err := fs.Sectors.FirstUnused(fs.Layout.TotalSectors)
		if err != nil {
			return 0, err
		}
		if sec < 0 {
			return 0, errors.New(errors.E_NO_SPACE)
		}
		return int32(sec), nil
	})
	if err != nil {
		return err
	}

	return fs.Inodes.Store(parentInode, updatedParent)
}

// FileUnlink removes a regular file. DirUnlink removes an empty directory.
// Both delegate to deleteInode, which mirrors LibFS.c's delete_helper.
func (fs *FS) FileUnlink(path string) error {
	return fs.deleteInode(inode.TypeFile, path)
}

func (fs *FS) DirUnlink(path string) error {
	if path == "/" {
		return errors.New(errors.E_ROOT_DIR)
	}
	return fs.deleteInode(inode.TypeDir, path)
}

func (fs *FS) deleteInode(t inode.Type, path string) error {
	result, err := fs.Paths.Resolve(path)
	if err != nil {
		return err
	}

	if result.ChildInode == pathwalk.Missing {
		if t == inode.TypeDir {
			return errors.New(errors.E_NO_SUCH_DIR)
		}
		return errors.New(errors.E_NO_SUCH_FILE)
	}

	if fs.Open.IsOpen(result.ChildInode) {
		return errors.New(errors.E_FILE_IN_USE)
	}

	return fs.removeInode(t, result.ParentInode, result.ChildInode)
}

// removeInode validates type and emptiness, frees the child's data sectors
// and inode slot, and removes its directory entry from the parent. Mirrors
// LibFS.c's remove_inode.
func (fs *FS) removeInode(t inode.Type, parentInode, childInode int) error {
	childRaw, err := fs.Inodes.Load(childInode)
	if err != nil {
		return err
	}
	if childRaw.Type != t {
		return errors.NewWithMessage(errors.E_GENERAL, "wrong inode type for unlink")
	}
	if childRaw.Type == inode.TypeDir && childRaw.Size != 0 {
		return errors.New(errors.E_DIR_NOT_EMPTY)
	}

	var failures []error
	for _, sec := range childRaw.Data {
		if sec != 0 {
			if err := fs.Sectors.Reset(int(sec)); err != nil {
				failures = append(failures, err)
			}
		}
	}
	if agg := errors.Aggregate(errors.E_IO, failures...); agg != nil {
		return agg
	}

	if err := fs.Inos.Reset(childInode); err != nil {
		return err
	}
	if err := fs.Inodes.Store(childInode, inode.Raw{Data: make([]int32, fs.Layout.MaxSectorsPerFile)}); err != nil {
		return err
	}

	parentRaw, err := fs.Inodes.Load(parentInode)
	if err != nil {
		return err
	}
	updatedParent, err := fs.Dirents.Remove(parentRaw, int32(childInode))
	if err != nil {
		return err
	}
	return fs.Inodes.Store(parentInode, updatedParent)
}
