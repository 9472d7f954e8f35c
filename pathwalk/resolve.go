// Package pathwalk resolves absolute paths against the directory tree,
// grounded on LibFS.c's follow_path and illegal_filename.
package pathwalk

import (
	"strings"

	"github.com/proyashpodder/File-System-Development/dirent"
	"github.com/proyashpodder/File-System-Development/errors"
	"github.com/proyashpodder/File-System-Development/inode"
	"github.com/proyashpodder/File-System-Development/layout"
)

// Missing marks a resolved child that doesn't exist in its parent directory.
const Missing = -1

// Validate reports whether name is a legal path component: 1-(MaxName-1)
// bytes drawn from letters, digits, '.', '-', '_'.
func Validate(name string) bool {
	if len(name) == 0 || len(name) > layout.MaxName-1 {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// Resolver walks absolute paths component by component using an inode
// Manager and dirent Manager.
type Resolver struct {
	Inodes  inode.Manager
	Dirents dirent.Manager
}

func New(inodes inode.Manager, dirents dirent.Manager) Resolver {
	return Resolver{Inodes: inodes, Dirents: dirents}
}

// Result is the outcome of resolving a path: the inode number of the
// deepest existing parent directory, the inode number of the final
// component (or Missing if it doesn't exist), and the final component's
// name (needed by callers that are about to create or look up that name).
type Result struct {
	ParentInode int
	ChildInode  int
	LastName    string
}

// Resolve walks path, which must start with '/', one component at a time
// from the root inode. It fails on a malformed path (not absolute, or a
// component with an illegal name), when a component other than the last is
// missing or is not a directory, and when reading an inode or directory
// sector fails; a missing final component is reported via
// Result.ChildInode == Missing, not an error.
func (r Resolver) Resolve(path string) (Result, error) {
	if len(path) == 0 || path[0] != '/' {
		return Result{}, errors.NewWithMessage(errors.E_GENERAL, "path must be absolute")
	}

	parentInode := Missing
	childInode := layout.RootInode
	lastName := ""

	trimmed := strings.Trim(path, "/")
	var components []string
	if trimmed != "" {
		components = strings.Split(trimmed, "/")
	}

	for _, name := range components {
		if !Validate(name) {
			return Result{}, errors.NewWithMessage(errors.E_GENERAL, "illegal file name: "+name)
		}
		if childInode < 0 {
			return Result{}, errors.New(errors.E_NO_SUCH_DIR)
		}

		parentInode = childInode
		lastName = name

		parentRaw, err := r.Inodes.Load(parentInode)
		if err != nil {
			return Result{}, err
		}
		if parentRaw.Type != inode.TypeDir {
			return Result{}, errors.New(errors.E_NO_SUCH_DIR)
		}

		found, err := r.Dirents.Find(parentRaw, name)
		if err != nil {
			return Result{}, err
		}
		childInode = found
	}

	if parentInode == Missing && childInode == layout.RootInode {
		parentInode = layout.RootInode
	}

	return Result{ParentInode: parentInode, ChildInode: childInode, LastName: lastName}, nil
}
