// This is the errno vocabulary for the tiny file system: one kind per failure
// mode the spec distinguishes, not the full POSIX errno space.

package errors

import (
	"fmt"
)

type Errno int

var errorMessagesByCode map[Errno]string

const (
	EOK Errno = iota
	E_GENERAL
	E_CREATE
	E_NO_SUCH_FILE
	E_NO_SUCH_DIR
	E_DIR_NOT_EMPTY
	E_ROOT_DIR
	E_FILE_IN_USE
	E_TOO_MANY_OPEN_FILES
	E_BAD_FD
	E_SEEK_OUT_OF_BOUNDS
	E_FILE_TOO_BIG
	E_NO_SPACE
	E_BUFFER_TOO_SMALL
	E_IO
)

var ErrGeneral = New(E_GENERAL)
var ErrCreate = New(E_CREATE)
var ErrNoSuchFile = New(E_NO_SUCH_FILE)
var ErrNoSuchDir = New(E_NO_SUCH_DIR)
var ErrDirNotEmpty = New(E_DIR_NOT_EMPTY)
var ErrRootDir = New(E_ROOT_DIR)
var ErrFileInUse = New(E_FILE_IN_USE)
var ErrTooManyOpenFiles = New(E_TOO_MANY_OPEN_FILES)
var ErrBadFd = New(E_BAD_FD)
var ErrSeekOutOfBounds = New(E_SEEK_OUT_OF_BOUNDS)
var ErrFileTooBig = New(E_FILE_TOO_BIG)
var ErrNoSpace = New(E_NO_SPACE)
var ErrBufferTooSmall = New(E_BUFFER_TOO_SMALL)
var ErrIO = New(E_IO)

func init() {
	errorMessagesByCode = make(map[Errno]string, 16)
	errorMessagesByCode[E_GENERAL] = "general file system error"
	errorMessagesByCode[E_CREATE] = "could not create file or directory"
	errorMessagesByCode[E_NO_SUCH_FILE] = "no such file"
	errorMessagesByCode[E_NO_SUCH_DIR] = "no such directory"
	errorMessagesByCode[E_DIR_NOT_EMPTY] = "directory not empty"
	errorMessagesByCode[E_ROOT_DIR] = "operation not permitted on root directory"
	errorMessagesByCode[E_FILE_IN_USE] = "file currently open"
	errorMessagesByCode[E_TOO_MANY_OPEN_FILES] = "too many open files"
	errorMessagesByCode[E_BAD_FD] = "bad file descriptor"
	errorMessagesByCode[E_SEEK_OUT_OF_BOUNDS] = "seek target out of bounds"
	errorMessagesByCode[E_FILE_TOO_BIG] = "file exceeds maximum sectors per file"
	errorMessagesByCode[E_NO_SPACE] = "no space left on device"
	errorMessagesByCode[E_BUFFER_TOO_SMALL] = "caller-supplied buffer too small"
	errorMessagesByCode[E_IO] = "sector read or write failed"
}

func StrError(code Errno) string {
	message, ok := errorMessagesByCode[code]
	if ok {
		return message
	}
	return fmt.Sprintf("errno %d not recognized", int(code))
}
