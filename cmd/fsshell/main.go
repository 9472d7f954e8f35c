// Command fsshell is a thin demo harness over package fsys, in the spirit of
// the teacher's cmd/main.go: one urfave/cli/v2 command per file system
// operation, driven from the command line against a single image file.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/proyashpodder/File-System-Development/fsys"
	"github.com/proyashpodder/File-System-Development/internal/presets"
	"github.com/proyashpodder/File-System-Development/layout"
)

var imageFlag = &cli.StringFlag{
	Name:     "image",
	Aliases:  []string{"i"},
	Usage:    "path to the disk image file",
	Required: true,
}

var presetFlag = &cli.StringFlag{
	Name:  "preset",
	Value: "tiny",
	Usage: fmt.Sprintf("named disk geometry to format with if the image doesn't exist yet (%v)", presets.Names()),
}

func openFS(c *cli.Context) (*fsys.FS, error) {
	preset, err := presets.Get(c.String("preset"))
	if err != nil {
		return nil, err
	}
	return fsys.Boot(c.String("image"), preset.Params)
}

func main() {
	app := &cli.App{
		Name:  "fsshell",
		Usage: "inspect and manipulate a tiny UNIX-style file system image",
		Commands: []*cli.Command{
			mkdirCommand,
			touchCommand,
			lsCommand,
			catCommand,
			writeCommand,
			rmCommand,
			rmdirCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fsshell: %s", err.Error())
	}
}

var mkdirCommand = &cli.Command{
	Name:      "mkdir",
	Usage:     "create a directory",
	ArgsUsage: "PATH",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		if err := fs.DirCreate(c.Args().First()); err != nil {
			return err
		}
		return fs.Sync()
	},
}

var touchCommand = &cli.Command{
	Name:      "touch",
	Usage:     "create an empty file",
	ArgsUsage: "PATH",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		if err := fs.FileCreate(c.Args().First()); err != nil {
			return err
		}
		return fs.Sync()
	},
}

var lsCommand = &cli.Command{
	Name:      "ls",
	Usage:     "list a directory's entries",
	ArgsUsage: "PATH",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		size, err := fs.DirSize(c.Args().First())
		if err != nil {
			return err
		}
		buf := make([]byte, size)
		n, err := fs.DirRead(c.Args().First(), buf)
		if err != nil {
			return err
		}
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
			fmt.Println(string(trimmed))
		}
		return nil
	},
}

var catCommand = &cli.Command{
	Name:      "cat",
	Usage:     "print a file's contents",
	ArgsUsage: "PATH",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		fd, err := fs.FileOpen(c.Args().First())
		if err != nil {
			return err
		}
		defer fs.FileClose(fd)

		buf := make([]byte, fs.Layout.SectorSize)
		for {
			n, err := fs.FileRead(fd, buf)
			if err != nil {
				return err
			}
			if n == 0 {
				break
			}
			os.Stdout.Write(buf[:n])
		}
		return nil
	},
}

var writeCommand = &cli.Command{
	Name:      "write",
	Usage:     "write text to a file, starting at offset 0",
	ArgsUsage: "PATH TEXT",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		fd, err := fs.FileOpen(c.Args().First())
		if err != nil {
			return err
		}
		defer fs.FileClose(fd)

		_, err = fs.FileWrite(fd, []byte(c.Args().Get(1)))
		if err != nil {
			return err
		}
		return fs.Sync()
	},
}

var rmCommand = &cli.Command{
	Name:      "rm",
	Usage:     "remove a file",
	ArgsUsage: "PATH",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		if err := fs.FileUnlink(c.Args().First()); err != nil {
			return err
		}
		return fs.Sync()
	},
}

var rmdirCommand = &cli.Command{
	Name:      "rmdir",
	Usage:     "remove an empty directory",
	ArgsUsage: "PATH",
	Flags:     []cli.Flag{imageFlag, presetFlag},
	Action: func(c *cli.Context) error {
		fs, err := openFS(c)
		if err != nil {
			return err
		}
		if err := fs.DirUnlink(c.Args().First()); err != nil {
			return err
		}
		return fs.Sync()
	},
}
