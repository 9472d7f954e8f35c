// Package presets provides named disk geometries, mirroring
// disks/disks.go's embedded-CSV-of-named-geometries pattern but decoded with
// github.com/gocarina/gocsv against the layout package's Params shape
// instead of a floppy-format geometry.
package presets

import (
	_ "embed"
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/proyashpodder/File-System-Development/layout"
)

//go:embed presets.csv
var rawCSV string

type row struct {
	Slug              string `csv:"slug"`
	Name              string `csv:"name"`
	SectorSize        int    `csv:"sector_size"`
	TotalSectors      int    `csv:"total_sectors"`
	MaxFiles          int    `csv:"max_files"`
	MaxSectorsPerFile int    `csv:"max_sectors_per_file"`
}

// Preset names a disk geometry.
type Preset struct {
	Slug   string
	Name   string
	Params layout.Params
}

var bySlug map[string]Preset

func init() {
	var rows []row
	if err := gocsv.UnmarshalString(rawCSV, &rows); err != nil {
		panic(fmt.Errorf("presets: failed to decode embedded CSV: %w", err))
	}

	bySlug = make(map[string]Preset, len(rows))
	for _, r := range rows {
		bySlug[r.Slug] = Preset{
			Slug: r.Slug,
			Name: r.Name,
			Params: layout.Params{
				SectorSize:        r.SectorSize,
				TotalSectors:      r.TotalSectors,
				MaxFiles:          r.MaxFiles,
				MaxSectorsPerFile: r.MaxSectorsPerFile,
			},
		}
	}
}

// Get returns the named preset. It fails if slug isn't defined.
func Get(slug string) (Preset, error) {
	p, ok := bySlug[slug]
	if !ok {
		return Preset{}, fmt.Errorf("presets: no such preset %q", slug)
	}
	return p, nil
}

// Names returns every defined preset's slug.
func Names() []string {
	names := make([]string, 0, len(bySlug))
	for slug := range bySlug {
		names = append(names, slug)
	}
	return names
}
