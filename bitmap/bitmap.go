// Package bitmap implements the on-disk bitmap allocator: a contiguous run
// of sectors holding one MSB-first bit per allocatable unit (inode or data
// sector). It mirrors LibFS.c's bitmap_init/bitmap_first_unused/bitmap_reset
// trio and drivers/common/allocatormap.go's Allocator naming, but, per
// spec.md §4.1, never keeps state across calls: FirstUnused and Reset are
// each a read-modify-write of exactly one sector, and Init overwrites the
// whole region.
package bitmap

import (
	"github.com/proyashpodder/File-System-Development/device"
	"github.com/proyashpodder/File-System-Development/errors"
)

// Allocator addresses one bitmap region: StartSector is the first sector of
// the region, SectorCount is how many sectors it spans.
type Allocator struct {
	Device      device.Device
	StartSector int
	SectorCount int
}

// New returns an Allocator bound to a region of a device.
func New(dev device.Device, startSector, sectorCount int) Allocator {
	return Allocator{Device: dev, StartSector: startSector, SectorCount: sectorCount}
}

// Init writes SectorCount consecutive sectors such that the first k bits
// (MSB-first within each byte) are 1 and the rest are 0. It handles k larger
// or smaller than a single sector's bit capacity.
func (a Allocator) Init(k int) error {
	sectorSize := a.Device.SectorSize()
	bitsPerSector := sectorSize * 8
	remaining := k

	var failures []error
	for s := 0; s < a.SectorCount; s++ {
		buf := make([]byte, sectorSize)

		switch {
		case remaining >= bitsPerSector:
			for i := range buf {
				buf[i] = 0xFF
			}
			remaining -= bitsPerSector
		case remaining > 0:
			fullBytes := remaining / 8
			for i := 0; i < fullBytes; i++ {
				buf[i] = 0xFF
			}
			leftoverBits := remaining % 8
			if leftoverBits > 0 {
				var mask byte
				for b := 0; b < leftoverBits; b++ {
					mask |= 1 << (7 - b)
				}
				buf[fullBytes] = mask
			}
			remaining = 0
		default:
			// buf is already all zero.
		}

		if err := a.Device.WriteSector(a.StartSector+s, buf); err != nil {
			failures = append(failures, err)
		}
	}

	if agg := errors.Aggregate(errors.E_IO, failures...); agg != nil {
		return agg
	}
	return nil
}

// FirstUnused scans the region in sector order, then byte order within each
// sector (skipping bytes that are already 0xFF), then bit order MSB-first,
// for the first 0 bit within the first totalBits bits. It sets that bit,
// writes the owning sector back, and returns the bit's global index. It
// returns -1 if no free bit exists within totalBits.
func (a Allocator) FirstUnused(totalBits int) (int, error) {
	sectorSize := a.Device.SectorSize()
	bitsPerSector := sectorSize * 8
	position := 0

	for s := 0; s < a.SectorCount && position < totalBits; s++ {
		buf := make([]byte, sectorSize)
		if err := a.Device.ReadSector(a.StartSector+s, buf); err != nil {
			return -1, errors.NewFromError(errors.E_IO, err)
		}

		for byteIdx := 0; byteIdx < sectorSize && position < totalBits; byteIdx++ {
			if buf[byteIdx] == 0xFF {
				position += 8
				continue
			}

			for bit := 0; bit < 8; bit++ {
				if position >= totalBits {
					break
				}
				mask := byte(1) << (7 - bit)
				if buf[byteIdx]&mask == 0 {
					buf[byteIdx] |= mask
					if err := a.Device.WriteSector(a.StartSector+s, buf); err != nil {
						return -1, errors.NewFromError(errors.E_IO, err)
					}
					return position, nil
				}
				position++
			}
		}
		// Any bits skipped past the end of this sector by a 0xFF byte that
		// straddled bitsPerSector aren't revisited; position already
		// accounts for them.
		_ = bitsPerSector
	}

	return -1, nil
}

// Reset clears bit bitIndex: computes (sector, byte, bit) with MSB-first
// numbering, reads the owning sector, clears the bit, writes it back.
func (a Allocator) Reset(bitIndex int) error {
	sectorSize := a.Device.SectorSize()
	bitsPerSector := sectorSize * 8

	sector := bitIndex / bitsPerSector
	withinSector := bitIndex % bitsPerSector
	byteIdx := withinSector / 8
	bitInByte := withinSector % 8

	buf := make([]byte, sectorSize)
	if err := a.Device.ReadSector(a.StartSector+sector, buf); err != nil {
		return errors.NewFromError(errors.E_IO, err)
	}

	mask := byte(1) << (7 - bitInByte)
	buf[byteIdx] &^= mask

	if err := a.Device.WriteSector(a.StartSector+sector, buf); err != nil {
		return errors.NewFromError(errors.E_IO, err)
	}
	return nil
}
