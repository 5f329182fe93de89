// Package driver implements the three read-side operations spec.md §5
// exposes over a parsed container: Info, Extract, and Convert.
//
// Extract's "copy every embedded partition to a file" loop and Info's
// line-oriented report both follow the teacher's patcher.go driving
// tipatch.UnpackImage/ExtractRamdisk step by step and printing progress as
// it goes (_examples/kdrag0n-tipatch/cmd/tipatch/patcher.go).
package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/tplink-oss/safeloader/container"
	"github.com/tplink-oss/safeloader/internal/slerrors"
	"github.com/tplink-oss/safeloader/meta"
)

// trimFiller strips trailing 0xff/0x00 filler bytes left over from a fixed-
// width record before printing it, without touching any interior NULs a
// multi-line record (support-list) may legitimately contain.
func trimFiller(b []byte) []byte {
	return bytes.TrimRight(b, "\xff\x00")
}

// PartitionReport is one row of an Info report: an embedded partition along
// with a short description of its decoded content where recognized.
type PartitionReport struct {
	Name        string
	Base        uint32
	Size        uint32
	Description string
	Fingerprint uint64
}

// Report is the full result of Info (spec.md §5.1).
type Report struct {
	Dialect      container.Dialect
	VendorBanner string
	Partitions   []PartitionReport
	FlashTable   []container.TableEntry
}

func fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// describe renders a short human-readable summary of a named partition's
// decoded content, where spec.md §4.2 gives it known structure.
func describe(name string, payload []byte) string {
	switch name {
	case "soft-version":
		content, err := meta.Unframe(payload)
		if err != nil {
			return "malformed: " + err.Error()
		}
		sv, err := meta.ParseSoftVersion(content)
		if err != nil {
			return "malformed: " + err.Error()
		}
		if sv.Numeric {
			s := fmt.Sprintf("numeric %d.%d.%d rev %d (%04d-%02d-%02d)", sv.Major, sv.Minor, sv.Patch, sv.Revision, sv.Year, sv.Month, sv.Day)
			if sv.HasCompat {
				s += fmt.Sprintf(" compat %d", sv.CompatLevel)
			}
			return s
		}
		return "text " + strings.TrimSpace(string(trimFiller([]byte(sv.Text))))
	case "support-list":
		content, err := meta.Unframe(payload)
		if err != nil {
			return "malformed: " + err.Error()
		}
		return strings.TrimSpace(string(trimFiller(content)))
	case "partition-table":
		entries, err := container.ParseFlashPartitionTable(payload)
		if err != nil {
			return "malformed: " + err.Error()
		}
		return fmt.Sprintf("%d flash partitions", len(entries))
	default:
		return ""
	}
}

// Info classifies data's dialect and reports every embedded partition it
// finds, decoding the well-known ones, per spec.md §5.1.
func Info(data []byte) (*Report, error) {
	img, err := container.Parse(data)
	if err != nil {
		return nil, err
	}

	report := &Report{Dialect: img.Dialect, VendorBanner: img.VendorBanner}

	for _, e := range img.Entries {
		payload, ok := img.Payload(e.Name)
		row := PartitionReport{Name: e.Name, Base: e.Base, Size: e.Size}
		if ok {
			row.Description = describe(e.Name, payload)
			row.Fingerprint = fingerprint(payload)

			if e.Name == "partition-table" {
				// partition-table is the raw 2048-byte payload, not meta-framed
				// (spec.md §4.2).
				if flashTable, err := container.ParseFlashPartitionTable(payload); err == nil {
					report.FlashTable = flashTable
				}
			}
		}
		report.Partitions = append(report.Partitions, row)
	}

	return report, nil
}

// Extract writes every embedded partition's payload to "<dir>/<name>", per
// spec.md §5.2.
func Extract(data []byte, dir string) error {
	img, err := container.Parse(data)
	if err != nil {
		return err
	}

	for _, e := range img.Entries {
		payload, ok := img.Payload(e.Name)
		if !ok {
			continue
		}

		path := filepath.Join(dir, e.Name)
		if err := writeFile(path, payload); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return slerrors.Iof(err, "creating %s", path)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return slerrors.Iof(err, "writing %s", path)
	}
	return nil
}

// Convert rewrites a factory image into a sysupgrade-layout image: locate
// the embedded os-image, file-system and partition-table partitions, parse
// the flash table out of partition-table, write the os-image payload at
// output offset 0, pad with 0xFF up to the file-system partition's flash
// offset delta, then write the file-system payload, per spec.md §4.5.
func Convert(data []byte) ([]byte, error) {
	img, err := container.Parse(data)
	if err != nil {
		return nil, err
	}

	osImagePayload, ok := img.Payload("os-image")
	if !ok {
		return nil, slerrors.Format("image has no embedded os-image, cannot convert", nil)
	}
	fileSystemPayload, ok := img.Payload("file-system")
	if !ok {
		return nil, slerrors.Format("image has no embedded file-system, cannot convert", nil)
	}
	partitionTablePayload, ok := img.Payload("partition-table")
	if !ok {
		return nil, slerrors.Format("image has no embedded partition-table, cannot convert", nil)
	}

	flash, err := container.ParseFlashPartitionTable(partitionTablePayload)
	if err != nil {
		return nil, err
	}

	flashOSImage := flashByName(flash, "os-image")
	flashFileSystem := flashByName(flash, "file-system")
	if flashOSImage == nil || flashFileSystem == nil {
		return nil, slerrors.Format("flash table has no os-image/file-system partition pair", nil)
	}
	if flashFileSystem.Base < flashOSImage.Base {
		return nil, slerrors.Format("file-system flash partition precedes os-image flash partition", nil)
	}

	fileSystemOffset := flashFileSystem.Base - flashOSImage.Base
	out := make([]byte, int(fileSystemOffset)+len(fileSystemPayload))
	for i := range out {
		out[i] = 0xff
	}

	copy(out, osImagePayload)
	copy(out[fileSystemOffset:], fileSystemPayload)

	return out, nil
}

func flashByName(flash []container.TableEntry, name string) *container.TableEntry {
	for i, e := range flash {
		if e.Name == name {
			return &flash[i]
		}
	}
	return nil
}
