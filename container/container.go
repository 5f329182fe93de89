// Package container classifies a SafeLoader image's container dialect,
// locates its embedded image partition table, and parses both that table
// and the nested flash partition table, per spec.md §4.4.
//
// The bounded-window line scan below follows Design Note "Unsafe textual
// parsing": it never reads past the window it was given, the same
// discipline _examples/other_examples/linuxboot-fiano__fmap.go uses when
// walking a fixed-size binary table after validating its signature.
package container

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"github.com/tplink-oss/safeloader/internal/slerrors"
)

// Dialect is one of the four container variants spec.md §4.4 recognizes.
type Dialect int

const (
	DialectDefault Dialect = iota
	DialectVendor
	DialectCloud
	DialectQNew
)

func (d Dialect) String() string {
	switch d {
	case DialectVendor:
		return "vendor"
	case DialectCloud:
		return "cloud"
	case DialectQNew:
		return "qnew"
	default:
		return "default"
	}
}

// Layout constants, named after the original implementation's
// SAFELOADER_* constants (see DESIGN.md).
const (
	PreambleSize         = 0x14
	HeaderSize           = 0x1000
	TableOffset          = PreambleSize + HeaderSize // 0x1014
	QNewHeaderSize       = 0x3C
	QNewTableOffset      = PreambleSize + QNewHeaderSize + HeaderSize // 0x1050
	TableSize            = 0x800 // image partition table window
	classifyWindowStart  = PreambleSize
	classifyWindowSize   = 64
)

// MD5Salt is the constant salt prefixed to the hash input of the MD5
// envelope (spec.md §6).
var MD5Salt = [16]byte{
	0x7a, 0x2b, 0x15, 0xed,
	0x9b, 0x98, 0x59, 0x6d,
	0xe5, 0x04, 0xab, 0x44,
	0xac, 0x2a, 0x9f, 0x4e,
}

// JFFS2EOFMark is the four-byte sentinel appended to a jffs2-padded
// root-filesystem payload (spec.md GLOSSARY).
var JFFS2EOFMark = [4]byte{0xde, 0xad, 0xc0, 0xde}

// TableEntry is one row of a parsed textual table: an image partition
// table entry (name + offset/size within the payload area) or, when
// produced by ParseFlashPartitionTable, a flash partition entry.
type TableEntry struct {
	Name string
	Base uint32
	Size uint32
}

// ParsedImage is the result of Parse: enough to list, extract, or convert
// an existing SafeLoader image (spec.md §3's "ParsedImage" entity).
type ParsedImage struct {
	Dialect Dialect

	// TableOffset is where the 2048-byte image partition table begins.
	TableOffset int
	// PayloadOffset is the origin entry.Base is relative to. Table entries
	// number their Base from TableSize (0x800), i.e. as if the table began
	// at file offset 0, so the real payload origin is TableOffset itself —
	// not TableOffset+TableSize — matching tplink-safeloader.c's
	// SAFELOADER_PAYLOAD_OFFSET.
	PayloadOffset int

	// VendorBanner is set only for DialectVendor, with trailing NULs
	// trimmed.
	VendorBanner string

	// Entries are the image partition table rows, in file order.
	Entries []TableEntry

	// Raw is the full image, retained so callers can slice payload bytes
	// at PayloadOffset+entry.Base.
	Raw []byte
}

// classify implements spec.md §4.4's dialect heuristics over the 64 bytes
// starting at offset 0x14.
func classify(window []byte) Dialect {
	if bytes.HasPrefix(window, []byte("?NEW")) {
		return DialectQNew
	}
	if bytes.HasPrefix(window, []byte("fw-type:Cloud")) {
		return DialectCloud
	}
	if len(window) >= 4 {
		v := binary.BigEndian.Uint32(window[0:4])
		if v <= 0x1000 {
			return DialectVendor
		}
	}
	return DialectDefault
}

// Parse reads data as a SafeLoader image: classifies its dialect, locates
// the image partition table at the dialect-specific offset, and parses its
// entries.
func Parse(data []byte) (*ParsedImage, error) {
	if len(data) < classifyWindowStart+classifyWindowSize {
		return nil, slerrors.Format("image too small to contain a SafeLoader header", nil)
	}

	window := data[classifyWindowStart : classifyWindowStart+classifyWindowSize]
	dialect := classify(window)

	tableOffset := TableOffset
	if dialect == DialectQNew {
		tableOffset = QNewTableOffset
	}
	if len(data) < tableOffset+TableSize {
		return nil, slerrors.Format("image too small to contain its image partition table", nil)
	}

	img := &ParsedImage{
		Dialect:       dialect,
		TableOffset:   tableOffset,
		PayloadOffset: tableOffset,
		Raw:           data,
	}

	if dialect == DialectVendor {
		vendorLen := binary.BigEndian.Uint32(window[0:4])
		bannerEnd := PreambleSize + 4 + int(vendorLen)
		if bannerEnd > tableOffset {
			return nil, slerrors.Format("vendor banner length overruns header", nil)
		}
		banner := data[PreambleSize+4 : bannerEnd]
		img.VendorBanner = string(bytes.TrimRight(banner, "\x00"))
	}

	table := data[tableOffset : tableOffset+TableSize]
	entries, err := parseLineTable(table, "fwup-ptn", []byte("\t\r\n"))
	if err != nil {
		return nil, err
	}
	img.Entries = entries
	return img, nil
}

// ParseFlashPartitionTable parses the nested flash partition table found
// inside a "partition-table" embedded partition's payload, skipping its
// 4-byte magic prefix, per spec.md §4.4.
func ParseFlashPartitionTable(partitionTablePayload []byte) ([]TableEntry, error) {
	if len(partitionTablePayload) < 4 {
		return nil, slerrors.Format("partition-table payload too small for magic prefix", nil)
	}
	return parseLineTable(partitionTablePayload[4:], "partition", []byte("\n"))
}

// parseLineTable walks window line by line (each line ending in
// terminator), stopping at the first line that doesn't begin with header.
// It never reads past window, per Design Note "Unsafe textual parsing".
func parseLineTable(window []byte, header string, terminator []byte) ([]TableEntry, error) {
	var entries []TableEntry
	pos := 0
	headerBytes := []byte(header)

	for {
		if pos+len(headerBytes) > len(window) || !bytes.Equal(window[pos:pos+len(headerBytes)], headerBytes) {
			break
		}

		rel := bytes.Index(window[pos:], terminator)
		if rel < 0 {
			break
		}
		line := window[pos : pos+rel]
		pos += rel + len(terminator)

		entry, err := parseTableLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseTableLine tokenises "<header> <name> base 0x<hex> size 0x<hex>" on
// ASCII spaces: header, name, "base", base-hex, "size", size-hex.
func parseTableLine(line []byte) (TableEntry, error) {
	fields := bytes.Fields(line)
	if len(fields) != 6 {
		return TableEntry{}, slerrors.Formatf(nil, "malformed table line %q", line)
	}

	name := string(fields[1])
	if len(name) > 31 {
		name = name[:31]
	}

	base, err := parseHex(fields[3])
	if err != nil {
		return TableEntry{}, slerrors.Formatf(err, "bad base in table line %q", line)
	}
	size, err := parseHex(fields[5])
	if err != nil {
		return TableEntry{}, slerrors.Formatf(err, "bad size in table line %q", line)
	}

	return TableEntry{Name: name, Base: uint32(base), Size: uint32(size)}, nil
}

func parseHex(field []byte) (uint64, error) {
	s := string(bytes.TrimPrefix(field, []byte("0x")))
	return strconv.ParseUint(s, 16, 32)
}

// ByName returns the index of the first entry named name, or -1.
func (img *ParsedImage) ByName(name string) int {
	for i, e := range img.Entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Payload returns the payload bytes of the named embedded partition.
func (img *ParsedImage) Payload(name string) ([]byte, bool) {
	i := img.ByName(name)
	if i < 0 {
		return nil, false
	}
	e := img.Entries[i]
	start := img.PayloadOffset + int(e.Base)
	end := start + int(e.Size)
	if end > len(img.Raw) {
		return nil, false
	}
	return img.Raw[start:end], true
}
