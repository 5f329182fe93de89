// Package meta builds and parses the small framed metadata partitions
// embedded in a SafeLoader image: partition-table, soft-version,
// support-list and extra-para (spec.md §4.2).
//
// The framing ({u32 length, u32 zero} header, content, optional trailing pad
// byte) and the packed soft-version record are both fixed binary layouts,
// built the same way the teacher (_examples/kdrag0n-tipatch/pack.go) frames
// its own boot-image header with encoding/binary rather than manual byte
// shuffling.
package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/tplink-oss/safeloader/board"
	"github.com/tplink-oss/safeloader/internal/slerrors"
)

// PartitionTableSize is the fixed size of the raw (unframed) partition-table
// payload, per spec.md §3/§4.2.
const PartitionTableSize = 2048

// partitionTableMagic is the 4-byte prefix of a raw partition-table payload.
var partitionTableMagic = [4]byte{0x00, 0x04, 0x00, 0x00}

// frame wraps content in the common {length,zero} header, plus a single pad
// byte when policy requests one.
func frame(content []byte, policy board.PaddingPolicy) []byte {
	buf := make([]byte, 0, 8+len(content)+1)
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(content)))
	buf = append(buf, hdr[:]...)
	buf = append(buf, content...)
	if v, ok := policy.Padded(); ok {
		buf = append(buf, v)
	}
	return buf
}

// Unframe reads the {length,zero} header from payload and returns the
// content bytes it declares, ignoring any trailing pad byte. This is the
// inverse of frame, used to round-trip soft-version/support-list/
// extra-para partitions (spec.md §8 testable property 6).
func Unframe(payload []byte) ([]byte, error) {
	if len(payload) < 8 {
		return nil, slerrors.Format("meta record truncated", nil)
	}
	length := binary.BigEndian.Uint32(payload[0:4])
	if uint64(8+length) > uint64(len(payload)) {
		return nil, slerrors.Formatf(nil, "meta record declares length %d, but only %d bytes available", length, len(payload)-8)
	}
	return payload[8 : 8+length], nil
}

// BuildPartitionTable renders the raw (unframed) 2048-byte flash partition
// table payload (the "partition-table" embedded partition) listing flash in
// profile order, per spec.md §4.2.
func BuildPartitionTable(flash []board.FlashPartition) ([]byte, error) {
	var body bytes.Buffer
	body.Write(partitionTableMagic[:])
	for _, p := range flash {
		fmt.Fprintf(&body, "partition %s base 0x%05x size 0x%05x\n", p.Name, p.Base, p.Size)
	}
	body.WriteByte(0)

	if body.Len() > PartitionTableSize {
		return nil, slerrors.Overflowf(nil, "flash partition table needs %d bytes, only %d available", body.Len(), PartitionTableSize)
	}

	out := make([]byte, PartitionTableSize)
	for i := range out {
		out[i] = 0xff
	}
	copy(out, body.Bytes())
	return out, nil
}

// SoftVersionNumericLen is the full packed soft_version record length
// (with compat_level); SoftVersionNumericShortLen omits the trailing
// compat_level field when a profile's compat level is zero.
const (
	SoftVersionNumericLen      = 16
	SoftVersionNumericShortLen = 12
)

func bcdByte(n int) byte {
	return byte((n/10)<<4 | (n % 10))
}

// BuildSoftVersion renders the framed soft-version partition for profile,
// using buildTime for the numeric variant's BCD date field and rev as its
// revision, per spec.md §4.2.
func BuildSoftVersion(profile board.BoardProfile, rev uint32, buildTime time.Time) []byte {
	var content []byte

	switch profile.SoftVer.Kind {
	case board.SoftVerText:
		content = append([]byte(profile.SoftVer.Text), 0)
	default:
		year := buildTime.Year()
		rec := make([]byte, SoftVersionNumericLen)
		rec[0] = 0xff
		rec[1] = profile.SoftVer.Major
		rec[2] = profile.SoftVer.Minor
		rec[3] = profile.SoftVer.Patch
		rec[4] = bcdByte(year / 100)
		rec[5] = bcdByte(year % 100)
		rec[6] = bcdByte(int(buildTime.Month()))
		rec[7] = bcdByte(buildTime.Day())
		binary.BigEndian.PutUint32(rec[8:12], rev)
		binary.BigEndian.PutUint32(rec[12:16], profile.CompatLevel)

		if profile.CompatLevel == 0 {
			content = rec[:SoftVersionNumericShortLen]
		} else {
			content = rec
		}
	}

	return frame(content, profile.Padding)
}

// ParsedSoftVersion is the decoded content of a soft-version meta
// partition, either text or the packed numeric record.
type ParsedSoftVersion struct {
	Text string // set when numeric is false

	Numeric      bool
	Major        byte
	Minor        byte
	Patch        byte
	Year         int
	Month        int
	Day          int
	Revision     uint32
	HasCompat    bool
	CompatLevel  uint32
}

// IsPrintableText reports whether content is ASCII printable/whitespace
// throughout, the heuristic spec.md §4.5 uses to decide between the text
// and numeric soft-version rendering.
func IsPrintableText(content []byte) bool {
	for _, b := range content {
		if b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// ParseSoftVersion decodes the content of a soft-version meta partition
// (after Unframe), choosing text or numeric decoding per IsPrintableText
// applied to the content with its trailing NUL terminator(s) removed.
func ParseSoftVersion(content []byte) (ParsedSoftVersion, error) {
	if text := bytes.TrimRight(content, "\x00"); IsPrintableText(text) {
		return ParsedSoftVersion{Text: string(text)}, nil
	}

	if len(content) != SoftVersionNumericLen && len(content) != SoftVersionNumericShortLen {
		return ParsedSoftVersion{}, slerrors.Formatf(nil, "numeric soft-version record has %d bytes, want %d or %d",
			len(content), SoftVersionNumericShortLen, SoftVersionNumericLen)
	}

	decodeBCD := func(b byte) int { return int(b>>4)*10 + int(b&0x0f) }

	p := ParsedSoftVersion{
		Numeric: true,
		Major:   content[1],
		Minor:   content[2],
		Patch:   content[3],
		Year:    decodeBCD(content[4])*100 + decodeBCD(content[5]),
		Month:   decodeBCD(content[6]),
		Day:     decodeBCD(content[7]),
	}
	p.Revision = binary.BigEndian.Uint32(content[8:12])
	if len(content) == SoftVersionNumericLen {
		p.HasCompat = true
		p.CompatLevel = binary.BigEndian.Uint32(content[12:16])
	}
	return p, nil
}

// BuildSupportList renders the framed support-list partition for profile,
// per spec.md §4.2 (no NUL terminator on the content).
func BuildSupportList(profile board.BoardProfile) []byte {
	return frame([]byte(profile.SupportList), profile.Padding)
}

// BuildExtraPara renders the framed extra-para partition for profile's
// two-byte marker, per spec.md §4.2/§6. Callers must check
// profile.ExtraPara != nil first.
func BuildExtraPara(profile board.BoardProfile) []byte {
	return frame(profile.ExtraPara, profile.Padding)
}
