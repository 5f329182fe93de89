// Package board holds the static, read-only registry of SafeLoader board
// profiles: the per-device parameters (vendor banner, support list, flash
// geometry, software-version format, extra-para requirement) that the
// image assembler and container parser are built against.
//
// The registry is a compiled Go slice, the same way the teacher
// (_examples/kdrag0n-tipatch) keeps its boot-image constants (BootMagic,
// BootNameSize, MinImageSize) as typed Go values instead of an external
// config file.
package board

import "strings"

// SoftVerKind distinguishes the two soft-version record shapes a profile
// may declare.
type SoftVerKind int

const (
	// SoftVerNumeric selects the packed binary {major,minor,patch,...}
	// record.
	SoftVerNumeric SoftVerKind = iota
	// SoftVerText selects a NUL-terminated text record.
	SoftVerText
)

// SoftwareVersion is the soft-version variant a profile records, per
// spec.md §3 ("SoftwareVersion" entity).
type SoftwareVersion struct {
	Kind SoftVerKind

	// Text is used when Kind == SoftVerText.
	Text string

	// Major/Minor/Patch are used when Kind == SoftVerNumeric.
	Major, Minor, Patch uint8
}

// DefaultSoftVer is the SOFT_VER_DEFAULT numeric 0.0.0 record the original
// implementation uses when a board doesn't override it.
var DefaultSoftVer = SoftwareVersion{Kind: SoftVerNumeric}

// TextSoftVer builds a Text-kind SoftwareVersion, mirroring the original's
// SOFT_VER_TEXT macro.
func TextSoftVer(text string) SoftwareVersion {
	return SoftwareVersion{Kind: SoftVerText, Text: text}
}

// PaddingPolicy is the per-profile meta-framing pad byte policy (spec.md
// §3's "PaddingPolicy" entity): either a fixed trailing byte, or none.
type PaddingPolicy struct {
	padded bool
	value  byte
}

// Padded reports whether the policy appends a trailing byte, and its value.
func (p PaddingPolicy) Padded() (byte, bool) { return p.value, p.padded }

// Pad builds a policy that appends the given trailing byte.
func Pad(v byte) PaddingPolicy { return PaddingPolicy{padded: true, value: v} }

// NoPadding is the policy that appends nothing.
var NoPadding = PaddingPolicy{}

// FlashPartition is one entry of a board's on-device flash layout (spec.md
// §3's "FlashPartition" entity).
type FlashPartition struct {
	Name string
	Base uint32
	Size uint32
}

// PartitionNames resolves the five well-known embedded-partition names plus
// extra-para, applying the profile defaults documented in spec.md §4.1
// unless a profile overrides one (needed for dialects that suffix names,
// e.g. "@1").
type PartitionNames struct {
	PartitionTable string
	SoftVersion    string
	OSImage        string
	SupportList    string
	FileSystem     string
	ExtraPara      string
}

// defaultNames are the names used unless a BoardProfile overrides them.
var defaultNames = PartitionNames{
	PartitionTable: "partition-table",
	SoftVersion:    "soft-version",
	OSImage:        "os-image",
	SupportList:    "support-list",
	FileSystem:     "file-system",
	ExtraPara:      "extra-para",
}

// BoardProfile is one row of the board registry (spec.md §3's
// "BoardProfile" entity).
type BoardProfile struct {
	// ID is matched case-insensitively by Find.
	ID string

	// Vendor is the banner text embedded in a factory image; empty means
	// no banner (a vendor length of 0 is written).
	Vendor string

	SupportList string
	Padding     PaddingPolicy
	SoftVer     SoftwareVersion

	// CompatLevel, when non-zero, extends the numeric soft-version record
	// with a trailing 4-byte field.
	CompatLevel uint32

	// Flash is the ordered on-device flash partition list. Entries must be
	// strictly ascending by Base and non-overlapping (spec.md §3
	// invariant).
	Flash []FlashPartition

	FirstSysupgradePartition string
	LastSysupgradePartition  string

	// Names overrides defaultNames field by field; a zero-value field
	// falls back to the default.
	Names PartitionNames

	// ExtraPara is the two-byte marker required by some boards (spec.md
	// §6's extra-para requirement table); nil means not required.
	ExtraPara []byte
}

// ResolvedPartitionNames returns the five well-known names plus extra-para
// with defaults applied, per spec.md §4.1.
func (b BoardProfile) ResolvedPartitionNames() PartitionNames {
	names := defaultNames
	if b.Names.PartitionTable != "" {
		names.PartitionTable = b.Names.PartitionTable
	}
	if b.Names.SoftVersion != "" {
		names.SoftVersion = b.Names.SoftVersion
	}
	if b.Names.OSImage != "" {
		names.OSImage = b.Names.OSImage
	}
	if b.Names.SupportList != "" {
		names.SupportList = b.Names.SupportList
	}
	if b.Names.FileSystem != "" {
		names.FileSystem = b.Names.FileSystem
	}
	if b.Names.ExtraPara != "" {
		names.ExtraPara = b.Names.ExtraPara
	}
	return names
}

// FlashByName returns the index of the flash partition with the given name,
// or -1 if absent.
func (b BoardProfile) FlashByName(name string) int {
	for i, p := range b.Flash {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Find returns the first profile whose ID matches id case-insensitively, per
// spec.md §4.1 / testable property 1.
func Find(id string) (BoardProfile, bool) {
	for _, p := range Registry {
		if strings.EqualFold(p.ID, id) {
			return p, true
		}
	}
	return BoardProfile{}, false
}
