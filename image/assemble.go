// Package image implements the SafeLoader image assembler: the dynamic
// kernel/rootfs split, jffs2 end-of-filesystem padding, and factory/
// sysupgrade emission (spec.md §4.3).
//
// The padding-then-write shape mirrors the teacher's own pack.go
// (_examples/kdrag0n-tipatch/pack.go: paddingSize/writePadding followed by
// writePaddedSection), generalized here from page-size alignment to
// erase-block alignment.
package image

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/tplink-oss/safeloader/board"
	"github.com/tplink-oss/safeloader/container"
	"github.com/tplink-oss/safeloader/internal/slerrors"
	"github.com/tplink-oss/safeloader/meta"
)

// Mode selects factory or sysupgrade emission.
type Mode int

const (
	ModeFactory Mode = iota
	ModeSysupgrade
)

// MD5Func computes the MD5 digest of its input. The MD5 primitive itself is
// out of scope for this module (spec.md §1) and is always supplied by the
// caller.
type MD5Func func([]byte) [16]byte

// Options configures a single Build call.
type Options struct {
	Kernel []byte
	Rootfs []byte
	Mode   Mode

	// JFFS2EOF appends the jffs2 end-of-filesystem marker to the rootfs
	// payload when set, per spec.md §4.3 Step 2.
	JFFS2EOF bool

	// Revision is embedded in a numeric soft-version record.
	Revision uint32

	// BuildTime supplies the soft-version numeric record's date fields;
	// callers resolve SOURCE_DATE_EPOCH (or the wall clock) once and pass
	// it in, per Design Note "Module-level clock".
	BuildTime time.Time

	MD5 MD5Func
}

// Partition is a materialised embedded image partition, ready to place in
// a factory or sysupgrade image (spec.md §3's "ImagePartition" entity).
type Partition struct {
	Name string
	Data []byte
}

func alignUp(x, a uint32) uint32 {
	return (x + a - 1) &^ (a - 1)
}

// deriveLayout implements spec.md §4.3 Step 1: if profile has a "firmware"
// flash partition, derive a new flash list with it replaced by os-image and
// file-system entries, sized against kernelLen. The profile's own Flash
// slice is never mutated (Design Note "Synthetic split mutation" resolved).
func deriveLayout(profile board.BoardProfile, kernelLen int, forFactory bool) ([]board.FlashPartition, error) {
	idx := profile.FlashByName("firmware")
	if idx < 0 {
		return append([]board.FlashPartition(nil), profile.Flash...), nil
	}

	fw := profile.Flash[idx]
	if uint32(kernelLen) > fw.Size {
		return nil, slerrors.Overflowf(nil, "kernel is %d bytes, exceeds firmware partition size %d", kernelLen, fw.Size)
	}

	names := profile.ResolvedPartitionNames()

	fsBase := fw.Base + uint32(kernelLen)
	if forFactory {
		fsBase = alignUp(fsBase, 0x10000)
	}
	fsSize := fw.Base + fw.Size - fsBase

	osImage := board.FlashPartition{Name: names.OSImage, Base: fw.Base, Size: uint32(kernelLen)}
	fileSystem := board.FlashPartition{Name: names.FileSystem, Base: fsBase, Size: fsSize}

	out := make([]board.FlashPartition, 0, len(profile.Flash)+1)
	out = append(out, profile.Flash[:idx]...)
	out = append(out, osImage, fileSystem)
	out = append(out, profile.Flash[idx+1:]...)
	return out, nil
}

// padRootfs implements spec.md §4.3 Step 2: jffs2 end-of-filesystem
// padding, aligned either to the concrete file-system flash entry's base
// offset or, absent one, to the raw payload length.
func padRootfs(rootfs []byte, fileSystem *board.FlashPartition) []byte {
	var target uint32
	if fileSystem != nil {
		target = alignUp(uint32(len(rootfs))+fileSystem.Base, 0x10000) + 4 - fileSystem.Base
	} else {
		target = alignUp(uint32(len(rootfs)), 0x10000) + 4
	}

	out := make([]byte, target)
	copy(out, rootfs)
	for i := len(rootfs); i < len(out)-4; i++ {
		out[i] = 0xff
	}
	copy(out[len(out)-4:], container.JFFS2EOFMark[:])
	return out
}

// Build assembles a factory or sysupgrade SafeLoader image for profile,
// per spec.md §4.3.
func Build(profile board.BoardProfile, opts Options) ([]byte, error) {
	forFactory := opts.Mode == ModeFactory
	flash, err := deriveLayout(profile, len(opts.Kernel), forFactory)
	if err != nil {
		return nil, err
	}
	names := profile.ResolvedPartitionNames()

	var fileSystemEntry *board.FlashPartition
	if i := indexByName(flash, names.FileSystem); i >= 0 {
		fileSystemEntry = &flash[i]
	}

	rootfs := opts.Rootfs
	if opts.JFFS2EOF {
		rootfs = padRootfs(rootfs, fileSystemEntry)
	}

	partitionTable, err := meta.BuildPartitionTable(flash)
	if err != nil {
		return nil, err
	}

	parts := []Partition{
		{Name: names.PartitionTable, Data: partitionTable},
		{Name: names.SoftVersion, Data: meta.BuildSoftVersion(profile, opts.Revision, opts.BuildTime)},
		{Name: names.SupportList, Data: meta.BuildSupportList(profile)},
		{Name: names.OSImage, Data: opts.Kernel},
		{Name: names.FileSystem, Data: rootfs},
	}
	if profile.ExtraPara != nil {
		parts = append(parts, Partition{Name: names.ExtraPara, Data: meta.BuildExtraPara(profile)})
	}

	switch opts.Mode {
	case ModeSysupgrade:
		return buildSysupgrade(profile, flash, parts)
	default:
		return buildFactory(profile, parts, opts.MD5)
	}
}

func indexByName(flash []board.FlashPartition, name string) int {
	for i, p := range flash {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// buildImagePartitionTable renders the factory image's own table of
// embedded payloads (distinct from the nested flash partition table built
// by meta.BuildPartitionTable), per spec.md §4.3's "Image partition table
// contents".
func buildImagePartitionTable(parts []Partition) ([]byte, error) {
	var body []byte
	base := uint32(container.TableSize)
	for _, p := range parts {
		line := fmt.Sprintf("fwup-ptn %s base 0x%05x size 0x%05x\t\r\n", p.Name, base, len(p.Data))
		body = append(body, line...)
		base += uint32(len(p.Data))
	}
	body = append(body, 0)

	if len(body) > container.TableSize {
		return nil, slerrors.Overflowf(nil, "image partition table needs %d bytes, only %d available", len(body), container.TableSize)
	}

	out := make([]byte, container.TableSize)
	for i := range out {
		out[i] = 0xff
	}
	copy(out, body)
	return out, nil
}

func buildFactory(profile board.BoardProfile, parts []Partition, md5 MD5Func) ([]byte, error) {
	imageTable, err := buildImagePartitionTable(parts)
	if err != nil {
		return nil, err
	}

	payloadLen := 0
	for _, p := range parts {
		payloadLen += len(p.Data)
	}
	total := container.TableOffset + container.TableSize + payloadLen

	out := make([]byte, total)
	binary.BigEndian.PutUint32(out[0:4], uint32(total))

	binary.BigEndian.PutUint32(out[20:24], uint32(len(profile.Vendor)))
	banner := out[24:container.TableOffset]
	for i := range banner {
		banner[i] = 0xff
	}
	copy(banner, profile.Vendor)

	copy(out[container.TableOffset:container.TableOffset+container.TableSize], imageTable)

	offset := container.TableOffset + container.TableSize
	for _, p := range parts {
		copy(out[offset:], p.Data)
		offset += len(p.Data)
	}

	hashInput := make([]byte, 0, 16+len(out)-20)
	hashInput = append(hashInput, container.MD5Salt[:]...)
	hashInput = append(hashInput, out[20:]...)
	digest := md5(hashInput)
	copy(out[4:20], digest[:])

	return out, nil
}

func buildSysupgrade(profile board.BoardProfile, flash []board.FlashPartition, parts []Partition) ([]byte, error) {
	firstIdx := indexByName(flash, profile.FirstSysupgradePartition)
	lastIdx := indexByName(flash, profile.LastSysupgradePartition)
	if firstIdx < 0 || lastIdx < 0 {
		return nil, slerrors.Format("first/last sysupgrade partition not found in derived flash layout", nil)
	}
	if firstIdx >= lastIdx {
		return nil, slerrors.Format("first sysupgrade partition must precede last sysupgrade partition", nil)
	}

	payloadByName := make(map[string][]byte, len(parts))
	for _, p := range parts {
		payloadByName[p.Name] = p.Data
	}

	lastPayload, ok := payloadByName[flash[lastIdx].Name]
	if !ok {
		return nil, slerrors.Formatf(nil, "no payload materialised for last sysupgrade partition %q", flash[lastIdx].Name)
	}

	first := flash[firstIdx]
	last := flash[lastIdx]
	total := int(last.Base-first.Base) + len(lastPayload)

	out := make([]byte, total)
	for i := range out {
		out[i] = 0xff
	}

	for i := firstIdx; i <= lastIdx; i++ {
		entry := flash[i]
		payload, ok := payloadByName[entry.Name]
		if !ok {
			continue
		}
		if uint32(len(payload)) > entry.Size {
			return nil, slerrors.Overflowf(nil, "payload %q (%d bytes) exceeds its flash partition size %d", entry.Name, len(payload), entry.Size)
		}
		start := entry.Base - first.Base
		copy(out[start:], payload)
	}

	return out, nil
}
