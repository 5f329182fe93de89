package image

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"testing"
	"time"

	"github.com/tplink-oss/safeloader/board"
	"github.com/tplink-oss/safeloader/container"
	"github.com/tplink-oss/safeloader/meta"
)

func kiB(n int) []byte { return bytes.Repeat([]byte{0xaa}, n*1024) }

// TestFactoryImageLayout exercises scenario S1: a CPE510 factory build's
// preamble, vendor banner, image table order, and MD5 envelope.
//
// The scenario's illustrative vendor-length byte (0x1D) assumes a shorter
// banner than the real CPE510 vendor string this registry carries verbatim
// from original_source/src/tplink-safeloader.c (31 bytes, 0x1F); the test
// below checks the invariant against the profile's actual banner length
// rather than the spec's worked-example constant.
func TestFactoryImageLayout(t *testing.T) {
	p, ok := board.Find("CPE510")
	if !ok {
		t.Fatal("CPE510 not in registry")
	}

	kernel := kiB(128)
	rootfs := kiB(1024)

	out, err := Build(p, Options{
		Kernel:    kernel,
		Rootfs:    rootfs,
		Mode:      ModeFactory,
		BuildTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		MD5:       md5.Sum,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := binary.BigEndian.Uint32(out[0:4]); int(got) != len(out) {
		t.Fatalf("header length = %d, want %d", got, len(out))
	}

	wantVendorLen := uint32(len(p.Vendor))
	if got := binary.BigEndian.Uint32(out[20:24]); got != wantVendorLen {
		t.Fatalf("vendor length = %d, want %d", got, wantVendorLen)
	}
	if string(out[24:24+len(p.Vendor)]) != p.Vendor {
		t.Fatalf("vendor banner mismatch")
	}

	img, err := container.Parse(out)
	if err != nil {
		t.Fatalf("container.Parse: %v", err)
	}
	wantOrder := []string{"partition-table", "soft-version", "support-list", "os-image", "file-system"}
	if len(img.Entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(img.Entries), len(wantOrder))
	}
	for i, name := range wantOrder {
		if img.Entries[i].Name != name {
			t.Fatalf("entry %d = %q, want %q", i, img.Entries[i].Name, name)
		}
	}
	if img.Entries[3].Size != uint32(len(kernel)) {
		t.Fatalf("os-image size = %d, want %d", img.Entries[3].Size, len(kernel))
	}

	// testable property 4: MD5 envelope.
	hashInput := append(append([]byte{}, container.MD5Salt[:]...), out[20:]...)
	want := md5.Sum(hashInput)
	if !bytes.Equal(out[4:20], want[:]) {
		t.Fatalf("MD5 envelope mismatch: got % x want % x", out[4:20], want)
	}

	// testable property 5: round-trip of embedded table.
	base := uint32(container.TableSize)
	for _, e := range img.Entries {
		if e.Base != base {
			t.Fatalf("entry %q base = 0x%x, want 0x%x", e.Name, e.Base, base)
		}
		base += e.Size
	}
}

// TestSysupgradeSize exercises scenario S2 and testable property 7.
func TestSysupgradeSize(t *testing.T) {
	p, ok := board.Find("CPE510")
	if !ok {
		t.Fatal("CPE510 not in registry")
	}

	kernel := kiB(128)
	rootfs := kiB(1024)

	out, err := Build(p, Options{
		Kernel:    kernel,
		Rootfs:    rootfs,
		Mode:      ModeSysupgrade,
		BuildTime: time.Unix(0, 0).UTC(),
		MD5:       md5.Sum,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !bytes.Equal(out[:len(kernel)], kernel) {
		t.Fatal("sysupgrade image does not start with the kernel payload")
	}

	flash, err := deriveLayout(p, len(kernel), false)
	if err != nil {
		t.Fatal(err)
	}
	first := flash[indexByName(flash, p.FirstSysupgradePartition)]
	last := flash[indexByName(flash, p.LastSysupgradePartition)]
	lastPayload := meta.BuildSupportList(p)
	wantLen := int(last.Base-first.Base) + len(lastPayload)
	if len(out) != wantLen {
		t.Fatalf("sysupgrade image length = %d, want %d", len(out), wantLen)
	}
}

// TestExtraParaPartition exercises scenario S3.
func TestExtraParaPartition(t *testing.T) {
	p, ok := board.Find("ARCHER-A7-V5")
	if !ok {
		t.Fatal("ARCHER-A7-V5 not in registry")
	}

	out, err := Build(p, Options{
		Kernel:    kiB(128),
		Rootfs:    kiB(1024),
		Mode:      ModeFactory,
		BuildTime: time.Unix(0, 0).UTC(),
		MD5:       md5.Sum,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	img, err := container.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(img.Entries) != 6 {
		t.Fatalf("got %d image table rows, want 6", len(img.Entries))
	}
	if img.Entries[5].Name != "extra-para" {
		t.Fatalf("last entry = %q, want extra-para", img.Entries[5].Name)
	}
	payload, ok := img.Payload("extra-para")
	if !ok {
		t.Fatal("extra-para payload not found")
	}
	content, err := meta.Unframe(payload)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, []byte{0x01, 0x00}) {
		t.Fatalf("extra-para content = % x, want 01 00", content)
	}
}

// TestNoPaddingKeepsCompatLevel exercises scenario S4.
func TestNoPaddingKeepsCompatLevel(t *testing.T) {
	p, ok := board.Find("EAP225-OUTDOOR-V1")
	if !ok {
		t.Fatal("EAP225-OUTDOOR-V1 not in registry")
	}
	if p.CompatLevel == 0 {
		t.Fatal("fixture assumption violated: EAP225-OUTDOOR-V1 must have non-zero compat level")
	}

	out, err := Build(p, Options{
		Kernel:    kiB(64),
		Rootfs:    kiB(512),
		Mode:      ModeFactory,
		BuildTime: time.Unix(0, 0).UTC(),
		MD5:       md5.Sum,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	img, err := container.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	payload, ok := img.Payload("soft-version")
	if !ok {
		t.Fatal("soft-version payload not found")
	}
	length := binary.BigEndian.Uint32(payload[0:4])
	if length != meta.SoftVersionNumericLen {
		t.Fatalf("soft-version content is %d bytes, want the full %d-byte record with compat_level", length, meta.SoftVersionNumericLen)
	}
	if 8+int(length) != len(payload) {
		t.Fatalf("soft-version has a trailing pad byte despite None padding policy: framed len=%d, declared content+header=%d",
			len(payload), 8+length)
	}
}

// TestJFFS2EOFTail exercises testable property 10.
func TestJFFS2EOFTail(t *testing.T) {
	p, ok := board.Find("ARCHER-A7-V5")
	if !ok {
		t.Fatal("ARCHER-A7-V5 not in registry")
	}

	out, err := Build(p, Options{
		Kernel:    kiB(128),
		Rootfs:    kiB(1024),
		Mode:      ModeFactory,
		JFFS2EOF:  true,
		BuildTime: time.Unix(0, 0).UTC(),
		MD5:       md5.Sum,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	img, err := container.Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	payload, ok := img.Payload("file-system")
	if !ok {
		t.Fatal("file-system payload not found")
	}
	if !bytes.Equal(payload[len(payload)-4:], container.JFFS2EOFMark[:]) {
		t.Fatalf("file-system tail = % x, want %x", payload[len(payload)-4:], container.JFFS2EOFMark)
	}

	flash, err := deriveLayout(p, 128*1024, true)
	if err != nil {
		t.Fatal(err)
	}
	fs := flash[indexByName(flash, p.ResolvedPartitionNames().FileSystem)]
	if (uint64(fs.Base)+uint64(len(payload))-4)%0x10000 != 0 {
		t.Fatalf("file-system payload end not aligned to a 64 KiB flash boundary")
	}
}
