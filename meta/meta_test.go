package meta

import (
	"bytes"
	"testing"
	"time"

	"github.com/tplink-oss/safeloader/board"
)

// TestPartitionTableFitsWindow verifies testable property 2: for every
// profile in the registry, the partition table fits within its fixed
// 2048-byte window.
func TestPartitionTableFitsWindow(t *testing.T) {
	for _, p := range board.Registry {
		t.Run(p.ID, func(t *testing.T) {
			table, err := BuildPartitionTable(p.Flash)
			if err != nil {
				t.Fatalf("BuildPartitionTable: %v", err)
			}
			if len(table) != PartitionTableSize {
				t.Fatalf("got %d bytes, want %d", len(table), PartitionTableSize)
			}
		})
	}
}

func TestPartitionTableOverflow(t *testing.T) {
	flash := make([]board.FlashPartition, 0, 200)
	for i := 0; i < 200; i++ {
		flash = append(flash, board.FlashPartition{Name: "some-very-long-partition-name-to-force-overflow", Base: uint32(i), Size: 1})
	}
	if _, err := BuildPartitionTable(flash); err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}

func TestPartitionTableLayout(t *testing.T) {
	flash := []board.FlashPartition{
		{Name: "fs-uboot", Base: 0, Size: 0x20000},
		{Name: "firmware", Base: 0x20000, Size: 0x100000},
	}
	table, err := BuildPartitionTable(flash)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(table, []byte{0x00, 0x04, 0x00, 0x00}) {
		t.Fatalf("missing magic prefix: % x", table[:4])
	}
	want := "partition fs-uboot base 0x00000 size 0x20000\n" +
		"partition firmware base 0x20000 size 0x100000\n"
	if !bytes.Contains(table, []byte(want)) {
		t.Fatalf("table body mismatch:\n%s", table[4:200])
	}
	for i := 4 + len(want) + 1; i < len(table); i++ {
		if table[i] != 0xff {
			t.Fatalf("byte %d not padded with 0xff: %#x", i, table[i])
		}
	}
}

// TestFramingRoundTrip verifies testable property 6: for any framed record,
// parse(build(x)) == x.
func TestFramingRoundTrip(t *testing.T) {
	p, ok := board.Find("ARCHER-A7-V5")
	if !ok {
		t.Fatal("ARCHER-A7-V5 not in registry")
	}

	supportList := BuildSupportList(p)
	content, err := Unframe(supportList)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != p.SupportList {
		t.Fatalf("support-list round trip mismatch: got %q want %q", content, p.SupportList)
	}

	extraPara := BuildExtraPara(p)
	content, err = Unframe(extraPara)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, p.ExtraPara) {
		t.Fatalf("extra-para round trip mismatch: got % x want % x", content, p.ExtraPara)
	}

	textProfile, _ := board.Find("ARCHER-C7-V4")
	sv := BuildSoftVersion(textProfile, 0, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	content, err = Unframe(sv)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseSoftVersion(content)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Text != textProfile.SoftVer.Text {
		t.Fatalf("soft-version text mismatch: got %q want %q", parsed.Text, textProfile.SoftVer.Text)
	}
}

// TestReplayableBuildBCDDate verifies testable property 9: with
// SOURCE_DATE_EPOCH corresponding to 2020-01-01 UTC, the numeric
// soft-version BCD date bytes equal 20 20 01 01.
func TestReplayableBuildBCDDate(t *testing.T) {
	p, ok := board.Find("CPE510")
	if !ok {
		t.Fatal("CPE510 not in registry")
	}

	buildTime := time.Unix(1577836800, 0).UTC()
	sv := BuildSoftVersion(p, 0, buildTime)
	content, err := Unframe(sv)
	if err != nil {
		t.Fatal(err)
	}
	if len(content) != SoftVersionNumericShortLen {
		t.Fatalf("CPE510 has zero compat level, expected short record of %d bytes, got %d", SoftVersionNumericShortLen, len(content))
	}
	got := content[4:8]
	want := []byte{0x20, 0x20, 0x01, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("BCD date bytes = % x, want % x", got, want)
	}
}

func TestNoPaddingPolicyOmitsTrailingByte(t *testing.T) {
	p, ok := board.Find("EAP225-OUTDOOR-V1")
	if !ok {
		t.Fatal("EAP225-OUTDOOR-V1 not in registry")
	}
	sv := BuildSoftVersion(p, 0, time.Unix(0, 0).UTC())
	content, err := Unframe(sv)
	if err != nil {
		t.Fatal(err)
	}
	// compat level is 1, so the full 16-byte record is present, with no
	// trailing pad byte appended after it.
	if len(content) != SoftVersionNumericLen {
		t.Fatalf("expected full numeric record (compat level 1), got %d bytes", len(content))
	}
	if len(sv) != 8+SoftVersionNumericLen {
		t.Fatalf("expected no trailing pad byte, framed len=%d want %d", len(sv), 8+SoftVersionNumericLen)
	}
}
