package board

import (
	"fmt"
	"strings"
	"testing"
)

// TestRegistryUniqueness verifies testable property 1: every board id is
// unique under case-insensitive comparison.
func TestRegistryUniqueness(t *testing.T) {
	seen := map[string]string{}
	for _, p := range Registry {
		key := strings.ToLower(p.ID)
		if prev, ok := seen[key]; ok {
			t.Fatalf("duplicate board id %q (case-insensitive clash with %q)", p.ID, prev)
		}
		seen[key] = p.ID
	}
}

// TestFindFirstMatchWins verifies Find is case-insensitive and returns the
// first match.
func TestFindFirstMatchWins(t *testing.T) {
	for _, tc := range []string{"cpe510", "CPE510", "Cpe510"} {
		p, ok := Find(tc)
		if !ok {
			t.Fatalf("Find(%q): not found", tc)
		}
		if p.ID != "CPE510" {
			t.Fatalf("Find(%q) = %q, want CPE510", tc, p.ID)
		}
	}

	if _, ok := Find("no-such-board"); ok {
		t.Fatal("Find(no-such-board): unexpectedly found")
	}
}

// TestFlashGeometry verifies testable property 3: every profile's flash
// partitions are ascending by base and non-overlapping.
func TestFlashGeometry(t *testing.T) {
	for _, p := range Registry {
		t.Run(p.ID, func(t *testing.T) {
			for i := 1; i < len(p.Flash); i++ {
				prev, cur := p.Flash[i-1], p.Flash[i]
				prevEnd := prev.Base + prev.Size
				if cur.Base < prevEnd {
					t.Fatalf("partition %q (base 0x%x) overlaps %q (base 0x%x size 0x%x, end 0x%x)",
						cur.Name, cur.Base, prev.Name, prev.Base, prev.Size, prevEnd)
				}
			}
		})
	}
}

// TestExtraParaMarkerLength verifies every declared extra-para marker is
// exactly two bytes, per spec.md §6.
func TestExtraParaMarkerLength(t *testing.T) {
	for _, p := range Registry {
		if p.ExtraPara != nil && len(p.ExtraPara) != 2 {
			t.Errorf("%s: extra-para marker has %d bytes, want 2", p.ID, len(p.ExtraPara))
		}
	}
}

func TestResolvedPartitionNamesDefaults(t *testing.T) {
	p := BoardProfile{}
	names := p.ResolvedPartitionNames()
	if names.PartitionTable != "partition-table" || names.OSImage != "os-image" || names.FileSystem != "file-system" {
		t.Fatalf("unexpected defaults: %+v", names)
	}

	p.Names.OSImage = fmt.Sprintf("os-image@1")
	names = p.ResolvedPartitionNames()
	if names.OSImage != "os-image@1" {
		t.Fatalf("override not applied: %+v", names)
	}
}
