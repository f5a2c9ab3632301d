package model

import (
	"testing"
)

func TestDetectLeftoversEmptyAtlas(t *testing.T) {
	a := Atlas{Index: 2, Bounds: NewSize(256, 128)}
	leftovers := DetectLeftovers(a)
	if len(leftovers) != 1 {
		t.Fatalf("expected 1 leftover for empty atlas, got %d", len(leftovers))
	}
	if leftovers[0].Rect != NewRect(0, 0, 256, 128) {
		t.Errorf("expected full atlas as leftover, got %+v", leftovers[0].Rect)
	}
	if leftovers[0].AtlasIndex != 2 {
		t.Errorf("expected atlas index 2, got %d", leftovers[0].AtlasIndex)
	}
}

func TestDetectLeftoversRightStrip(t *testing.T) {
	a := Atlas{
		Bounds: NewSize(256, 256),
		Placements: []Placement{
			{Rect: PlacedRect{Rect: NewRect(0, 0, 100, 256)}},
		},
	}
	leftovers := DetectLeftovers(a)
	if len(leftovers) != 1 {
		t.Fatalf("expected 1 leftover, got %d", len(leftovers))
	}
	if leftovers[0].Rect != NewRect(100, 0, 156, 256) {
		t.Errorf("unexpected right strip %+v", leftovers[0].Rect)
	}
}

func TestDetectLeftoversBothStripsLargestFirst(t *testing.T) {
	a := Atlas{
		Bounds: NewSize(256, 256),
		Placements: []Placement{
			{Rect: PlacedRect{Rect: NewRect(0, 0, 200, 50)}},
		},
	}
	leftovers := DetectLeftovers(a)
	if len(leftovers) != 2 {
		t.Fatalf("expected 2 leftovers, got %d", len(leftovers))
	}
	// Bottom: 200x206, right: 56x256
	if leftovers[0].Rect != NewRect(0, 50, 200, 206) {
		t.Errorf("expected bottom strip first, got %+v", leftovers[0].Rect)
	}
	if leftovers[1].Rect != NewRect(200, 0, 56, 256) {
		t.Errorf("expected right strip second, got %+v", leftovers[1].Rect)
	}
	for _, l := range leftovers {
		for _, p := range a.Placements {
			if l.Rect.Intersects(p.Rect.Rect) {
				t.Errorf("leftover %+v overlaps placement %+v", l.Rect, p.Rect.Rect)
			}
		}
	}
}

func TestDetectLeftoversIgnoresThinStrips(t *testing.T) {
	a := Atlas{
		Bounds: NewSize(100, 100),
		Placements: []Placement{
			{Rect: PlacedRect{Rect: NewRect(0, 0, 90, 95)}},
		},
	}
	if got := DetectLeftovers(a); len(got) != 0 {
		t.Errorf("expected no leftovers, got %+v", got)
	}
}

func TestTotalLeftoverArea(t *testing.T) {
	l := Layout{Atlases: []Atlas{
		{Index: 0, Bounds: NewSize(32, 32)},
		{Index: 1, Bounds: NewSize(16, 16)},
	}}
	all := DetectAllLeftovers(l)
	if got := TotalLeftoverArea(all); got != 32*32+16*16 {
		t.Errorf("expected %d, got %d", 32*32+16*16, got)
	}
}
