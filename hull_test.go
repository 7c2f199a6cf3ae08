package board

import (
	"errors"
	"math"
	"testing"
)

func TestBuildPortalHullMid(t *testing.T) {
	e := newSquareEditor(t)
	b := e.Board
	path := []HullSample{
		{X: 256, Y: -40, ZUp: -20000, ZDown: 2000, HasUp: true, HasDown: true},
		{X: 768, Y: 0, ZUp: -20000, ZDown: 2000, HasUp: true, HasDown: true},
	}

	created, err := e.BuildPortalHull(0, path, 512)
	if err != nil {
		t.Fatalf("BuildPortalHull() failed: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("BuildPortalHull() created %v, want 3 sectors", created)
	}
	// the source wall was split at 256 and 768
	for w, want := range []float64{256, 512, 256} {
		if l := b.WallLength(w); l != want {
			t.Errorf("WallLength(%d) = %v, want %v", w, l, want)
		}
		if b.Walls[w].NextSector != created[w] {
			t.Errorf("wall %d leads to sector %d, want %d", w, b.Walls[w].NextSector, created[w])
		}
	}

	mid := &b.Sectors[created[1]]
	if mid.Ceiling.Z != -20000 || mid.Floor.Z != 2000 || mid.Ceiling.Sloped() || mid.Floor.Sloped() {
		t.Errorf("middle sector planes %+v / %+v, want flat -20000 / 2000", mid.Ceiling, mid.Floor)
	}
	first := created[0]
	if z := b.CeilingZAt(first, 0, 0); math.Abs(z+16384) > 1 {
		t.Errorf("ramp ceiling at the corner = %v, want -16384", z)
	}
	if z := b.CeilingZAt(first, 256, 0); math.Abs(z+20000) > 1 {
		t.Errorf("ramp ceiling at the split = %v, want -20000", z)
	}
	if z := b.FloorZAt(first, 256, -300); math.Abs(z-2000) > 1 {
		t.Errorf("ramp floor at the split = %v, want 2000", z)
	}
	mustValidate(t, b)
	checkOuterLoops(t, b)
}

func TestBuildPortalHullUpOnly(t *testing.T) {
	e := newSquareEditor(t)
	b := e.Board
	path := []HullSample{{X: 512, Y: 0, ZUp: -18000, HasUp: true}}

	created, err := e.BuildPortalHull(0, path, 256)
	if err != nil {
		t.Fatalf("BuildPortalHull() failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("BuildPortalHull() created %v, want 2 sectors", created)
	}
	for _, s := range created {
		if z := b.FloorZAt(s, 512, -100); z != 0 {
			t.Errorf("sector %d floor = %v, want the source floor 0", s, z)
		}
		if z := b.CeilingZAt(s, 512, -100); math.Abs(z+18000) > 1 {
			t.Errorf("sector %d ceiling at the drag = %v, want -18000", s, z)
		}
	}
	mustValidate(t, b)
}

func TestBuildPortalHullSkipsUndefinedSegments(t *testing.T) {
	e := newSquareEditor(t)
	path := []HullSample{
		{X: 256, Y: 0, ZUp: -18000, HasUp: true},
		{X: 768, Y: 0, ZDown: 1000, HasDown: true},
	}
	created, err := e.BuildPortalHull(0, path, 256)
	if err != nil {
		t.Fatalf("BuildPortalHull() failed: %v", err)
	}
	// 0-256 is "up", 256-768 defines nothing in common, 768-1024 is "down"
	if len(created) != 2 {
		t.Errorf("BuildPortalHull() created %v, want 2 sectors", created)
	}
	if e.Board.IsPortal(1) {
		t.Error("middle piece became a portal")
	}
	mustValidate(t, e.Board)
}

func TestBuildPortalHullMergesDuplicates(t *testing.T) {
	e := newSquareEditor(t)
	hull := e.Board.hullPoints(0, []HullSample{
		{X: 512, Y: 0, ZUp: -17000, ZDown: 100, HasUp: true, HasDown: true},
		{X: 512, Y: 50, ZUp: -19000, ZDown: 50, HasUp: true, HasDown: true},
		{X: -300, Y: 0, ZUp: -30000, HasUp: true},
	})
	if len(hull) != 3 {
		t.Fatalf("hull has %d points, want 3", len(hull))
	}
	if hull[1].zUp != -19000 || hull[1].zDown != 100 {
		t.Errorf("merged sample %d/%d, want -19000/100", hull[1].zUp, hull[1].zDown)
	}
	if hull[0].zUp != -30000 {
		t.Errorf("clamped sample did not merge into the corner: %+v", hull[0])
	}
}

func TestBuildPortalHullRejects(t *testing.T) {
	tests := []struct {
		name  string
		wall  int
		depth int
		want  error
	}{
		{"portal", 1, 256, ErrIllegalTopology},
		{"zero depth", 0, 0, ErrIllegalTopology},
		{"missing wall", 42, 256, ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := twoRooms(t)
			ids, err := e.BuildPortalHull(tt.wall, nil, tt.depth)
			if !errors.Is(err, tt.want) {
				t.Errorf("BuildPortalHull() = %v, want %v", err, tt.want)
			}
			if ids != nil {
				t.Errorf("BuildPortalHull() returned sectors %v with an error", ids)
			}
		})
	}
}
