package board

import (
	"errors"
	"testing"
)

func TestJoinSectors(t *testing.T) {
	e := twoRooms(t)
	b := e.Board
	sp, err := e.InsertSprite(1500, 500, 0, 1)
	if err != nil {
		t.Fatalf("InsertSprite() failed: %v", err)
	}
	h := e.Refs.Walls.Ref(5)

	joined, err := e.JoinSectors(0, 1)
	if err != nil {
		t.Fatalf("JoinSectors() failed: %v", err)
	}
	if joined != 0 || b.NumSectors() != 1 {
		t.Fatalf("JoinSectors() = %d with %d sectors, want 0 with 1", joined, b.NumSectors())
	}
	if b.NumWalls() != 6 {
		t.Errorf("NumWalls() = %d, want 6", b.NumWalls())
	}
	want := []Point{{0, 0}, {1024, 0}, {2048, 0}, {2048, 1024}, {1024, 1024}, {0, 1024}}
	got, _ := b.LoopPoints(0)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if b.Sprites[sp].SectNum != 0 {
		t.Errorf("sprite sector = %d, want 0", b.Sprites[sp].SectNum)
	}
	// old wall 5 ran (2048,0)->(2048,1024)
	if w := e.Refs.Walls.Val(h); w < 0 || b.point(w) != (Point{2048, 0}) {
		t.Errorf("tracked wall = %d, want the wall at (2048, 0)", w)
	}
	mustValidate(t, b)
}

func TestJoinSectorsRejectsStrangers(t *testing.T) {
	e := newSquareEditor(t)
	if _, err := e.CreateNewSector(square(4096, 0, 512)); err != nil {
		t.Fatalf("CreateNewSector() failed: %v", err)
	}
	if _, err := e.JoinSectors(0, 1); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("JoinSectors() = %v, want ErrIllegalTopology", err)
	}
	if _, err := e.JoinSectors(0, 0); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("JoinSectors(0, 0) = %v, want ErrIllegalTopology", err)
	}
}

func TestJoinSectorsAroundHole(t *testing.T) {
	// a U shaped sector 0 and sector 1 closing it leave a hole when joined
	e := NewEditor(nil, nil)
	b := e.Board
	u := []Point{{0, 0}, {3072, 0}, {3072, 2048}, {2048, 2048}, {2048, 1024}, {1024, 1024}, {1024, 2048}, {0, 2048}}
	if _, err := e.CreateNewSector(u); err != nil {
		t.Fatalf("CreateNewSector() failed: %v", err)
	}
	if _, err := e.CreateNewSector([]Point{{0, 2048}, {1024, 2048}, {2048, 2048}, {3072, 2048}, {3072, 3072}, {0, 3072}}); err != nil {
		t.Fatalf("CreateNewSector() failed: %v", err)
	}
	joined, err := e.JoinSectors(0, 1)
	if err != nil {
		t.Fatalf("JoinSectors() failed: %v", err)
	}
	loops, err := b.sectorLoops(joined)
	if err != nil {
		t.Fatalf("sectorLoops() failed: %v", err)
	}
	if len(loops) != 2 {
		t.Fatalf("joined sector has %d loops, want 2", len(loops))
	}
	mustValidate(t, b)
	checkOuterLoops(t, b)
}

func TestSplitSectorDiagonal(t *testing.T) {
	e := NewEditor(nil, nil)
	b := e.Board
	if _, err := e.CreateNewSector(square(0, 0, 2048)); err != nil {
		t.Fatalf("CreateNewSector() failed: %v", err)
	}
	h := e.Refs.Walls.Ref(0)

	ns, err := e.SplitSector(0, []Point{{0, 0}, {2048, 2048}})
	if err != nil {
		t.Fatalf("SplitSector() failed: %v", err)
	}
	if b.NumSectors() != 2 || b.NumWalls() != 6 {
		t.Fatalf("board has %d sectors, %d walls; want 2, 6", b.NumSectors(), b.NumWalls())
	}
	w := e.Refs.Walls.Val(h)
	if b.SectorOfWall(w) != ns || b.point(w) != (Point{0, 0}) {
		t.Errorf("tracked wall %d is in sector %d, want the (0, 0) wall of %d", w, b.SectorOfWall(w), ns)
	}
	if !b.InSector(1500, 100, ns) || !b.InSector(100, 1500, 0) {
		t.Error("halves are on the wrong side of the diagonal")
	}
	mustValidate(t, b)
}

func TestSplitSectorRejects(t *testing.T) {
	tests := []struct {
		name string
		path []Point
		want error
	}{
		{"too short", []Point{{0, 0}}, ErrIllegalTopology},
		{"not a vertex", []Point{{0, 0}, {100, 100}}, ErrIllegalTopology},
		{"same vertex", []Point{{0, 0}, {500, 500}, {0, 0}}, ErrIllegalTopology},
		{"along a wall", []Point{{0, 0}, {1024, 0}}, ErrIllegalTopology},
		{"outside", []Point{{0, 0}, {-500, 500}, {0, 1024}}, ErrIllegalTopology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newSquareEditor(t)
			if _, err := e.SplitSector(0, tt.path); !errors.Is(err, tt.want) {
				t.Errorf("SplitSector() = %v, want %v", err, tt.want)
			}
			if e.Board.NumSectors() != 1 {
				t.Errorf("failed split changed the board")
			}
		})
	}
}

func TestDeleteSectorWithNeighbour(t *testing.T) {
	e := twoRooms(t)
	b := e.Board
	if _, err := e.InsertSprite(512, 512, 0, 0); err != nil {
		t.Fatal(err)
	}
	keep, err := e.InsertSprite(1500, 500, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	hs := e.Refs.Sectors.Ref(1)
	hp := e.Refs.Sprites.Ref(keep)

	if err := e.DeleteSector(0); err != nil {
		t.Fatalf("DeleteSector() failed: %v", err)
	}
	if b.NumSectors() != 1 || b.NumWalls() != 4 || b.NumSprites() != 1 {
		t.Fatalf("board has %d sectors, %d walls, %d sprites", b.NumSectors(), b.NumWalls(), b.NumSprites())
	}
	if got := e.Refs.Sectors.Val(hs); got != 0 {
		t.Errorf("tracked sector = %d, want 0", got)
	}
	if got := e.Refs.Sprites.Val(hp); got != 0 {
		t.Errorf("tracked sprite = %d, want 0", got)
	}
	if b.Sprites[0].SectNum != 0 {
		t.Errorf("sprite sector = %d, want 0", b.Sprites[0].SectNum)
	}
	for w := range b.Walls {
		if b.IsPortal(w) {
			t.Errorf("wall %d is still a portal", w)
		}
	}
	mustValidate(t, b)
}

func TestInnerLoops(t *testing.T) {
	e := newSquareEditor(t)
	b := e.Board

	first, err := e.CreateInnerLoop(0, square(256, 256, 512))
	if err != nil {
		t.Fatalf("CreateInnerLoop() failed: %v", err)
	}
	if b.NumWalls() != 8 {
		t.Fatalf("NumWalls() = %d, want 8", b.NumWalls())
	}
	mustValidate(t, b)

	if err := e.DeleteLoop(0); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("DeleteLoop() on outer loop = %v, want ErrIllegalTopology", err)
	}
	if _, err := e.CreateInnerLoop(0, square(900, 900, 512)); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("CreateInnerLoop() crossing the boundary = %v, want ErrIllegalTopology", err)
	}

	filled, err := e.FillInnerLoop(first)
	if err != nil {
		t.Fatalf("FillInnerLoop() failed: %v", err)
	}
	if _, err := e.FillInnerLoop(first); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("second FillInnerLoop() = %v, want ErrIllegalTopology", err)
	}
	if err := e.DeleteLoop(first); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("DeleteLoop() on filled loop = %v, want ErrIllegalTopology", err)
	}
	if b.Sectors[filled].Floor.Z != b.Sectors[0].Floor.Z {
		t.Error("filled sector did not inherit its parent's floor")
	}
	mustValidate(t, b)

	if err := e.DeleteSector(filled); err != nil {
		t.Fatalf("DeleteSector() failed: %v", err)
	}
	if err := e.DeleteLoop(first); err != nil {
		t.Fatalf("DeleteLoop() failed: %v", err)
	}
	if b.NumWalls() != 4 {
		t.Errorf("NumWalls() = %d, want 4", b.NumWalls())
	}
	mustValidate(t, b)
}

func TestSetFirstWall(t *testing.T) {
	e := newSquareEditor(t)
	b := e.Board
	if _, err := e.CreateInnerLoop(0, square(256, 256, 512)); err != nil {
		t.Fatal(err)
	}
	h := e.Refs.Walls.Ref(2)
	hole := e.Refs.Walls.Ref(5)

	if err := e.SetFirstWall(0, 2); err != nil {
		t.Fatalf("SetFirstWall() failed: %v", err)
	}
	if p := b.point(0); p != (Point{1024, 1024}) {
		t.Errorf("first wall starts at %v, want (1024, 1024)", p)
	}
	if got := e.Refs.Walls.Val(h); got != 0 {
		t.Errorf("tracked wall = %d, want 0", got)
	}
	if got := e.Refs.Walls.Val(hole); got != 5 {
		t.Errorf("tracked hole wall = %d, want 5", got)
	}
	if err := e.SetFirstWall(0, 5); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("SetFirstWall() on hole = %v, want ErrIllegalTopology", err)
	}
	mustValidate(t, b)
}

func TestOperatorsKeepOneOuterLoop(t *testing.T) {
	e := twoRooms(t)
	steps := []func() error{
		func() error { _, err := e.SplitWall(0, 512, 0); return err },
		func() error { return e.PushWall(0, 128, false) },
		func() error { _, err := e.CreateInnerLoop(1, square(1280, 256, 256)); return err },
		func() error { _, err := e.FillInnerLoop(10); return err },
		func() error { _, err := e.SplitSector(0, []Point{{512, 0}, {1024, 1024}}); return err },
		func() error { _, err := e.JoinSectors(0, 3); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		mustValidate(t, e.Board)
		checkOuterLoops(t, e.Board)
	}
}

func TestBuildRejectsShortLoops(t *testing.T) {
	e := newSquareEditor(t)
	sb := &SectorBuilder{}
	sb.AddWall(e.Factory.NewWall()).AddWall(e.Factory.NewWall()).Loop()
	if err := sb.Build(e.Board, 0, e.Refs, e.Factory); !errors.Is(err, ErrIllegalTopology) {
		t.Errorf("Build() with a 2-wall loop = %v, want ErrIllegalTopology", err)
	}
	if e.Board.NumWalls() != 4 {
		t.Errorf("NumWalls() = %d, want 4", e.Board.NumWalls())
	}
}

func TestBuildRelinksTwins(t *testing.T) {
	e := twoRooms(t)
	b := e.Board
	// rebuild sector 1 from its own walls in reverse storage order
	sb := &SectorBuilder{}
	for _, w := range []int{6, 7, 4, 5} {
		sb.AddFrom(w, b.Walls[w])
	}
	h := e.Refs.Walls.Ref(7)
	if err := sb.Build(b, 1, e.Refs, e.Factory); err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if got := e.Refs.Walls.Val(h); got != 5 {
		t.Errorf("tracked wall = %d, want 5", got)
	}
	if b.Walls[1].NextWall != 5 || b.Walls[5].NextWall != 1 {
		t.Errorf("portal links %d/%d, want 5/1", b.Walls[1].NextWall, b.Walls[5].NextWall)
	}
	mustValidate(t, b)
}
