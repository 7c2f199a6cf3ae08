package board

import (
	"math"
	"testing"
)

func hitscan(b *Board, art ArtInfoProvider, start Vec3, sector int, dir Vec3, flags HitscanFlags) Hit {
	var h Hit
	Hitscan(b, art, NewSectorSprites(b), start, sector, dir, flags, &h)
	return h
}

func TestHitscanSingleRoom(t *testing.T) {
	e := newSquareEditor(t)
	start := Vec3{512, 512, -8192}

	tests := []struct {
		name string
		dir  Vec3
		kind HitKind
		wall int
		t    float64
	}{
		{"east wall", Vec3{1, 0, 0}, HitMidWall, 1, 512},
		{"north wall", Vec3{0, -1, 0}, HitMidWall, 0, 512},
		{"floor", Vec3{0, 0, 1}, HitFloor, -1, 8192},
		{"ceiling", Vec3{0, 0, -1}, HitCeiling, -1, 8192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := hitscan(e.Board, nil, start, 0, tt.dir, 0)
			if h.Kind != tt.kind || h.Wall != tt.wall || h.Sector != 0 {
				t.Fatalf("hit %v wall %d sector %d, want %v wall %d sector 0", h.Kind, h.Wall, h.Sector, tt.kind, tt.wall)
			}
			if math.Abs(h.T-tt.t) > 1e-9 {
				t.Errorf("T = %v, want %v", h.T, tt.t)
			}
		})
	}
}

func TestHitscanThroughPortal(t *testing.T) {
	start := Vec3{512, 512, -8192}
	east := Vec3{1, 0, 0}

	t.Run("pass through", func(t *testing.T) {
		e := twoRooms(t)
		h := hitscan(e.Board, nil, start, 0, east, 0)
		if h.Kind != HitMidWall || h.Sector != 1 || h.Wall != 5 {
			t.Fatalf("hit %v sector %d wall %d, want mid wall 5 of sector 1", h.Kind, h.Sector, h.Wall)
		}
		if h.X != 2048 || h.Y != 512 {
			t.Errorf("hit point (%v, %v), want (2048, 512)", h.X, h.Y)
		}
	})
	t.Run("blocking portal", func(t *testing.T) {
		e := twoRooms(t)
		e.Board.Walls[1].Cstat |= WallHitscan
		h := hitscan(e.Board, nil, start, 0, east, 0)
		if h.Kind != HitMidWall || h.Wall != 1 {
			t.Errorf("hit %v wall %d, want mid wall 1", h.Kind, h.Wall)
		}
	})
	t.Run("lower step", func(t *testing.T) {
		e := twoRooms(t)
		e.Board.Sectors[1].Floor.Z = -10000
		h := hitscan(e.Board, nil, start, 0, east, 0)
		if h.Kind != HitLowerWall || h.Wall != 1 {
			t.Errorf("hit %v wall %d, want lower wall 1", h.Kind, h.Wall)
		}
	})
	t.Run("upper step", func(t *testing.T) {
		e := twoRooms(t)
		e.Board.Sectors[1].Ceiling.Z = -4096
		h := hitscan(e.Board, nil, start, 0, east, 0)
		if h.Kind != HitUpperWall || h.Wall != 1 {
			t.Errorf("hit %v wall %d, want upper wall 1", h.Kind, h.Wall)
		}
	})
	t.Run("unknown start sector", func(t *testing.T) {
		e := twoRooms(t)
		h := hitscan(e.Board, nil, start, -1, Vec3{0, 0, 1}, 0)
		if h.Kind != HitFloor || h.Sector != 0 {
			t.Errorf("hit %v sector %d, want floor of sector 0", h.Kind, h.Sector)
		}
	})
}

func TestHitscanSprites(t *testing.T) {
	art := StaticArt{1: {W: 32, H: 32}}
	start := Vec3{512, 512, -4096}
	east := Vec3{1, 0, 0}

	setup := func(t *testing.T, cstat SpriteStat) *Editor {
		e := newSquareEditor(t)
		sp, err := e.InsertSprite(800, 512, 0, 0)
		if err != nil {
			t.Fatalf("InsertSprite() failed: %v", err)
		}
		e.Board.Sprites[sp].Picnum = 1
		e.Board.Sprites[sp].Cstat = cstat
		return e
	}

	t.Run("face", func(t *testing.T) {
		e := setup(t, 0)
		h := hitscan(e.Board, art, start, 0, east, 0)
		if h.Kind != HitSprite || h.Sprite != 0 || h.T != 288 {
			t.Errorf("hit %v sprite %d at %v, want sprite 0 at 288", h.Kind, h.Sprite, h.T)
		}
	})
	t.Run("over the top", func(t *testing.T) {
		e := setup(t, 0)
		h := hitscan(e.Board, art, Vec3{512, 512, -9000}, 0, east, 0)
		if h.Kind != HitMidWall {
			t.Errorf("hit %v, want mid wall", h.Kind)
		}
	})
	t.Run("wall aligned", func(t *testing.T) {
		e := setup(t, spriteAlignLo)
		h := hitscan(e.Board, art, start, 0, east, 0)
		if h.Kind != HitSprite {
			t.Errorf("hit %v, want sprite", h.Kind)
		}
	})
	t.Run("floor aligned", func(t *testing.T) {
		e := setup(t, spriteAlignHi)
		e.Board.Sprites[0].Z = -2048
		h := hitscan(e.Board, art, Vec3{800, 512, -8192}, 0, Vec3{0, 0, 1}, 0)
		if h.Kind != HitSprite || h.T != 6144 {
			t.Errorf("hit %v at %v, want sprite at 6144", h.Kind, h.T)
		}
	})
	t.Run("invisible", func(t *testing.T) {
		e := setup(t, SpriteInvisible)
		if h := hitscan(e.Board, art, start, 0, east, 0); h.Kind != HitMidWall {
			t.Errorf("hit %v, want mid wall", h.Kind)
		}
	})
	t.Run("suppressed", func(t *testing.T) {
		e := setup(t, 0)
		if h := hitscan(e.Board, art, start, 0, east, HitscanNoSprites); h.Kind != HitMidWall {
			t.Errorf("hit %v, want mid wall", h.Kind)
		}
	})
	t.Run("unknown art", func(t *testing.T) {
		e := setup(t, 0)
		if h := hitscan(e.Board, nil, start, 0, east, 0); h.Kind != HitMidWall {
			t.Errorf("hit %v, want mid wall", h.Kind)
		}
	})
}

func TestHitscanSlab(t *testing.T) {
	e := newSquareEditor(t)
	ref, err := e.CreateNewSector(square(4096, 0, 512))
	if err != nil {
		t.Fatalf("CreateNewSector() failed: %v", err)
	}
	b := e.Board
	b.Sectors[ref].Ceiling.Z = -6000
	b.Sectors[ref].Floor.Z = -4000
	b.Sectors[0].Lotag = slabLotag
	b.Sectors[0].Hitag = ref

	h := hitscan(b, nil, Vec3{512, 512, -8192}, 0, Vec3{0, 0, 1}, 0)
	if h.Kind != HitFloor || h.T != 2192 {
		t.Errorf("hit %v at %v, want floor at 2192", h.Kind, h.T)
	}
	h = hitscan(b, nil, Vec3{512, 512, -1000}, 0, Vec3{0, 0, -1}, 0)
	if h.Kind != HitCeiling || h.T != 3000 {
		t.Errorf("hit %v at %v, want ceiling at 3000", h.Kind, h.T)
	}
}

func TestHitscanSlopedFloor(t *testing.T) {
	e := newSquareEditor(t)
	fl := &e.Board.Sectors[0].Floor
	fl.Heinum, fl.Stat = 256, PlaneSloped

	h := hitscan(e.Board, nil, Vec3{512, 512, -8192}, 0, Vec3{0, 0, 1}, 0)
	if h.Kind != HitFloor || math.Abs(h.Z-512) > 1e-9 {
		t.Errorf("hit %v at z %v, want floor at 512", h.Kind, h.Z)
	}
}

func TestHitKindString(t *testing.T) {
	if s := HitLowerWall.String(); s != "lower wall" {
		t.Errorf("String() = %q", s)
	}
	if s := HitKind(42).String(); s != "unknown" {
		t.Errorf("String() = %q", s)
	}
}

func TestHitscanSlabSurvivesSectorDeletion(t *testing.T) {
	e := NewEditor(nil, nil)
	for _, pts := range [][]Point{square(-4096, 0, 512), square(0, 0, 1024), square(4096, 0, 512)} {
		if _, err := e.CreateNewSector(pts); err != nil {
			t.Fatalf("CreateNewSector() failed: %v", err)
		}
	}
	b := e.Board
	b.Sectors[1].Lotag, b.Sectors[1].Hitag = slabLotag, 2
	b.Sectors[2].Ceiling.Z, b.Sectors[2].Floor.Z = -6000, -4000
	start, down := Vec3{512, 512, -8192}, Vec3{0, 0, 1}

	if err := e.DeleteSector(0); err != nil {
		t.Fatalf("DeleteSector() failed: %v", err)
	}
	if got := b.Sectors[0].Hitag; got != 1 {
		t.Fatalf("slab reference = %d, want 1", got)
	}
	if h := hitscan(b, nil, start, 0, down, 0); h.Kind != HitFloor || h.T != 2192 {
		t.Errorf("hit %v at %v, want floor at 2192", h.Kind, h.T)
	}

	if err := e.DeleteSector(1); err != nil {
		t.Fatalf("DeleteSector() failed: %v", err)
	}
	if sec := b.Sectors[0]; sec.Lotag != 0 || sec.Hitag != 0 {
		t.Errorf("slab kept lotag %d hitag %d after its reference was deleted", sec.Lotag, sec.Hitag)
	}
	if h := hitscan(b, nil, start, 0, down, 0); h.Kind != HitFloor || h.T != 8192 {
		t.Errorf("hit %v at %v, want floor at 8192", h.Kind, h.T)
	}
}

func TestHitscanCornerTieKeepsFirstWall(t *testing.T) {
	e := newSquareEditor(t)
	// (1024,1024) ends wall 1 and starts wall 2 at the same distance
	h := hitscan(e.Board, nil, Vec3{512, 512, -8192}, 0, Vec3{1, 1, 0}, 0)
	if h.Kind != HitMidWall || h.Wall != 1 {
		t.Errorf("hit %v wall %d, want mid wall 1", h.Kind, h.Wall)
	}
	if h.X != 1024 || h.Y != 1024 {
		t.Errorf("hit point (%v, %v), want (1024, 1024)", h.X, h.Y)
	}
}

// visitCounter is a SpriteIndex that counts the sectors it is asked about.
type visitCounter map[int]int

func (v visitCounter) SpritesBySector(s int) []int {
	v[s]++
	return nil
}

func TestHitscanVisitsSectorsOnce(t *testing.T) {
	e := newSquareEditor(t)
	first, err := e.CreateInnerLoop(0, square(256, 256, 512))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.FillInnerLoop(first); err != nil {
		t.Fatal(err)
	}

	// the ray crosses 0 -> 1 -> 0 before hitting the east wall
	visits := visitCounter{}
	var h Hit
	Hitscan(e.Board, nil, visits, Vec3{100, 512, -8192}, 0, Vec3{1, 0, 0}, 0, &h)
	if h.Kind != HitMidWall || h.Sector != 0 || h.Wall != 1 || h.T != 924 {
		t.Errorf("hit %v sector %d wall %d at %v, want mid wall 1 of sector 0 at 924", h.Kind, h.Sector, h.Wall, h.T)
	}
	if len(visits) != 2 || visits[0] != 1 || visits[1] != 1 {
		t.Errorf("visits = %v, want each of sectors 0 and 1 once", visits)
	}
}
