package edit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stuarthighley/board"
)

const roomsScript = `
ops:
  - op: create_sector
    points: [{x: 0, y: 0}, {x: 1024, y: 0}, {x: 1024, y: 1024}, {x: 0, y: 1024}]
  - op: create_sector
    points: [{x: 1024, y: 0}, {x: 2048, y: 0}, {x: 2048, y: 1024}, {x: 1024, y: 1024}]
  - op: split_wall
    wall: 0
    x: 512
    y: 0
  - op: insert_sprite
    sector: 1
    x: 1500
    y: 500
  - op: move_sprite
    sprite: 0
    x: 500
    y: 500
  - op: join_sectors
    a: 0
    b: 1
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(roomsScript))
	if err != nil {
		t.Fatalf("ParseScript() failed: %v", err)
	}
	if len(s.Ops) != 6 {
		t.Fatalf("got %d ops, want 6", len(s.Ops))
	}
	cs, ok := s.Ops[0].(CreateSector)
	if !ok || len(cs.Points) != 4 || cs.Points[2] != (board.Point{X: 1024, Y: 1024}) {
		t.Errorf("op 0 = %#v", s.Ops[0])
	}
	if sw, ok := s.Ops[2].(SplitWall); !ok || sw.X != 512 {
		t.Errorf("op 2 = %#v", s.Ops[2])
	}
	if j, ok := s.Ops[5].(JoinSectors); !ok || j.B != 1 {
		t.Errorf("op 5 = %#v", s.Ops[5])
	}
}

func TestParseScriptRejects(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown op", "ops:\n  - op: paint\n", `unknown op "paint"`},
		{"bad field", "ops:\n  - op: delete_wall\n    wall: west\n", "delete_wall"},
		{"not a list", "ops: 3\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseScript() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestRunScript(t *testing.T) {
	s, err := ParseScript([]byte(roomsScript))
	if err != nil {
		t.Fatal(err)
	}
	e := board.NewEditor(nil, nil)
	d := NewDispatcher(e, nil)
	d.Validate = true

	results, err := d.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	if results[1].ID != 1 || results[2].ID != 1 || results[3].ID != 0 {
		t.Errorf("ids = %d %d %d, want 1 1 0", results[1].ID, results[2].ID, results[3].ID)
	}
	b := e.Board
	if b.NumSectors() != 1 {
		t.Errorf("NumSectors() = %d, want 1", b.NumSectors())
	}
	if b.Sprites[0].SectNum != 0 {
		t.Errorf("sprite sector = %d, want 0", b.Sprites[0].SectNum)
	}
}

func TestRunStopsAtFailure(t *testing.T) {
	s := Script{Ops: []Op{
		CreateSector{Points: []board.Point{{X: 0, Y: 0}, {X: 512, Y: 0}, {X: 512, Y: 512}, {X: 0, Y: 512}}},
		DeleteSector{Sector: 4},
		DeleteWall{Wall: 0},
	}}
	e := board.NewEditor(nil, nil)
	results, err := NewDispatcher(e, nil).Run(context.Background(), s)
	if !errors.Is(err, board.ErrInvalidID) {
		t.Fatalf("Run() = %v, want ErrInvalidID", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
	if e.Board.NumWalls() != 4 {
		t.Errorf("NumWalls() = %d, want 4", e.Board.NumWalls())
	}
}

func TestRunHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := Script{Ops: []Op{DeleteSector{Sector: 0}}}
	results, err := NewDispatcher(board.NewEditor(nil, nil), nil).Run(ctx, s)
	if !errors.Is(err, context.Canceled) || len(results) != 0 {
		t.Errorf("Run() = %d results, %v; want 0, context.Canceled", len(results), err)
	}
}

func TestPortalHullOp(t *testing.T) {
	script := `
ops:
  - op: create_sector
    points: [{x: 0, y: 0}, {x: 1024, y: 0}, {x: 1024, y: 1024}, {x: 0, y: 1024}]
  - op: portal_hull
    wall: 0
    path:
      - {x: 512, y: -10, up: -20000}
`
	path := filepath.Join(t.TempDir(), "hull.yaml")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript() failed: %v", err)
	}
	hull := s.Ops[1].(PortalHull)
	smp := hull.samples()
	if !smp[0].HasUp || smp[0].HasDown || smp[0].ZUp != -20000 {
		t.Errorf("samples() = %+v", smp)
	}

	e := board.NewEditor(nil, nil)
	d := NewDispatcher(e, nil)
	d.HullDepth = 512
	results, err := d.Run(context.Background(), s)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if got := results[1].IDs; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("hull sectors = %v, want [1 2]", got)
	}
	if err := e.Board.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}
