// Package edit turns YAML edit scripts into board operations and applies
// them through a board.Editor.
package edit

import "github.com/stuarthighley/board"

// Op is one structural edit. The set of variants is closed.
type Op interface {
	Name() string
	op()
}

type SplitWall struct {
	Wall int `yaml:"wall"`
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
}

type MoveWall struct {
	Wall int `yaml:"wall"`
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
}

type PushWall struct {
	Wall      int  `yaml:"wall"`
	Dist      int  `yaml:"dist"`
	NewPoints bool `yaml:"new_points"`
}

type DeleteWall struct {
	Wall int `yaml:"wall"`
}

type MergePoints struct {
	Wall int `yaml:"wall"`
}

type CreateSector struct {
	Points []board.Point `yaml:"points"`
}

type SplitSector struct {
	Sector int           `yaml:"sector"`
	Points []board.Point `yaml:"points"`
}

type JoinSectors struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
}

type DeleteSector struct {
	Sector int `yaml:"sector"`
}

type CreateInnerLoop struct {
	Sector int           `yaml:"sector"`
	Points []board.Point `yaml:"points"`
}

type FillInnerLoop struct {
	Wall int `yaml:"wall"`
}

type DeleteLoop struct {
	Wall int `yaml:"wall"`
}

type SetFirstWall struct {
	Sector int `yaml:"sector"`
	Wall   int `yaml:"wall"`
}

type InsertSprite struct {
	Sector int `yaml:"sector"`
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Z      int `yaml:"z"`
}

type MoveSprite struct {
	Sprite int `yaml:"sprite"`
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Z      int `yaml:"z"`
}

type DeleteSprite struct {
	Sprite int `yaml:"sprite"`
}

// HullPoint is a drag sample. A missing Up or Down leaves that plane
// undefined at the sample.
type HullPoint struct {
	X    int  `yaml:"x"`
	Y    int  `yaml:"y"`
	Up   *int `yaml:"up"`
	Down *int `yaml:"down"`
}

type PortalHull struct {
	Wall  int         `yaml:"wall"`
	Depth int         `yaml:"depth"`
	Path  []HullPoint `yaml:"path"`
}

func (SplitWall) Name() string       { return "split_wall" }
func (MoveWall) Name() string        { return "move_wall" }
func (PushWall) Name() string        { return "push_wall" }
func (DeleteWall) Name() string      { return "delete_wall" }
func (MergePoints) Name() string     { return "merge_points" }
func (CreateSector) Name() string    { return "create_sector" }
func (SplitSector) Name() string     { return "split_sector" }
func (JoinSectors) Name() string     { return "join_sectors" }
func (DeleteSector) Name() string    { return "delete_sector" }
func (CreateInnerLoop) Name() string { return "create_inner_loop" }
func (FillInnerLoop) Name() string   { return "fill_inner_loop" }
func (DeleteLoop) Name() string      { return "delete_loop" }
func (SetFirstWall) Name() string    { return "set_first_wall" }
func (InsertSprite) Name() string    { return "insert_sprite" }
func (MoveSprite) Name() string      { return "move_sprite" }
func (DeleteSprite) Name() string    { return "delete_sprite" }
func (PortalHull) Name() string      { return "portal_hull" }

func (SplitWall) op()       {}
func (MoveWall) op()        {}
func (PushWall) op()        {}
func (DeleteWall) op()      {}
func (MergePoints) op()     {}
func (CreateSector) op()    {}
func (SplitSector) op()     {}
func (JoinSectors) op()     {}
func (DeleteSector) op()    {}
func (CreateInnerLoop) op() {}
func (FillInnerLoop) op()   {}
func (DeleteLoop) op()      {}
func (SetFirstWall) op()    {}
func (InsertSprite) op()    {}
func (MoveSprite) op()      {}
func (DeleteSprite) op()    {}
func (PortalHull) op()      {}

// samples converts the drag path for board.BuildPortalHull.
func (p PortalHull) samples() []board.HullSample {
	out := make([]board.HullSample, len(p.Path))
	for i, hp := range p.Path {
		out[i] = board.HullSample{X: hp.X, Y: hp.Y}
		if hp.Up != nil {
			out[i].ZUp, out[i].HasUp = *hp.Up, true
		}
		if hp.Down != nil {
			out[i].ZDown, out[i].HasDown = *hp.Down, true
		}
	}
	return out
}
