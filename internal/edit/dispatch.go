package edit

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/stuarthighley/board"
)

// Result records the outcome of one op. ID is the element the op created or
// returned, -1 when it has none.
type Result struct {
	Op      Op
	ID      int
	IDs     []int
	Err     error
	Invalid error
}

// Dispatcher applies ops to an editor's board.
type Dispatcher struct {
	Editor *board.Editor
	Logger *log.Logger
	// Validate checks the whole board after every op.
	Validate bool
	// HullDepth is used by portal_hull ops that give no depth.
	HullDepth int
}

func NewDispatcher(e *board.Editor, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{Editor: e, Logger: logger}
}

// Apply runs a single op.
func (d *Dispatcher) Apply(op Op) Result {
	r := Result{Op: op, ID: -1}
	r.ID, r.IDs, r.Err = d.apply(op)
	if r.Err == nil && d.Validate {
		r.Invalid = d.Editor.Board.Validate()
	}
	switch {
	case r.Err != nil:
		d.Logger.Warn("op failed", "op", op.Name(), "err", r.Err)
	case r.Invalid != nil:
		d.Logger.Error("op broke the board", "op", op.Name(), "err", r.Invalid)
	default:
		d.Logger.Info("op", "op", op.Name(), "id", r.ID)
	}
	return r
}

func (d *Dispatcher) apply(op Op) (int, []int, error) {
	e := d.Editor
	one := func(id int, err error) (int, []int, error) { return id, nil, err }
	none := func(err error) (int, []int, error) { return -1, nil, err }

	switch o := op.(type) {
	case SplitWall:
		return one(e.SplitWall(o.Wall, o.X, o.Y))
	case MoveWall:
		return none(e.MoveWall(o.Wall, o.X, o.Y))
	case PushWall:
		return none(e.PushWall(o.Wall, o.Dist, o.NewPoints))
	case DeleteWall:
		return none(e.DeleteWall(o.Wall))
	case MergePoints:
		return none(e.MergePoints(o.Wall))
	case CreateSector:
		return one(e.CreateNewSector(o.Points))
	case SplitSector:
		return one(e.SplitSector(o.Sector, o.Points))
	case JoinSectors:
		return one(e.JoinSectors(o.A, o.B))
	case DeleteSector:
		return none(e.DeleteSector(o.Sector))
	case CreateInnerLoop:
		return one(e.CreateInnerLoop(o.Sector, o.Points))
	case FillInnerLoop:
		return one(e.FillInnerLoop(o.Wall))
	case DeleteLoop:
		return none(e.DeleteLoop(o.Wall))
	case SetFirstWall:
		return none(e.SetFirstWall(o.Sector, o.Wall))
	case InsertSprite:
		return one(e.InsertSprite(o.X, o.Y, o.Z, o.Sector))
	case MoveSprite:
		return none(e.MoveSprite(o.Sprite, o.X, o.Y, o.Z))
	case DeleteSprite:
		return none(e.DeleteSprite(o.Sprite))
	case PortalHull:
		depth := o.Depth
		if depth == 0 {
			depth = d.HullDepth
		}
		ids, err := e.BuildPortalHull(o.Wall, o.samples(), depth)
		id := -1
		if len(ids) > 0 {
			id = ids[0]
		}
		return id, ids, err
	default:
		return none(fmt.Errorf("unsupported op %T", op))
	}
}

// Run applies the script in order and stops at the first failing or
// board-breaking op. Ops already applied stay applied.
func (d *Dispatcher) Run(ctx context.Context, s Script) ([]Result, error) {
	results := make([]Result, 0, len(s.Ops))
	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := d.Apply(op)
		results = append(results, r)
		if r.Err != nil {
			return results, fmt.Errorf("op %d (%s): %w", i, op.Name(), r.Err)
		}
		if r.Invalid != nil {
			return results, fmt.Errorf("op %d (%s): %w", i, op.Name(), r.Invalid)
		}
	}
	return results, nil
}
