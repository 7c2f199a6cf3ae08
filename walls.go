package board

import (
	"errors"
	"math"

	"github.com/stuarthighley/board/tracker"
)

// insertWall splits w at (x, y) on w's side only. The new wall is w+1.
func (e *Editor) insertWall(w, x, y int) (int, error) {
	b := e.Board
	s := b.SectorOfWall(w)
	if s < 0 {
		return -1, corrupted("wall %d has no sector", w)
	}
	if err := b.moveWalls(s, w, 1, e.Refs, e.Factory); err != nil {
		return -1, err
	}
	nw := e.Factory.CloneWall(&b.Walls[w])
	nw.X, nw.Y = x, y
	b.Walls[w].Point2 = w + 1
	b.Walls[w+1] = nw
	e.fixXRepeat(w, w+1)
	return w + 1, nil
}

// InsertWall splits the solid wall w at (x, y) and returns the id of the new
// wall, which runs from (x, y) to w's old end. Portal walls need SplitWall.
func (e *Editor) InsertWall(w, x, y int) (int, error) {
	b := e.Board
	if !b.validWall(w) {
		return -1, invalidWall(w)
	}
	if b.Walls[w].NextWall >= 0 {
		return -1, illegal("wall %d is a portal", w)
	}
	nw, err := e.insertWall(w, x, y)
	if err != nil {
		return -1, err
	}
	logger.Debug("insert wall", "wall", w, "x", x, "y", y, "new", nw)
	return nw, nil
}

// SplitWall splits w at (x, y), splitting its twin too when w is a portal.
// It returns the id of the new wall on w's side.
func (e *Editor) SplitWall(w, x, y int) (int, error) {
	b := e.Board
	if !b.validWall(w) {
		return -1, invalidWall(w)
	}
	twin := b.Walls[w].NextWall
	if twin < 0 {
		return e.InsertWall(w, x, y)
	}
	nw, err := tracker.TrackValue(e.Refs.Walls, func(sc *tracker.Scope) (int, error) {
		hw, ht := sc.Ref(w), sc.Ref(twin)
		if _, err := e.insertWall(w, x, y); err != nil {
			return -1, err
		}
		if _, err := e.insertWall(sc.Val(ht), x, y); err != nil {
			return -1, err
		}
		w, twin := sc.Val(hw), sc.Val(ht)
		// w|w+1 now mirror twin+1|twin
		b.link(w, twin+1)
		b.link(w+1, twin)
		return w + 1, nil
	})
	if err != nil {
		return -1, err
	}
	logger.Debug("split wall", "wall", w, "x", x, "y", y, "new", nw)
	return nw, nil
}

// MoveWall moves the start vertex of w, and with it every wall sharing that
// vertex, to (x, y).
func (e *Editor) MoveWall(w, x, y int) error {
	b := e.Board
	if !b.validWall(w) {
		return invalidWall(w)
	}
	connected, err := b.ConnectedWalls(w)
	if err != nil {
		return err
	}
	for _, c := range connected {
		b.Walls[c].X, b.Walls[c].Y = x, y
	}
	for _, c := range connected {
		p, err := b.LastWall(c)
		if err != nil {
			return err
		}
		e.fixXRepeat(c, p)
	}
	logger.Debug("move wall", "wall", w, "x", x, "y", y, "connected", len(connected))
	return nil
}

// PushWall moves the solid wall w along its normal by dist units, outward
// for positive values. An endpoint whose neighbouring wall is collinear with
// the push is slid along that wall; otherwise a new wall is inserted to
// connect the old and new position. alwaysNewPoints forces the latter.
func (e *Editor) PushWall(w, dist int, alwaysNewPoints bool) error {
	b := e.Board
	if !b.validWall(w) {
		return invalidWall(w)
	}
	if b.Walls[w].NextWall >= 0 {
		return illegal("wall %d is a portal", w)
	}
	if dist == 0 {
		return nil
	}
	prev, err := b.LastWall(w)
	if err != nil {
		return err
	}
	next := b.Walls[w].Point2
	p0, p1, p2, p3 := b.point(prev), b.point(w), b.point(next), b.point(b.Walls[next].Point2)

	nx, ny := b.WallNormal(w)
	if nx == 0 && ny == 0 {
		return illegal("wall %d has zero length", w)
	}
	ox, oy := nx*float64(dist), ny*float64(dist)
	np1 := Point{round(float64(p1.X) + ox), round(float64(p1.Y) + oy)}
	np2 := Point{round(float64(p2.X) + ox), round(float64(p2.Y) + oy)}

	collinear := func(a, c Point) bool {
		dx, dy := float64(c.X-a.X), float64(c.Y-a.Y)
		l := length(dx, dy)
		return l > 0 && math.Abs(cross(dx, dy, nx, ny)) < 1e-6*l
	}
	extendStart := !alwaysNewPoints && collinear(p0, p1)
	extendEnd := !alwaysNewPoints && collinear(p2, p3)

	if extendStart {
		if err := e.MoveWall(w, np1.X, np1.Y); err != nil {
			return err
		}
	}
	if extendEnd {
		if err := e.MoveWall(next, np2.X, np2.Y); err != nil {
			return err
		}
	}
	switch {
	case !extendStart && !extendEnd:
		if _, err := e.insertWall(w, np1.X, np1.Y); err != nil {
			return err
		}
		if _, err := e.insertWall(w+1, np2.X, np2.Y); err != nil {
			return err
		}
	case !extendStart:
		if _, err := e.insertWall(w, np1.X, np1.Y); err != nil {
			return err
		}
	case !extendEnd:
		if _, err := e.insertWall(w, np2.X, np2.Y); err != nil {
			return err
		}
	}
	logger.Debug("push wall", "wall", w, "dist", dist, "extendStart", extendStart, "extendEnd", extendEnd)
	return nil
}

// removeVertex deletes the start vertex of w by letting the previous wall
// run to w's end.
func (e *Editor) removeVertex(w int) error {
	b := e.Board
	s := b.SectorOfWall(w)
	if s < 0 {
		return corrupted("wall %d has no sector", w)
	}
	p, err := b.LastWall(w)
	if err != nil {
		return err
	}
	b.Walls[p].Point2 = b.Walls[w].Point2
	return b.moveWalls(s, w-1, -1, e.Refs, e.Factory)
}

// DeleteWall removes the start vertex of w, merging the previous wall into
// w's span. When both walls at the vertex are portals into the same sector
// the vertex is removed there as well. Loops never drop below three walls.
func (e *Editor) DeleteWall(w int) error {
	b := e.Board
	if !b.validWall(w) {
		return invalidWall(w)
	}
	p, err := b.LastWall(w)
	if err != nil {
		return err
	}
	twin, ptwin := b.Walls[w].NextWall, b.Walls[p].NextWall
	if b.Walls[w].NextSector != b.Walls[p].NextSector {
		return illegal("vertex of wall %d joins different sectors", w)
	}
	n, err := b.LoopLength(w)
	if err != nil {
		return err
	}
	if n <= 3 {
		return illegal("loop of wall %d has only %d walls", w, n)
	}
	if twin >= 0 {
		if b.Walls[twin].Point2 != ptwin {
			return illegal("vertex of wall %d is shared by more than two sectors", w)
		}
		if n, err := b.LoopLength(ptwin); err != nil {
			return err
		} else if n <= 3 {
			return illegal("loop of wall %d has only %d walls", ptwin, n)
		}
	}

	err = tracker.Track(e.Refs.Walls, func(sc *tracker.Scope) error {
		hp, ht, hpt := sc.Ref(p), sc.Ref(twin), sc.Ref(ptwin)
		if err := e.removeVertex(w); err != nil {
			return err
		}
		if twin >= 0 {
			if err := e.removeVertex(sc.Val(hpt)); err != nil {
				return err
			}
			b.link(sc.Val(hp), sc.Val(ht))
			e.fixXRepeat(sc.Val(ht))
		}
		e.fixXRepeat(sc.Val(hp))
		return nil
	})
	if err != nil {
		return err
	}
	logger.Debug("delete wall", "wall", w)
	return nil
}

// MergePoints collapses a zero-length wall at either end of w: w itself, or
// the wall before it. Otherwise the board is left alone.
func (e *Editor) MergePoints(w int) error {
	b := e.Board
	if !b.validWall(w) {
		return invalidWall(w)
	}
	if b.point(w) != b.point(b.Walls[w].Point2) {
		p, err := b.LastWall(w)
		if err != nil {
			return err
		}
		if b.point(p) != b.point(w) {
			return nil
		}
		w = p
	}
	next := b.Walls[w].Point2
	err := e.DeleteWall(w)
	if errors.Is(err, ErrIllegalTopology) {
		// the start vertex may join other sectors while the end vertex does not
		if e.DeleteWall(next) == nil {
			return nil
		}
	}
	return err
}
