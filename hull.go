package board

import "slices"

// HullSample is one point of a drag along a wall. HasUp and HasDown tell
// which of ZUp (new ceiling) and ZDown (new floor) the drag defines.
type HullSample struct {
	X, Y    int
	ZUp     int
	ZDown   int
	HasUp   bool
	HasDown bool
}

type hullPoint struct {
	off   float64
	pos   Point
	zUp   int
	zDown int
	up    bool
	down  bool
}

// hullPoints projects the drag onto the wall axis and brackets it with the
// wall's endpoints, which carry the sector's own heights.
func (b *Board) hullPoints(w int, path []HullSample) []hullPoint {
	s := b.SectorOfWall(w)
	p1, p2 := b.point(w), b.point(b.Walls[w].Point2)
	dx, dy := float64(p2.X-p1.X), float64(p2.Y-p1.Y)
	l := length(dx, dy)
	ux, uy := dx/l, dy/l

	endpoint := func(off float64, p Point) hullPoint {
		x, y := float64(p.X), float64(p.Y)
		return hullPoint{
			off: off, pos: p,
			zUp: round(b.CeilingZAt(s, x, y)), zDown: round(b.FloorZAt(s, x, y)),
			up: true, down: true,
		}
	}
	pts := []hullPoint{endpoint(0, p1), endpoint(l, p2)}
	for _, smp := range path {
		off := clamp(dot(float64(smp.X-p1.X), float64(smp.Y-p1.Y), ux, uy), 0, l)
		pts = append(pts, hullPoint{
			off: off,
			pos: Point{round(float64(p1.X) + ux*off), round(float64(p1.Y) + uy*off)},
			zUp: smp.ZUp, zDown: smp.ZDown,
			up: smp.HasUp, down: smp.HasDown,
		})
	}
	slices.SortStableFunc(pts, func(a, c hullPoint) int {
		return sign(a.off - c.off)
	})

	merged := pts[:1]
	for _, p := range pts[1:] {
		last := &merged[len(merged)-1]
		if p.pos != last.pos {
			merged = append(merged, p)
			continue
		}
		if p.up {
			last.zUp = min(last.zUp, p.zUp)
		}
		if p.down {
			last.zDown = max(last.zDown, p.zDown)
		}
		last.up = last.up || p.up
		last.down = last.down || p.down
	}
	return merged
}

// BuildPortalHull extrudes the solid wall w outward by depth along a drag
// path, producing one sector per hull segment whose samples agree on what
// they define. "Mid" segments take both planes from the drag, "up" segments
// only the ceiling and "down" segments only the floor; the missing plane is
// copied from the source sector. The wall is split at every hull point and
// each piece becomes a portal into its new sector. Returns the new sectors.
func (e *Editor) BuildPortalHull(w int, path []HullSample, depth int) ([]int, error) {
	b := e.Board
	if !b.validWall(w) {
		return nil, invalidWall(w)
	}
	if b.Walls[w].NextWall >= 0 {
		return nil, illegal("wall %d is a portal", w)
	}
	if depth <= 0 {
		return nil, illegal("hull depth must be positive, got %d", depth)
	}
	if b.WallLength(w) == 0 {
		return nil, illegal("wall %d has zero length", w)
	}
	src := b.SectorOfWall(w)
	if src < 0 {
		return nil, corrupted("wall %d has no sector", w)
	}
	hull := b.hullPoints(w, path)
	if len(hull) < 2 {
		return nil, illegal("hull of wall %d is empty", w)
	}
	nx, ny := b.WallNormal(w)
	ox, oy := round(nx*float64(depth)), round(ny*float64(depth))

	// hull points are ordered along the wall, so each split lands on the
	// newest piece
	cur := w
	for _, hp := range hull[1 : len(hull)-1] {
		nw, err := e.insertWall(cur, hp.pos.X, hp.pos.Y)
		if err != nil {
			return nil, err
		}
		cur = nw
	}

	var created []int
	for i := range len(hull) - 1 {
		a, c := hull[i], hull[i+1]
		up, down := a.up && c.up, a.down && c.down
		if !up && !down {
			continue
		}
		ap := Point{a.pos.X + ox, a.pos.Y + oy}
		cp := Point{c.pos.X + ox, c.pos.Y + oy}
		s, err := e.CreateNewSector([]Point{a.pos, ap, cp, c.pos})
		if err != nil {
			return nil, err
		}
		e.setHullPlanes(s, src, a, c, up, down)
		created = append(created, s)
	}
	logger.Debug("portal hull", "wall", w, "points", len(hull), "sectors", len(created))
	return created, nil
}

// setHullPlanes gives sector s heights running from a to c along its side.
func (e *Editor) setHullPlanes(s, src int, a, c hullPoint, up, down bool) {
	b := e.Board
	ax, ay := float64(a.pos.X), float64(a.pos.Y)
	cx, cy := float64(c.pos.X), float64(c.pos.Y)
	ceilA, ceilC := round(b.CeilingZAt(src, ax, ay)), round(b.CeilingZAt(src, cx, cy))
	floorA, floorC := round(b.FloorZAt(src, ax, ay)), round(b.FloorZAt(src, cx, cy))
	if up {
		ceilA, ceilC = a.zUp, c.zUp
	}
	if down {
		floorA, floorC = a.zDown, c.zDown
	}
	sec := &b.Sectors[s]
	set := func(p *Plane, za, zc int) {
		p.Z, p.Heinum = za, 0
		p.Stat &^= PlaneSloped
		b.alignPlaneSlope(s, p, c.pos.X, c.pos.Y, zc)
	}
	set(&sec.Ceiling, ceilA, ceilC)
	set(&sec.Floor, floorA, floorC)
}
