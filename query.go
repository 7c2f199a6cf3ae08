package board

import (
	"iter"
	"slices"
	"sort"
)

// SectorWalls iterates the wall range of sector s. The range is read when
// iteration starts.
func (b *Board) SectorWalls(s int) (iter.Seq[int], error) {
	if !b.validSector(s) {
		return nil, invalidSector(s)
	}
	return func(yield func(int) bool) {
		sec := &b.Sectors[s]
		for w := sec.WallPtr; w < sec.WallPtr+sec.WallNum; w++ {
			if !yield(w) {
				return
			}
		}
	}, nil
}

// LoopPoint returns the last wall of the loop containing w, the one whose
// Point2 jumps back to the loop start.
func (b *Board) LoopPoint(w int) (int, error) {
	if !b.validWall(w) {
		return -1, invalidWall(w)
	}
	for range len(b.Walls) {
		p2 := b.Walls[w].Point2
		if !b.validWall(p2) {
			return -1, corrupted("wall %d points to missing wall %d", w, p2)
		}
		if p2 <= w {
			return w, nil
		}
		w = p2
	}
	return -1, corrupted("loop of wall %d does not close", w)
}

// LoopStart returns the first wall of the loop containing w.
func (b *Board) LoopStart(w int) (int, error) {
	p, err := b.LoopPoint(w)
	if err != nil {
		return -1, err
	}
	return b.Walls[p].Point2, nil
}

// LastWall returns the wall whose Point2 is w.
func (b *Board) LastWall(w int) (int, error) {
	if !b.validWall(w) {
		return -1, invalidWall(w)
	}
	if w > 0 && b.Walls[w-1].Point2 == w {
		return w - 1, nil
	}
	p, err := b.LoopPoint(w)
	if err != nil {
		return -1, err
	}
	if b.Walls[p].Point2 != w {
		return -1, corrupted("no wall ends at the start of wall %d", w)
	}
	return p, nil
}

// LoopWalls returns the walls of w's loop in Point2 order, starting at the
// loop start.
func (b *Board) LoopWalls(w int) ([]int, error) {
	start, err := b.LoopStart(w)
	if err != nil {
		return nil, err
	}
	var loop []int
	cur := start
	for range len(b.Walls) {
		loop = append(loop, cur)
		cur = b.Walls[cur].Point2
		if cur == start {
			return loop, nil
		}
	}
	return nil, corrupted("loop of wall %d does not close", w)
}

func (b *Board) LoopLength(w int) (int, error) {
	loop, err := b.LoopWalls(w)
	return len(loop), err
}

// LoopPoints returns the start vertices of w's loop.
func (b *Board) LoopPoints(w int) ([]Point, error) {
	loop, err := b.LoopWalls(w)
	if err != nil {
		return nil, err
	}
	pts := make([]Point, len(loop))
	for i, lw := range loop {
		pts[i] = b.point(lw)
	}
	return pts, nil
}

// Clockwise reports whether the polygon winds clockwise in Build's y-down
// coordinate system. The turn at the lowest (x, y) vertex decides; collinear
// corners fall back to the signed area.
func Clockwise(points []Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	m := 0
	for i, p := range points {
		if p.X < points[m].X || p.X == points[m].X && p.Y < points[m].Y {
			m = i
		}
	}
	prev, cur, next := points[(m+n-1)%n], points[m], points[(m+1)%n]
	if c := cross(cur.X-prev.X, cur.Y-prev.Y, next.X-cur.X, next.Y-cur.Y); c != 0 {
		return c > 0
	}
	return signedArea(points) > 0
}

// signedArea is twice the shoelace area; positive for clockwise loops.
func signedArea(points []Point) int {
	a := 0
	for i, p := range points {
		q := points[(i+1)%len(points)]
		a += cross(p.X, p.Y, q.X, q.Y)
	}
	return a
}

// IsOuterLoop reports whether w belongs to a clockwise loop.
func (b *Board) IsOuterLoop(w int) (bool, error) {
	pts, err := b.LoopPoints(w)
	if err != nil {
		return false, err
	}
	return Clockwise(pts), nil
}

// sectorLoops returns the loop start walls of s in storage order.
func (b *Board) sectorLoops(s int) ([]int, error) {
	sec := &b.Sectors[s]
	end := sec.WallPtr + sec.WallNum
	var starts []int
	for w := sec.WallPtr; w < end; {
		starts = append(starts, w)
		p, err := b.LoopPoint(w)
		if err != nil {
			return nil, err
		}
		if p < w || p >= end {
			return nil, corrupted("loop at wall %d leaves sector %d", w, s)
		}
		w = p + 1
	}
	return starts, nil
}

// InnerSectorsOfLoop returns the sectors enclosed by w's loop: everything
// reachable through its portals without passing the loop's own sector.
func (b *Board) InnerSectorsOfLoop(w int) ([]int, error) {
	loop, err := b.LoopWalls(w)
	if err != nil {
		return nil, err
	}
	owner := b.SectorOfWall(w)
	visited := make([]bool, len(b.Sectors))
	if owner >= 0 {
		visited[owner] = true
	}
	var queue []int
	push := func(s int) {
		if b.validSector(s) && !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}
	for _, lw := range loop {
		push(b.Walls[lw].NextSector)
	}
	for i := 0; i < len(queue); i++ {
		sec := &b.Sectors[queue[i]]
		for nw := sec.WallPtr; nw < sec.WallPtr+sec.WallNum; nw++ {
			push(b.Walls[nw].NextSector)
		}
	}
	return queue, nil
}

// InnerSectors returns the sectors nested in any hole of s.
func (b *Board) InnerSectors(s int) ([]int, error) {
	if !b.validSector(s) {
		return nil, invalidSector(s)
	}
	loops, err := b.sectorLoops(s)
	if err != nil {
		return nil, err
	}
	var inner []int
	for _, start := range loops[min(1, len(loops)):] {
		ss, err := b.InnerSectorsOfLoop(start)
		if err != nil {
			return nil, err
		}
		for _, x := range ss {
			if !slices.Contains(inner, x) {
				inner = append(inner, x)
			}
		}
	}
	return inner, nil
}

// ConnectedWalls returns every wall whose start vertex coincides with w's
// through portal links, w first.
func (b *Board) ConnectedWalls(w int) ([]int, error) {
	if !b.validWall(w) {
		return nil, invalidWall(w)
	}
	walls := []int{w}
	// forward: leave through the portal, the twin's successor shares the vertex
	cur := w
	for range len(b.Walls) {
		nw := b.Walls[cur].NextWall
		if nw < 0 {
			break
		}
		cur = b.Walls[nw].Point2
		if cur == w {
			return walls, nil
		}
		walls = append(walls, cur)
	}
	// backward: the wall ending at the vertex, then its twin starts there
	cur = w
	for range len(b.Walls) {
		p, err := b.LastWall(cur)
		if err != nil {
			return nil, err
		}
		cur = b.Walls[p].NextWall
		if cur < 0 || cur == w || slices.Contains(walls, cur) {
			break
		}
		walls = append(walls, cur)
	}
	return walls, nil
}

// CanonicalWall returns the smallest wall id sharing w's start vertex.
func (b *Board) CanonicalWall(w int) (int, error) {
	walls, err := b.ConnectedWalls(w)
	if err != nil {
		return -1, err
	}
	return slices.Min(walls), nil
}

// SectorOfWall returns the sector owning w, or -1.
func (b *Board) SectorOfWall(w int) int {
	if !b.validWall(w) {
		return -1
	}
	if nw := b.Walls[w].NextWall; b.validWall(nw) {
		if s := b.Walls[nw].NextSector; b.validSector(s) && b.ownsWall(s, w) {
			return s
		}
	}
	return b.ownerOfWall(w)
}

func (b *Board) ownsWall(s, w int) bool {
	sec := &b.Sectors[s]
	return w >= sec.WallPtr && w < sec.WallPtr+sec.WallNum
}

// ownerOfWall finds the owning sector by range alone.
func (b *Board) ownerOfWall(w int) int {
	i := sort.Search(len(b.Sectors), func(i int) bool {
		return b.Sectors[i].WallPtr+b.Sectors[i].WallNum > w
	})
	if i < len(b.Sectors) && b.ownsWall(i, w) {
		return i
	}
	return -1
}

// InSector reports whether (x, y) lies inside sector s or on its boundary.
func (b *Board) InSector(x, y, s int) bool {
	return b.inSector(float64(x), float64(y), s)
}

func (b *Board) inSector(x, y float64, s int) bool {
	if !b.validSector(s) {
		return false
	}
	sec := &b.Sectors[s]
	end := sec.WallPtr + sec.WallNum
	inside := false
	for w := sec.WallPtr; w < end; w++ {
		p2 := b.Walls[w].Point2
		if !b.validWall(p2) {
			return false
		}
		x1, y1 := float64(b.Walls[w].X)-x, float64(b.Walls[w].Y)-y
		x2, y2 := float64(b.Walls[p2].X)-x, float64(b.Walls[p2].Y)-y
		c := cross(x1, y1, x2, y2)
		if c == 0 && min(x1, x2) <= 0 && max(x1, x2) >= 0 && min(y1, y2) <= 0 && max(y1, y2) >= 0 {
			return true
		}
		if (y1 > 0) != (y2 > 0) {
			// crossing of the horizontal through the point lies at c/(y2-y1)
			if c != 0 && (c > 0) == (y2 > y1) {
				inside = !inside
			}
		}
	}
	return inside
}

// FindSector locates the sector containing (x, y), searching outward from
// hint through portals before scanning the whole board. Returns -1 when no
// sector contains the point.
func (b *Board) FindSector(x, y, hint int) int {
	visited := make([]bool, len(b.Sectors))
	if b.validSector(hint) {
		queue := []int{hint}
		visited[hint] = true
		for i := 0; i < len(queue); i++ {
			s := queue[i]
			if b.InSector(x, y, s) {
				return s
			}
			sec := &b.Sectors[s]
			for w := sec.WallPtr; w < sec.WallPtr+sec.WallNum; w++ {
				if ns := b.Walls[w].NextSector; b.validSector(ns) && !visited[ns] {
					visited[ns] = true
					queue = append(queue, ns)
				}
			}
		}
	}
	for s := range b.Sectors {
		if !visited[s] && b.InSector(x, y, s) {
			return s
		}
	}
	return -1
}

// WallInSector returns the wall of s starting at (x, y), or -1.
func (b *Board) WallInSector(s, x, y int) int {
	if !b.validSector(s) {
		return -1
	}
	sec := &b.Sectors[s]
	for w := sec.WallPtr; w < sec.WallPtr+sec.WallNum; w++ {
		if b.Walls[w].X == x && b.Walls[w].Y == y {
			return w
		}
	}
	return -1
}

func (b *Board) WallLength(w int) float64 {
	wall := &b.Walls[w]
	p2 := &b.Walls[wall.Point2]
	return length(p2.X-wall.X, p2.Y-wall.Y)
}

// WallNormal returns the unit normal of w pointing away from its sector.
func (b *Board) WallNormal(w int) (nx, ny float64) {
	wall := &b.Walls[w]
	p2 := &b.Walls[wall.Point2]
	dx, dy := float64(p2.X-wall.X), float64(p2.Y-wall.Y)
	l := length(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return dy / l, -dx / l
}
