package board

import (
	"slices"

	"github.com/stuarthighley/board/tracker"
)

// findSolidWall returns a solid wall running from a to c, or -1.
func (b *Board) findSolidWall(a, c Point) int {
	for w := range b.Walls {
		wall := &b.Walls[w]
		if wall.NextWall < 0 && wall.X == a.X && wall.Y == a.Y && b.point(wall.Point2) == c {
			return w
		}
	}
	return -1
}

// CreateNewSector appends a sector bounded by points. The points are
// reordered clockwise if needed. Edges coinciding with an existing solid
// wall become portals to that wall's sector, and the first such neighbour
// donates its ceiling and floor.
func (e *Editor) CreateNewSector(points []Point) (int, error) {
	b := e.Board
	if len(points) < 3 {
		return -1, illegal("sector needs at least 3 points, got %d", len(points))
	}
	pts := slices.Clone(points)
	if !Clockwise(pts) {
		slices.Reverse(pts)
	}

	sec := e.Factory.NewSector()
	sec.WallPtr, sec.WallNum = len(b.Walls), 0
	neighbour := -1
	sb := &SectorBuilder{}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		w := e.Factory.NewWall()
		w.X, w.Y = p.X, p.Y
		w.NextWall, w.NextSector = -1, -1
		if t := b.findSolidWall(q, p); t >= 0 {
			w.NextWall = t
			if neighbour < 0 {
				neighbour = b.ownerOfWall(t)
			}
		}
		sb.AddWall(w)
	}
	if neighbour >= 0 {
		src := &b.Sectors[neighbour]
		sec.Ceiling, sec.Floor = src.Ceiling, src.Floor
		sec.Ceiling.Heinum, sec.Floor.Heinum = 0, 0
		sec.Ceiling.Stat &^= PlaneSloped
		sec.Floor.Stat &^= PlaneSloped
		if src.Ceiling.Sloped() || src.Floor.Sloped() {
			sec.Ceiling.Z = round(b.CeilingZAt(neighbour, float64(pts[0].X), float64(pts[0].Y)))
			sec.Floor.Z = round(b.FloorZAt(neighbour, float64(pts[0].X), float64(pts[0].Y)))
		}
	}

	s := len(b.Sectors)
	b.Sectors = append(b.Sectors, sec)
	if err := sb.Build(b, s, e.Refs, e.Factory); err != nil {
		b.Sectors = b.Sectors[:s]
		return -1, err
	}
	ptr := b.Sectors[s].WallPtr
	for w := ptr; w < ptr+len(pts); w++ {
		e.fixXRepeat(w)
	}
	logger.Debug("create sector", "sector", s, "walls", len(pts), "neighbour", neighbour)
	return s, nil
}

// DeleteSector removes sector s together with its walls and sprites. Portals
// into it turn solid.
func (e *Editor) DeleteSector(s int) error {
	b := e.Board
	if !b.validSector(s) {
		return invalidSector(s)
	}
	sec := b.Sectors[s]
	if sec.WallNum == 0 {
		return illegal("sector %d has no walls", s)
	}
	for w := sec.WallPtr; w < sec.WallPtr+sec.WallNum; w++ {
		if t := b.Walls[w].NextWall; b.validWall(t) && b.Walls[t].NextWall == w {
			b.Walls[t].NextWall, b.Walls[t].NextSector = -1, -1
		}
		b.Walls[w].NextWall, b.Walls[w].NextSector = -1, -1
	}
	for i := len(b.Sprites) - 1; i >= 0; i-- {
		if b.Sprites[i].SectNum == s {
			if err := b.removeSprite(i, e.Refs); err != nil {
				return err
			}
		}
	}
	if err := b.resizeWalls(s, 0, e.Refs, e.Factory); err != nil {
		return err
	}
	if err := b.deleteSectorAt(s, e.Refs); err != nil {
		return err
	}
	logger.Debug("delete sector", "sector", s)
	return nil
}

// innerLoopWalls validates that w lies on a hole of its sector and returns
// the hole's walls.
func (b *Board) innerLoopWalls(w int) ([]int, error) {
	if !b.validWall(w) {
		return nil, invalidWall(w)
	}
	loop, err := b.LoopWalls(w)
	if err != nil {
		return nil, err
	}
	s := b.SectorOfWall(w)
	if s < 0 {
		return nil, corrupted("wall %d has no sector", w)
	}
	if loop[0] == b.Sectors[s].WallPtr {
		return nil, illegal("wall %d is on the outer loop of sector %d", w, s)
	}
	return loop, nil
}

// DeleteLoop removes the empty hole containing w.
func (e *Editor) DeleteLoop(w int) error {
	b := e.Board
	loop, err := b.innerLoopWalls(w)
	if err != nil {
		return err
	}
	for _, lw := range loop {
		if b.Walls[lw].NextWall >= 0 {
			return illegal("loop of wall %d is not empty", w)
		}
	}
	s := b.SectorOfWall(w)
	if err := b.moveWalls(s, loop[0]-1, -len(loop), e.Refs, e.Factory); err != nil {
		return err
	}
	logger.Debug("delete loop", "sector", s, "walls", len(loop))
	return nil
}

// CreateInnerLoop cuts a hole bounded by points into sector s and returns the
// first wall of the new loop. The points are reordered counter-clockwise if
// needed and must lie inside s.
func (e *Editor) CreateInnerLoop(s int, points []Point) (int, error) {
	b := e.Board
	if !b.validSector(s) {
		return -1, invalidSector(s)
	}
	if len(points) < 3 {
		return -1, illegal("loop needs at least 3 points, got %d", len(points))
	}
	sec := b.Sectors[s]
	if sec.WallNum == 0 {
		return -1, illegal("sector %d has no walls", s)
	}
	for _, p := range points {
		if !b.InSector(p.X, p.Y, s) {
			return -1, illegal("point (%d, %d) is outside sector %d", p.X, p.Y, s)
		}
	}
	pts := slices.Clone(points)
	if Clockwise(pts) {
		slices.Reverse(pts)
	}

	tmpl := e.Factory.CloneWall(&b.Walls[sec.WallPtr])
	tmpl.NextWall, tmpl.NextSector = -1, -1
	end := sec.WallPtr + sec.WallNum
	if err := b.moveWalls(s, end-1, len(pts), e.Refs, e.Factory); err != nil {
		return -1, err
	}
	for i, p := range pts {
		w := tmpl
		w.X, w.Y = p.X, p.Y
		w.Point2 = end + (i+1)%len(pts)
		b.Walls[end+i] = w
	}
	for i := range pts {
		e.fixXRepeat(end + i)
	}
	logger.Debug("create inner loop", "sector", s, "walls", len(pts))
	return end, nil
}

// FillInnerLoop creates a sector inside the empty hole containing w and
// returns its id.
func (e *Editor) FillInnerLoop(w int) (int, error) {
	b := e.Board
	loop, err := b.innerLoopWalls(w)
	if err != nil {
		return -1, err
	}
	pts := make([]Point, len(loop))
	for i, lw := range loop {
		if b.Walls[lw].NextWall >= 0 {
			return -1, illegal("loop of wall %d is already filled", w)
		}
		pts[i] = b.point(lw)
	}
	return e.CreateNewSector(pts)
}

// JoinSectors merges s2 into s1 across their shared portals and returns the
// id of the merged sector, which may have shifted.
func (e *Editor) JoinSectors(s1, s2 int) (int, error) {
	b := e.Board
	if !b.validSector(s1) {
		return -1, invalidSector(s1)
	}
	if !b.validSector(s2) {
		return -1, invalidSector(s2)
	}
	if s1 == s2 {
		return -1, illegal("cannot join sector %d with itself", s1)
	}
	shared := func(w int) bool {
		ns := b.Walls[w].NextSector
		return b.Walls[w].NextWall >= 0 && (ns == s1 || ns == s2) && (b.ownsWall(s1, w) || b.ownsWall(s2, w))
	}

	var order []int
	remaining := map[int]bool{}
	for _, s := range []int{s1, s2} {
		sec := &b.Sectors[s]
		for w := sec.WallPtr; w < sec.WallPtr+sec.WallNum; w++ {
			if !shared(w) {
				order = append(order, w)
				remaining[w] = true
			}
		}
	}
	if len(order) == b.Sectors[s1].WallNum+b.Sectors[s2].WallNum {
		return -1, illegal("sectors %d and %d are not adjacent", s1, s2)
	}

	var loops [][]int
	for _, first := range order {
		if !remaining[first] {
			continue
		}
		var loop []int
		cur := first
		for steps := 0; ; steps++ {
			if steps > len(order) {
				return -1, corrupted("joined loop from wall %d does not close", first)
			}
			loop = append(loop, cur)
			delete(remaining, cur)
			next := b.Walls[cur].Point2
			for hops := 0; shared(next); hops++ {
				if hops > len(b.Walls) {
					return -1, corrupted("portal walk from wall %d does not end", next)
				}
				next = b.Walls[b.Walls[next].NextWall].Point2
			}
			if next == first {
				break
			}
			if !remaining[next] {
				return -1, corrupted("joined loop from wall %d runs into wall %d twice", first, next)
			}
			cur = next
		}
		loops = append(loops, loop)
	}
	if len(loops) == 0 {
		return -1, illegal("sectors %d and %d leave no boundary when joined", s1, s2)
	}

	outer, best := -1, 0
	for i, loop := range loops {
		pts := make([]Point, len(loop))
		for j, w := range loop {
			pts[j] = b.point(w)
		}
		if a := signedArea(pts); a > best {
			outer, best = i, a
		}
	}
	if outer < 0 {
		return -1, illegal("joining sectors %d and %d leaves no outer boundary", s1, s2)
	}
	loops[0], loops[outer] = loops[outer], loops[0]

	sb := &SectorBuilder{}
	for _, loop := range loops {
		for _, w := range loop {
			sb.AddFrom(w, b.Walls[w])
		}
		sb.Loop()
	}

	var moved []int
	for i := range b.Sprites {
		if b.Sprites[i].SectNum == s2 {
			b.Sprites[i].SectNum = s1
			moved = append(moved, i)
		}
	}

	joined, err := tracker.TrackValue(e.Refs.Sectors, func(sc *tracker.Scope) (int, error) {
		h1, h2 := sc.Ref(s1), sc.Ref(s2)
		sec2 := b.Sectors[s2]
		for w := sec2.WallPtr; w < sec2.WallPtr+sec2.WallNum; w++ {
			b.Walls[w].NextWall, b.Walls[w].NextSector = -1, -1
		}
		if err := sb.Build(b, s1, e.Refs, e.Factory); err != nil {
			return -1, err
		}
		if err := e.DeleteSector(sc.Val(h2)); err != nil {
			return -1, err
		}
		return sc.Val(h1), nil
	})
	if err != nil {
		return -1, err
	}
	for _, i := range moved {
		sp := &b.Sprites[i]
		if s := b.FindSector(sp.X, sp.Y, joined); s >= 0 {
			sp.SectNum = s
		} else {
			sp.SectNum = joined
		}
	}
	logger.Debug("join sectors", "sector", joined, "loops", len(loops), "sprites", len(moved))
	return joined, nil
}

// pathLoop is one side of a split: existing walls followed by new walls
// starting at the given points.
type pathLoop struct {
	walls []int
	path  []Point
}

func (b *Board) pathLoopPoints(l pathLoop) []Point {
	pts := make([]Point, 0, len(l.walls)+len(l.path))
	for _, w := range l.walls {
		pts = append(pts, b.point(w))
	}
	return append(pts, l.path...)
}

// pointInPolygon is the even-odd test used to sort holes between the two
// halves of a split.
func pointInPolygon(p Point, poly []Point) bool {
	inside := false
	for i, a := range poly {
		c := poly[(i+1)%len(poly)]
		y1, y2 := a.Y-p.Y, c.Y-p.Y
		if (y1 > 0) != (y2 > 0) {
			cr := cross(a.X-p.X, y1, c.X-p.X, y2)
			if cr != 0 && (cr > 0) == (y2 > y1) {
				inside = !inside
			}
		}
	}
	return inside
}

// SplitSector cuts sector s along a path running from one vertex of a loop
// to another vertex of the same loop. It returns the id of the new sector;
// s keeps the other half. Holes go with the half that contains them.
func (e *Editor) SplitSector(s int, points []Point) (int, error) {
	b := e.Board
	if !b.validSector(s) {
		return -1, invalidSector(s)
	}
	if len(points) < 2 {
		return -1, illegal("split path needs at least 2 points, got %d", len(points))
	}
	first, last := points[0], points[len(points)-1]
	wa := b.WallInSector(s, first.X, first.Y)
	wb := b.WallInSector(s, last.X, last.Y)
	if wa < 0 || wb < 0 {
		return -1, illegal("split path must start and end on vertices of sector %d", s)
	}
	if wa == wb {
		return -1, illegal("split path starts and ends at the same vertex")
	}
	for _, p := range points[1 : len(points)-1] {
		if !b.InSector(p.X, p.Y, s) {
			return -1, illegal("split point (%d, %d) is outside sector %d", p.X, p.Y, s)
		}
	}
	loop, err := b.LoopWalls(wa)
	if err != nil {
		return -1, err
	}
	ib := slices.Index(loop, wb)
	if ib < 0 {
		return -1, illegal("split path joins two different loops")
	}
	if len(points) == 2 && (b.Walls[wa].Point2 == wb || b.Walls[wb].Point2 == wa) {
		return -1, illegal("split path runs along an existing wall")
	}

	ia := slices.Index(loop, wa)
	rot := append(slices.Clone(loop[ia:]), loop[:ia]...)
	cut := (ib - ia + len(loop)) % len(loop)
	reversed := slices.Clone(points[1:])
	slices.Reverse(reversed)
	x := pathLoop{walls: rot[:cut], path: reversed}
	y := pathLoop{walls: rot[cut:], path: points[:len(points)-1]}
	xPts, yPts := b.pathLoopPoints(x), b.pathLoopPoints(y)

	sec := b.Sectors[s]
	isOuter := loop[0] == sec.WallPtr
	var fresh, kept pathLoop
	switch cx, cy := Clockwise(xPts), Clockwise(yPts); {
	case isOuter && cx && cy:
		fresh, kept = x, y
	case !isOuter && cx && !cy:
		fresh, kept = x, y
	case !isOuter && cy && !cx:
		fresh, kept = y, x
	default:
		return -1, illegal("split path leaves sector %d", s)
	}
	freshPts := b.pathLoopPoints(fresh)

	loops, err := b.sectorLoops(s)
	if err != nil {
		return -1, err
	}
	var keptLoops, freshLoops [][]int
	for _, start := range loops {
		if start == loop[0] {
			continue
		}
		lw, err := b.LoopWalls(start)
		if err != nil {
			return -1, err
		}
		if start != sec.WallPtr && pointInPolygon(b.point(start), freshPts) {
			freshLoops = append(freshLoops, lw)
		} else {
			keptLoops = append(keptLoops, lw)
		}
	}

	tmpl := e.Factory.CloneWall(&b.Walls[wa])
	tmpl.NextWall, tmpl.NextSector = -1, -1
	addPathLoop := func(sb *SectorBuilder, l pathLoop) {
		for _, w := range l.walls {
			sb.AddFrom(w, b.Walls[w])
		}
		for _, p := range l.path {
			w := tmpl
			w.X, w.Y = p.X, p.Y
			sb.AddWall(w)
		}
		sb.Loop()
	}
	addLoops := func(sb *SectorBuilder, loops [][]int) {
		for _, lw := range loops {
			for _, w := range lw {
				sb.AddFrom(w, b.Walls[w])
			}
			sb.Loop()
		}
	}

	fb := &SectorBuilder{}
	addPathLoop(fb, fresh)
	addLoops(fb, freshLoops)
	kb := &SectorBuilder{}
	if isOuter {
		addPathLoop(kb, kept)
		addLoops(kb, keptLoops)
	} else {
		addLoops(kb, keptLoops)
		addPathLoop(kb, kept)
	}

	ns := len(b.Sectors)
	nsec := e.Factory.CloneSector(&sec)
	nsec.WallPtr, nsec.WallNum = len(b.Walls), 0
	b.Sectors = append(b.Sectors, nsec)
	if err := fb.Build(b, ns, e.Refs, e.Factory); err != nil {
		b.Sectors = b.Sectors[:ns]
		return -1, err
	}
	if err := kb.Build(b, s, e.Refs, e.Factory); err != nil {
		return -1, err
	}

	// pair the new walls of both halves
	fsec := b.Sectors[ns]
	var newWalls []int
	for i := range fresh.path {
		w := fsec.WallPtr + len(fresh.walls) + i
		from, to := b.point(w), b.point(b.Walls[w].Point2)
		ksec := b.Sectors[s]
		for k := ksec.WallPtr; k < ksec.WallPtr+ksec.WallNum; k++ {
			if b.Walls[k].NextWall < 0 && b.point(k) == to && b.point(b.Walls[k].Point2) == from {
				b.link(w, k)
				newWalls = append(newWalls, w, k)
				break
			}
		}
	}
	e.fixXRepeat(newWalls...)

	for i := range b.Sprites {
		sp := &b.Sprites[i]
		if sp.SectNum == s && !b.InSector(sp.X, sp.Y, s) && b.InSector(sp.X, sp.Y, ns) {
			sp.SectNum = ns
		}
	}
	logger.Debug("split sector", "sector", s, "new", ns, "path", len(points))
	return ns, nil
}

// SetFirstWall rotates the outer loop of s so that it starts at w.
func (e *Editor) SetFirstWall(s, w int) error {
	b := e.Board
	if !b.validSector(s) {
		return invalidSector(s)
	}
	if !b.validWall(w) || !b.ownsWall(s, w) {
		return invalidWall(w)
	}
	sec := b.Sectors[s]
	if w == sec.WallPtr {
		return nil
	}
	loops, err := b.sectorLoops(s)
	if err != nil {
		return err
	}
	outer, err := b.LoopWalls(sec.WallPtr)
	if err != nil {
		return err
	}
	i := slices.Index(outer, w)
	if i < 0 {
		return illegal("wall %d is not on the outer loop of sector %d", w, s)
	}
	sb := &SectorBuilder{}
	for _, ow := range append(outer[i:], outer[:i]...) {
		sb.AddFrom(ow, b.Walls[ow])
	}
	sb.Loop()
	for _, start := range loops[1:] {
		lw, err := b.LoopWalls(start)
		if err != nil {
			return err
		}
		for _, iw := range lw {
			sb.AddFrom(iw, b.Walls[iw])
		}
		sb.Loop()
	}
	if err := sb.Build(b, s, e.Refs, e.Factory); err != nil {
		return err
	}
	logger.Debug("set first wall", "sector", s, "wall", w)
	return nil
}
