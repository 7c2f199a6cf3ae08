package board

import "github.com/stuarthighley/board/tracker"

type builderWall struct {
	wall   Wall
	origin int
}

// SectorBuilder assembles the complete wall list of a sector, loop by loop,
// and then writes it over the sector's range in one go.
//
// Walls keep their NextWall; Build re-links both sides of every portal.
// Walls added with AddFrom remember where they came from, so handles held on
// the old id follow the wall to its new slot.
type SectorBuilder struct {
	walls []builderWall
	loops []int
}

// AddWall appends a wall to the current loop. Point2 is ignored.
func (sb *SectorBuilder) AddWall(w Wall) *SectorBuilder {
	return sb.AddFrom(-1, w)
}

// AddFrom appends a copy of an existing wall, recording its id as origin.
func (sb *SectorBuilder) AddFrom(origin int, w Wall) *SectorBuilder {
	sb.walls = append(sb.walls, builderWall{wall: w, origin: origin})
	return sb
}

// Loop closes the current loop.
func (sb *SectorBuilder) Loop() *SectorBuilder {
	start := 0
	if n := len(sb.loops); n > 0 {
		start = sb.loops[n-1]
	}
	if len(sb.walls) > start {
		sb.loops = append(sb.loops, len(sb.walls))
	}
	return sb
}

// Build replaces the walls of sector s with the builder's content.
func (sb *SectorBuilder) Build(b *Board, s int, refs *Refs, f Factory) error {
	if !b.validSector(s) {
		return invalidSector(s)
	}
	sb.Loop()
	start := 0
	for _, end := range sb.loops {
		if end-start < 3 {
			return illegal("loop of %d walls", end-start)
		}
		start = end
	}

	return tracker.Track(refs.Walls, func(scope *tracker.Scope) error {
		n := len(sb.walls)
		targets := make([]tracker.Handle, n)
		origins := make([]tracker.Handle, n)
		for i, bw := range sb.walls {
			targets[i], origins[i] = -1, -1
			if b.validWall(bw.wall.NextWall) {
				targets[i] = scope.Ref(bw.wall.NextWall)
			}
			if b.validWall(bw.origin) {
				origins[i] = scope.Ref(bw.origin)
			}
		}

		ptr, oldNum := b.Sectors[s].WallPtr, b.Sectors[s].WallNum
		// twins of the old walls are re-linked below if their wall survives
		for w := ptr; w < ptr+oldNum; w++ {
			if t := b.Walls[w].NextWall; b.validWall(t) && b.Walls[t].NextWall == w {
				b.Walls[t].NextWall, b.Walls[t].NextSector = -1, -1
			}
		}
		if n < oldNum {
			b.remapRebuilt(s, scope, origins, refs)
			if err := b.resizeWalls(s, n, refs, f); err != nil {
				return err
			}
		} else {
			if err := b.resizeWalls(s, n, refs, f); err != nil {
				return err
			}
			b.remapRebuilt(s, scope, origins, refs)
		}

		start := 0
		for _, end := range sb.loops {
			for i := start; i < end; i++ {
				w := sb.walls[i].wall
				next := i + 1
				if next == end {
					next = start
				}
				w.Point2 = ptr + next
				w.NextWall, w.NextSector = -1, -1
				if t := scope.Val(targets[i]); t != tracker.Nil && !b.ownsWall(s, t) {
					w.NextWall = t
					w.NextSector = b.ownerOfWall(t)
				}
				b.Walls[ptr+i] = w
			}
			start = end
		}
		for i := range n {
			if t := b.Walls[ptr+i].NextWall; t >= 0 {
				b.Walls[t].NextWall = ptr + i
				b.Walls[t].NextSector = s
			}
		}
		logger.Debug("built sector", "sector", s, "walls", n, "loops", len(sb.loops))
		return nil
	})
}

// remapRebuilt moves handles held on origin walls to the slot their copy
// will occupy; every other handle into the sector's old range is cleared.
func (b *Board) remapRebuilt(s int, scope *tracker.Scope, origins []tracker.Handle, refs *Refs) {
	sec := b.Sectors[s]
	dest := make(map[int]int, len(origins))
	for i, h := range origins {
		if v := scope.Val(h); v != tracker.Nil {
			dest[v] = sec.WallPtr + i
		}
	}
	oldEnd := sec.WallPtr + sec.WallNum
	refs.Walls.Update(func(v int) int {
		if d, ok := dest[v]; ok {
			return d
		}
		if v >= sec.WallPtr && v < oldEnd {
			return tracker.Nil
		}
		return v
	})
}
