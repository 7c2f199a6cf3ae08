package board

import "math"

type Vec3 struct {
	X, Y, Z float64
}

type HitKind int

const (
	HitNone HitKind = iota
	HitFloor
	HitCeiling
	HitUpperWall
	HitMidWall
	HitLowerWall
	HitSprite
)

var hitKindNames = [...]string{"none", "floor", "ceiling", "upper wall", "mid wall", "lower wall", "sprite"}

func (k HitKind) String() string {
	if k < 0 || int(k) >= len(hitKindNames) {
		return "unknown"
	}
	return hitKindNames[k]
}

// Hit is the closest element a ray ran into. T is the ray parameter, so the
// hit point is start + T*dir.
type Hit struct {
	Kind    HitKind
	T       float64
	X, Y, Z float64
	Sector  int
	Wall    int
	Sprite  int
}

// Reset clears h to "no hit".
func (h *Hit) Reset() {
	*h = Hit{Kind: HitNone, T: math.Inf(1), Sector: -1, Wall: -1, Sprite: -1}
}

func (h *Hit) offer(t float64, kind HitKind, s, w, sp int, start, dir Vec3) {
	if t >= h.T {
		return
	}
	h.Kind, h.T = kind, t
	h.X, h.Y, h.Z = start.X+t*dir.X, start.Y+t*dir.Y, start.Z+t*dir.Z
	h.Sector, h.Wall, h.Sprite = s, w, sp
}

type HitscanFlags int

const (
	HitscanNoSprites HitscanFlags = 1 << iota
)

// Lotag marking a sector that contains a solid slab spanning the ceiling
// and floor of the sector named by its Hitag.
const slabLotag = 32

// Hitscan casts a ray from start, which lies in sector, along dir and stores
// the closest hit in out. Sectors are visited through the portals the ray
// crosses; an invalid start sector makes every sector a candidate. Sprites
// are found through the index and sized with art; both may be nil.
func Hitscan(b *Board, art ArtInfoProvider, sprites SpriteIndex, start Vec3, sector int, dir Vec3, flags HitscanFlags, out *Hit) {
	out.Reset()
	visited := make([]bool, len(b.Sectors))
	var queue []int
	push := func(s int) {
		if b.validSector(s) && !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}
	if b.validSector(sector) {
		push(sector)
	} else {
		for s := range b.Sectors {
			push(s)
		}
	}

	for i := 0; i < len(queue); i++ {
		s := queue[i]
		b.hitPlanes(s, start, dir, out)
		b.hitSlab(s, start, dir, out)
		b.hitWalls(s, start, dir, out, push)
		if flags&HitscanNoSprites == 0 && sprites != nil {
			b.hitSprites(s, art, sprites.SpritesBySector(s), start, dir, out)
		}
	}
}

// intersectPlane returns the ray parameter where the ray meets the plane
// z = a + bx*x + cy*y, and the rate at which the ray descends through it.
func intersectPlane(start, dir Vec3, a, bx, cy float64) (t, rate float64) {
	rate = dir.Z - bx*dir.X - cy*dir.Y
	if rate == 0 {
		return -1, 0
	}
	return (a + bx*start.X + cy*start.Y - start.Z) / rate, rate
}

func (b *Board) hitPlane(s int, p *Plane, kind HitKind, start, dir Vec3, out *Hit) {
	a, bx, cy := b.planeCoeffs(s, p)
	t, rate := intersectPlane(start, dir, a, bx, cy)
	if t < 0 || kind == HitFloor && rate <= 0 || kind == HitCeiling && rate >= 0 {
		return
	}
	if b.inSector(start.X+t*dir.X, start.Y+t*dir.Y, s) {
		out.offer(t, kind, s, -1, -1, start, dir)
	}
}

func (b *Board) hitPlanes(s int, start, dir Vec3, out *Hit) {
	sec := &b.Sectors[s]
	b.hitPlane(s, &sec.Ceiling, HitCeiling, start, dir, out)
	b.hitPlane(s, &sec.Floor, HitFloor, start, dir, out)
}

// hitSlab tests the 3D floor of s: its top is the referenced sector's
// ceiling, its bottom the referenced sector's floor.
func (b *Board) hitSlab(s int, start, dir Vec3, out *Hit) {
	sec := &b.Sectors[s]
	ref := sec.Hitag
	if sec.Lotag != slabLotag || !b.validSector(ref) || ref == s {
		return
	}
	rs := &b.Sectors[ref]
	try := func(p *Plane, kind HitKind) {
		a, bx, cy := b.planeCoeffs(ref, p)
		t, rate := intersectPlane(start, dir, a, bx, cy)
		if t < 0 || kind == HitFloor && rate <= 0 || kind == HitCeiling && rate >= 0 {
			return
		}
		if b.inSector(start.X+t*dir.X, start.Y+t*dir.Y, s) {
			out.offer(t, kind, s, -1, -1, start, dir)
		}
	}
	// landing on top of the slab reads as floor, hitting its underside as ceiling
	try(&rs.Ceiling, HitFloor)
	try(&rs.Floor, HitCeiling)
}

// raySegment intersects the ray's xy projection with the segment
// p + u*d, u in [0, 1].
func raySegment(start, dir Vec3, px, py, dx, dy float64) (t float64, ok bool) {
	den := cross(dir.X, dir.Y, dx, dy)
	if den == 0 {
		return 0, false
	}
	ox, oy := px-start.X, py-start.Y
	t = cross(ox, oy, dx, dy) / den
	u := cross(ox, oy, dir.X, dir.Y) / den
	return t, t >= 0 && u >= 0 && u <= 1
}

func (b *Board) hitWalls(s int, start, dir Vec3, out *Hit, push func(int)) {
	sec := &b.Sectors[s]
	for w := sec.WallPtr; w < sec.WallPtr+sec.WallNum; w++ {
		wall := &b.Walls[w]
		p2 := &b.Walls[wall.Point2]
		x1, y1 := float64(wall.X), float64(wall.Y)
		dx, dy := float64(p2.X)-x1, float64(p2.Y)-y1
		// only walls the ray leaves the sector through
		if dot(dir.X, dir.Y, -dy, dx) >= 0 {
			continue
		}
		t, ok := raySegment(start, dir, x1, y1, dx, dy)
		if !ok {
			continue
		}
		x, y, z := start.X+t*dir.X, start.Y+t*dir.Y, start.Z+t*dir.Z
		ns := wall.NextSector
		if !b.validSector(ns) || wall.Cstat&WallHitscan != 0 {
			out.offer(t, HitMidWall, s, w, -1, start, dir)
			continue
		}
		switch {
		case z < b.CeilingZAt(ns, x, y):
			out.offer(t, HitUpperWall, s, w, -1, start, dir)
		case z > b.FloorZAt(ns, x, y):
			out.offer(t, HitLowerWall, s, w, -1, start, dir)
		default:
			push(ns)
		}
	}
}

func (b *Board) hitSprites(s int, art ArtInfoProvider, ids []int, start, dir Vec3, out *Hit) {
	for _, i := range ids {
		if !b.validSprite(i) {
			continue
		}
		sp := &b.Sprites[i]
		if sp.Cstat&SpriteInvisible != 0 {
			continue
		}
		info := artInfo(art, sp.Picnum)
		if info.W <= 0 || info.H <= 0 {
			continue
		}
		width := float64(info.W*sp.XRepeat) / 4
		height := float64(info.H*sp.YRepeat) * 4
		bottom := float64(sp.Z)
		if sp.Cstat&SpriteRealCenter != 0 {
			bottom += height / 2
		}
		top := bottom - height
		cx, cy := float64(sp.X), float64(sp.Y)
		ang := buildAngleToRadians(sp.Ang)

		switch sp.Cstat.Alignment() {
		case SpriteFace:
			l2 := dot(dir.X, dir.Y, dir.X, dir.Y)
			if l2 == 0 {
				continue
			}
			ox, oy := cx-start.X, cy-start.Y
			t := dot(ox, oy, dir.X, dir.Y) / l2
			if t < 0 || math.Abs(cross(ox, oy, dir.X, dir.Y))/math.Sqrt(l2) > width/2 {
				continue
			}
			if z := start.Z + t*dir.Z; z >= top && z <= bottom {
				out.offer(t, HitSprite, s, -1, i, start, dir)
			}
		case SpriteWall:
			ex, ey := math.Sin(ang), -math.Cos(ang)
			t, ok := raySegment(start, dir, cx-ex*width/2, cy-ey*width/2, ex*width, ey*width)
			if !ok {
				continue
			}
			if z := start.Z + t*dir.Z; z >= top && z <= bottom {
				out.offer(t, HitSprite, s, -1, i, start, dir)
			}
		case SpriteFloor:
			if dir.Z == 0 {
				continue
			}
			t := (float64(sp.Z) - start.Z) / dir.Z
			if t < 0 {
				continue
			}
			rx, ry := start.X+t*dir.X-cx, start.Y+t*dir.Y-cy
			along := math.Cos(ang)*rx + math.Sin(ang)*ry
			across := -math.Sin(ang)*rx + math.Cos(ang)*ry
			depth := float64(info.H*sp.YRepeat) / 4
			if math.Abs(across) <= width/2 && math.Abs(along) <= depth/2 {
				out.offer(t, HitSprite, s, -1, i, start, dir)
			}
		}
	}
}
