// Package board holds a BUILD-engine style level as dense arrays of sectors,
// walls and sprites, the structural operators that edit it without breaking
// its topology, and a hitscan engine used to pick elements.
//
// Every sector owns the contiguous wall range [WallPtr, WallPtr+WallNum).
// Inside that range walls form closed loops chained by Point2; the first loop
// is the clockwise outer boundary, any following loops are counter-clockwise
// holes. Two walls describing the same edge from both sides are portal twins
// and reference each other through NextWall/NextSector.
package board

// PlaneStat holds the ceilingstat/floorstat bits of a sector plane.
type PlaneStat int

const (
	PlaneParallax PlaneStat = 1 << iota
	PlaneSloped
	PlaneSwapXY
	PlaneDoubleSmooshiness
	PlaneXFlip
	PlaneYFlip
	PlaneAlignToFirstWall
)

// WallStat holds the cstat bits of a wall.
type WallStat int

const (
	WallBlocking WallStat = 1 << iota
	WallSwapBottoms
	WallAlignBottom
	WallXFlip
	WallMasked
	WallOneWay
	WallHitscan
	WallTranslucent
	WallYFlip
	WallTranslucentReversed
)

// SpriteStat holds the cstat bits of a sprite.
type SpriteStat int

const (
	SpriteBlocking SpriteStat = 1 << iota
	SpriteTranslucent
	SpriteXFlip
	SpriteYFlip
	spriteAlignLo
	spriteAlignHi
	SpriteOneSided
	SpriteRealCenter
	SpriteHitscan
	SpriteTranslucentReversed

	SpriteInvisible SpriteStat = 1 << 15
)

// SpriteAlignment is how a sprite is oriented in the world.
type SpriteAlignment int

const (
	SpriteFace SpriteAlignment = iota
	SpriteWall
	SpriteFloor
)

// Alignment extracts the alignment encoded in bits 4 and 5.
func (s SpriteStat) Alignment() SpriteAlignment {
	return SpriteAlignment((s & (spriteAlignLo | spriteAlignHi)) >> 4)
}

// Plane is a sector ceiling or floor.
type Plane struct {
	Z        int
	Heinum   int
	Picnum   int
	Shade    int
	Pal      int
	XPanning int
	YPanning int
	Stat     PlaneStat
}

// Sloped reports whether the plane is tilted.
func (p *Plane) Sloped() bool {
	return p.Stat&PlaneSloped != 0 && p.Heinum != 0
}

type Sector struct {
	WallPtr    int
	WallNum    int
	Ceiling    Plane
	Floor      Plane
	Visibility int
	Lotag      int
	Hitag      int
	Extra      int
}

// Wall is a directed edge from (X, Y) to the start of wall Point2.
type Wall struct {
	X, Y       int
	Point2     int
	NextWall   int
	NextSector int
	Cstat      WallStat
	Picnum     int
	OverPicnum int
	Shade      int
	Pal        int
	XRepeat    int
	YRepeat    int
	XPanning   int
	YPanning   int
	Lotag      int
	Hitag      int
	Extra      int
}

type Sprite struct {
	X, Y, Z int
	SectNum int
	Picnum  int
	Ang     int
	Cstat   SpriteStat
	Shade   int
	Pal     int
	XRepeat int
	YRepeat int
	XOffset int
	YOffset int
	Lotag   int
	Hitag   int
	Extra   int
}

type Point struct {
	X, Y int
}

// Board is the level. The slices are dense: ids are indices and every
// structural edit renumbers them in place.
type Board struct {
	Sectors []Sector
	Walls   []Wall
	Sprites []Sprite
}

func (b *Board) NumSectors() int { return len(b.Sectors) }
func (b *Board) NumWalls() int   { return len(b.Walls) }
func (b *Board) NumSprites() int { return len(b.Sprites) }

func (b *Board) validSector(s int) bool { return s >= 0 && s < len(b.Sectors) }
func (b *Board) validWall(w int) bool   { return w >= 0 && w < len(b.Walls) }
func (b *Board) validSprite(i int) bool { return i >= 0 && i < len(b.Sprites) }

// IsPortal reports whether w has a twin in a neighbouring sector.
func (b *Board) IsPortal(w int) bool {
	return b.validWall(w) && b.Walls[w].NextWall >= 0
}

func (b *Board) point(w int) Point {
	return Point{b.Walls[w].X, b.Walls[w].Y}
}

// planeCoeffs returns a, bx, cy with z(x, y) = a + bx*x + cy*y.
func (b *Board) planeCoeffs(s int, p *Plane) (a, bx, cy float64) {
	if !p.Sloped() {
		return float64(p.Z), 0, 0
	}
	sec := &b.Sectors[s]
	w1 := &b.Walls[sec.WallPtr]
	w2 := &b.Walls[w1.Point2]
	dx, dy := float64(w2.X-w1.X), float64(w2.Y-w1.Y)
	l := length(dx, dy)
	if l == 0 {
		return float64(p.Z), 0, 0
	}
	k := float64(p.Heinum) / (256 * l)
	wx, wy := float64(w1.X), float64(w1.Y)
	return float64(p.Z) + k*(dy*wx-dx*wy), -k * dy, k * dx
}

func (b *Board) planeZAt(s int, p *Plane, x, y float64) float64 {
	a, bx, cy := b.planeCoeffs(s, p)
	return a + bx*x + cy*y
}

// CeilingZAt evaluates the ceiling of sector s at (x, y), honouring slopes.
func (b *Board) CeilingZAt(s int, x, y float64) float64 {
	return b.planeZAt(s, &b.Sectors[s].Ceiling, x, y)
}

// FloorZAt evaluates the floor of sector s at (x, y), honouring slopes.
func (b *Board) FloorZAt(s int, x, y float64) float64 {
	return b.planeZAt(s, &b.Sectors[s].Floor, x, y)
}

// alignPlaneSlope tilts p so that it keeps its height along the first wall
// of s and passes through z at (x, y).
func (b *Board) alignPlaneSlope(s int, p *Plane, x, y, z int) {
	sec := &b.Sectors[s]
	w1 := &b.Walls[sec.WallPtr]
	w2 := &b.Walls[w1.Point2]
	dx, dy := w2.X-w1.X, w2.Y-w1.Y
	i := (y-w1.Y)*dx - (x-w1.X)*dy
	if i == 0 {
		return
	}
	p.Heinum = round(float64(z-p.Z) * 256 * length(dx, dy) / float64(i))
	if p.Heinum == 0 {
		p.Stat &^= PlaneSloped
	} else {
		p.Stat |= PlaneSloped
	}
}

// Bounds returns the bounding box of all wall vertices.
func (b *Board) Bounds() (minX, minY, maxX, maxY int) {
	if len(b.Walls) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = b.Walls[0].X, b.Walls[0].Y
	maxX, maxY = minX, minY
	for _, w := range b.Walls[1:] {
		minX, maxX = min(minX, w.X), max(maxX, w.X)
		minY, maxY = min(minY, w.Y), max(maxY, w.Y)
	}
	return minX, minY, maxX, maxY
}
