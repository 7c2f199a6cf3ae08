package board

// ArtInfo is the size of a tile in texels.
type ArtInfo struct {
	W, H int
}

// ArtInfoProvider resolves tile sizes. Unknown tiles report a zero size.
type ArtInfoProvider interface {
	Info(picnum int) ArtInfo
}

// StaticArt is an in-memory tile table.
type StaticArt map[int]ArtInfo

func (a StaticArt) Info(picnum int) ArtInfo {
	return a[picnum]
}

func artInfo(art ArtInfoProvider, picnum int) ArtInfo {
	if art == nil {
		return ArtInfo{}
	}
	return art.Info(picnum)
}

// One texel spans 16 world units horizontally at xrepeat 8.
const texelUnits = 16

// fixXRepeat sets the wall's xrepeat so its texture keeps a constant texel
// density, snapped to whole tiles when the tile width is known.
func (b *Board) fixXRepeat(w int, art ArtInfoProvider) {
	wall := &b.Walls[w]
	texels := b.WallLength(w) / texelUnits
	if tw := artInfo(art, wall.Picnum).W; tw > 0 {
		tiles := max(1, round(texels/float64(tw)))
		texels = float64(tiles * tw)
	}
	wall.XRepeat = clamp(round(texels/8), 1, 255)
}
