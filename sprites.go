package board

// InsertSprite places a new sprite from the factory at (x, y, z) in sector s
// and returns its id.
func (e *Editor) InsertSprite(x, y, z, s int) (int, error) {
	b := e.Board
	if !b.validSector(s) {
		return -1, invalidSector(s)
	}
	sp := e.Factory.NewSprite()
	sp.X, sp.Y, sp.Z = x, y, z
	sp.SectNum = s
	b.Sprites = append(b.Sprites, sp)
	logger.Debug("insert sprite", "sprite", len(b.Sprites)-1, "sector", s)
	return len(b.Sprites) - 1, nil
}

func (e *Editor) DeleteSprite(i int) error {
	if err := e.Board.removeSprite(i, e.Refs); err != nil {
		return err
	}
	logger.Debug("delete sprite", "sprite", i)
	return nil
}

// MoveSprite moves sprite i and re-locates its sector. A sprite moved off
// the board keeps its old sector.
func (e *Editor) MoveSprite(i, x, y, z int) error {
	b := e.Board
	if !b.validSprite(i) {
		return invalidSprite(i)
	}
	sp := &b.Sprites[i]
	sp.X, sp.Y, sp.Z = x, y, z
	if s := b.FindSector(x, y, sp.SectNum); s >= 0 {
		sp.SectNum = s
	}
	return nil
}

// SpriteIndex lists the sprites owned by a sector.
type SpriteIndex interface {
	SpritesBySector(s int) []int
}

// SectorSprites is a SpriteIndex snapshot, indexed by sector.
type SectorSprites [][]int

func NewSectorSprites(b *Board) SectorSprites {
	ss := make(SectorSprites, len(b.Sectors))
	for i, sp := range b.Sprites {
		if b.validSector(sp.SectNum) {
			ss[sp.SectNum] = append(ss[sp.SectNum], i)
		}
	}
	return ss
}

func (ss SectorSprites) SpritesBySector(s int) []int {
	if s < 0 || s >= len(ss) {
		return nil
	}
	return ss[s]
}
