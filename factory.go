package board

import "slices"

// Factory fabricates and copies board elements. Operators that create walls,
// sectors or sprites go through it so callers can seed their own defaults.
type Factory interface {
	NewBoard() *Board
	NewSector() Sector
	NewWall() Wall
	NewSprite() Sprite
	CloneBoard(b *Board) *Board
	CloneSector(s *Sector) Sector
	CloneWall(w *Wall) Wall
	CloneSprite(s *Sprite) Sprite
}

// TemplateFactory hands out copies of its templates.
type TemplateFactory struct {
	Sector Sector
	Wall   Wall
	Sprite Sprite
}

// DefaultFactory carries Build's editor defaults: a 64 unit tall room with
// walls repeating their texture 8x8.
var DefaultFactory = TemplateFactory{
	Sector: Sector{
		Ceiling: Plane{Z: -16384},
		Floor:   Plane{Z: 0},
	},
	Wall: Wall{
		Point2:     -1,
		NextWall:   -1,
		NextSector: -1,
		XRepeat:    8,
		YRepeat:    8,
	},
	Sprite: Sprite{
		SectNum: -1,
		XRepeat: 64,
		YRepeat: 64,
	},
}

func (f TemplateFactory) NewBoard() *Board { return &Board{} }

func (f TemplateFactory) NewSector() Sector { return f.Sector }
func (f TemplateFactory) NewWall() Wall     { return f.Wall }
func (f TemplateFactory) NewSprite() Sprite { return f.Sprite }

func (f TemplateFactory) CloneSector(s *Sector) Sector { return *s }
func (f TemplateFactory) CloneWall(w *Wall) Wall       { return *w }
func (f TemplateFactory) CloneSprite(s *Sprite) Sprite { return *s }

func (f TemplateFactory) CloneBoard(b *Board) *Board {
	return &Board{
		Sectors: slices.Clone(b.Sectors),
		Walls:   slices.Clone(b.Walls),
		Sprites: slices.Clone(b.Sprites),
	}
}
