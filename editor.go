package board

// Editor bundles what the structural operators need: the board, the
// reference trackers to notify, the factory new elements come from and the
// art used to fix texture repeats. Art may be nil.
type Editor struct {
	Board   *Board
	Refs    *Refs
	Factory Factory
	Art     ArtInfoProvider
}

// NewEditor returns an editor over b using DefaultFactory and fresh trackers.
// A nil board starts empty.
func NewEditor(b *Board, art ArtInfoProvider) *Editor {
	if b == nil {
		b = DefaultFactory.NewBoard()
	}
	return &Editor{
		Board:   b,
		Refs:    NewRefs(),
		Factory: DefaultFactory,
		Art:     art,
	}
}

func (e *Editor) fixXRepeat(walls ...int) {
	for _, w := range walls {
		if e.Board.validWall(w) {
			e.Board.fixXRepeat(w, e.Art)
		}
	}
}

// link makes a and c portal twins.
func (b *Board) link(a, c int) {
	b.Walls[a].NextWall, b.Walls[a].NextSector = c, b.ownerOfWall(c)
	b.Walls[c].NextWall, b.Walls[c].NextSector = a, b.ownerOfWall(a)
}
