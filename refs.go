package board

import "github.com/stuarthighley/board/tracker"

// Refs holds one root tracker per element kind. Every renumbering edit
// pushes its old-to-new id map through the matching root.
type Refs struct {
	Walls   *tracker.Scope
	Sectors *tracker.Scope
	Sprites *tracker.Scope
}

func NewRefs() *Refs {
	return &Refs{
		Walls:   tracker.New(),
		Sectors: tracker.New(),
		Sprites: tracker.New(),
	}
}
