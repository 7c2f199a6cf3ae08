package board

import (
	"fmt"
	"io"
)

// PrintTree writes the sector nesting of b: every top level sector with its
// loops, and under each hole the sectors filling it.
func PrintTree(w io.Writer, b *Board) error {
	nested := make([]bool, len(b.Sectors))
	for s := range b.Sectors {
		inner, err := b.InnerSectors(s)
		if err != nil {
			return err
		}
		for _, i := range inner {
			nested[i] = true
		}
	}

	printed := make([]bool, len(b.Sectors))
	var printRecursive func(s int, prefix string) error
	printRecursive = func(s int, prefix string) error {
		if printed[s] {
			return nil
		}
		printed[s] = true
		sec := &b.Sectors[s]
		fmt.Fprintf(w, "%s- sector %d walls %d..%d ceiling %d floor %d\n",
			prefix, s, sec.WallPtr, sec.WallPtr+sec.WallNum-1, sec.Ceiling.Z, sec.Floor.Z)
		loops, err := b.sectorLoops(s)
		if err != nil {
			return err
		}
		for i, start := range loops {
			walls, err := b.LoopWalls(start)
			if err != nil {
				return err
			}
			kind := "outer"
			if i > 0 {
				kind = "hole"
			}
			fmt.Fprintf(w, "%s   - %s loop %d..%d\n", prefix, kind, walls[0], walls[len(walls)-1])
			for _, lw := range walls {
				wall := &b.Walls[lw]
				if wall.NextWall >= 0 {
					fmt.Fprintf(w, "%s      - wall %d (%d, %d) -> sector %d wall %d\n", prefix, lw, wall.X, wall.Y, wall.NextSector, wall.NextWall)
				} else {
					fmt.Fprintf(w, "%s      - wall %d (%d, %d)\n", prefix, lw, wall.X, wall.Y)
				}
			}
			if i == 0 {
				continue
			}
			inner, err := b.InnerSectorsOfLoop(start)
			if err != nil {
				return err
			}
			for _, is := range inner {
				if err := printRecursive(is, prefix+"      "); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for s := range b.Sectors {
		if nested[s] {
			continue
		}
		if err := printRecursive(s, ""); err != nil {
			return err
		}
	}
	// sectors only reachable as somebody's hole filling that was never printed
	for s := range b.Sectors {
		if err := printRecursive(s, ""); err != nil {
			return err
		}
	}
	return nil
}
