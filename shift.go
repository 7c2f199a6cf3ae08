package board

import (
	"slices"

	"github.com/stuarthighley/board/tracker"
)

// moveWalls opens (size > 0) or closes (size < 0) a block of wall slots
// directly after afterWall inside sector s. It is the only place walls are
// renumbered: Point2, NextWall, every sector's range and the wall tracker are
// all shifted here. New slots are filled from the factory and still need
// their links set by the caller. Links into a closed block are cleared.
func (b *Board) moveWalls(s, afterWall, size int, refs *Refs, f Factory) error {
	if !b.validSector(s) {
		return invalidSector(s)
	}
	sec := &b.Sectors[s]
	if afterWall < sec.WallPtr-1 || afterWall >= sec.WallPtr+sec.WallNum {
		return corrupted("wall %d is outside sector %d", afterWall, s)
	}
	if size == 0 {
		return nil
	}
	if size > 0 {
		b.insertWallSlots(s, afterWall, size, refs, f)
		return nil
	}
	if afterWall-size >= sec.WallPtr+sec.WallNum {
		return corrupted("cannot remove %d walls after wall %d of sector %d", -size, afterWall, s)
	}
	b.removeWallSlots(s, afterWall, -size, refs)
	return nil
}

func (b *Board) insertWallSlots(s, afterWall, n int, refs *Refs, f Factory) {
	shift := func(v int) int {
		if v > afterWall {
			return v + n
		}
		return v
	}
	for i := range b.Walls {
		w := &b.Walls[i]
		if w.Point2 >= 0 {
			w.Point2 = shift(w.Point2)
		}
		if w.NextWall >= 0 {
			w.NextWall = shift(w.NextWall)
		}
	}
	slots := make([]Wall, n)
	for i := range slots {
		slots[i] = f.NewWall()
	}
	b.Walls = slices.Insert(b.Walls, afterWall+1, slots...)

	for i := range b.Sectors {
		sec := &b.Sectors[i]
		switch {
		case i == s:
			sec.WallNum += n
		case sec.WallPtr > afterWall+1, sec.WallPtr == afterWall+1 && i > s:
			sec.WallPtr += n
		}
	}
	refs.Walls.Update(shift)
}

func (b *Board) removeWallSlots(s, afterWall, n int, refs *Refs) {
	lo, hi := afterWall+1, afterWall+n
	remap := func(v int) int {
		switch {
		case v < lo:
			return v
		case v <= hi:
			return tracker.Nil
		}
		return v - n
	}
	b.Walls = slices.Delete(b.Walls, lo, hi+1)
	for i := range b.Walls {
		w := &b.Walls[i]
		if w.Point2 >= 0 {
			w.Point2 = remap(w.Point2)
		}
		if w.NextWall >= 0 {
			w.NextWall = remap(w.NextWall)
			if w.NextWall < 0 {
				w.NextSector = -1
			}
		}
	}

	for i := range b.Sectors {
		sec := &b.Sectors[i]
		switch {
		case i == s:
			sec.WallNum -= n
		case sec.WallPtr > afterWall:
			sec.WallPtr = max(afterWall+1, sec.WallPtr-n)
		}
	}
	refs.Walls.Update(remap)
}

// resizeWalls grows or shrinks the wall range of s at its end.
func (b *Board) resizeWalls(s, n int, refs *Refs, f Factory) error {
	if !b.validSector(s) {
		return invalidSector(s)
	}
	sec := b.Sectors[s]
	switch diff := n - sec.WallNum; {
	case diff > 0:
		return b.moveWalls(s, sec.WallPtr+sec.WallNum-1, diff, refs, f)
	case diff < 0:
		return b.moveWalls(s, sec.WallPtr+n-1, diff, refs, f)
	}
	return nil
}

// deleteSectorAt removes sector s from the array. Its walls must already be
// gone. Portals, sprites and slabs referencing it are cleared.
func (b *Board) deleteSectorAt(s int, refs *Refs) error {
	if !b.validSector(s) {
		return invalidSector(s)
	}
	if n := b.Sectors[s].WallNum; n != 0 {
		return corrupted("sector %d still owns %d walls", s, n)
	}
	remap := func(v int) int {
		switch {
		case v == s:
			return tracker.Nil
		case v > s:
			return v - 1
		}
		return v
	}
	b.Sectors = slices.Delete(b.Sectors, s, s+1)
	for i := range b.Walls {
		w := &b.Walls[i]
		if w.NextSector >= 0 {
			w.NextSector = remap(w.NextSector)
			if w.NextSector < 0 {
				w.NextWall = -1
			}
		}
	}
	for i := range b.Sprites {
		if sp := &b.Sprites[i]; sp.SectNum >= 0 {
			sp.SectNum = remap(sp.SectNum)
		}
	}
	// slab sectors name their reference sector in Hitag
	for i := range b.Sectors {
		sec := &b.Sectors[i]
		if sec.Lotag != slabLotag || sec.Hitag < 0 {
			continue
		}
		if sec.Hitag = remap(sec.Hitag); sec.Hitag == tracker.Nil {
			sec.Lotag, sec.Hitag = 0, 0
		}
	}
	refs.Sectors.Update(remap)
	return nil
}

// removeSprite deletes sprite i and renumbers the ones after it.
func (b *Board) removeSprite(i int, refs *Refs) error {
	if !b.validSprite(i) {
		return invalidSprite(i)
	}
	b.Sprites = slices.Delete(b.Sprites, i, i+1)
	refs.Sprites.Update(func(v int) int {
		switch {
		case v == i:
			return tracker.Nil
		case v > i:
			return v - 1
		}
		return v
	})
	return nil
}
