package board

import (
	"errors"
	"fmt"
)

// Validate checks the board invariants: sector ranges tile the wall array in
// order, loops close inside their sector with a clockwise outer loop first,
// portals are symmetric and sprites sit in existing sectors. All violations
// are reported, wrapped in ErrCorruptedBoard.
func (b *Board) Validate() error {
	var errs []error
	next := 0
	for s := range b.Sectors {
		sec := &b.Sectors[s]
		if sec.WallPtr != next {
			errs = append(errs, fmt.Errorf("sector %d: wallptr %d, want %d", s, sec.WallPtr, next))
		}
		next = sec.WallPtr + sec.WallNum
		if sec.WallNum < 3 || next > len(b.Walls) {
			errs = append(errs, fmt.Errorf("sector %d: bad wall range [%d, %d)", s, sec.WallPtr, next))
			continue
		}
		errs = append(errs, b.validateLoops(s)...)
		for w := sec.WallPtr; w < next; w++ {
			errs = append(errs, b.validatePortal(s, w)...)
		}
	}
	if next != len(b.Walls) {
		errs = append(errs, fmt.Errorf("sectors cover %d of %d walls", next, len(b.Walls)))
	}
	for i, sp := range b.Sprites {
		if !b.validSector(sp.SectNum) {
			errs = append(errs, fmt.Errorf("sprite %d: sector %d does not exist", i, sp.SectNum))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrCorruptedBoard, errors.Join(errs...))
	}
	return nil
}

func (b *Board) validateLoops(s int) []error {
	var errs []error
	sec := &b.Sectors[s]
	end := sec.WallPtr + sec.WallNum
	for start := sec.WallPtr; start < end; {
		cur := start
		for cur+1 < end && b.Walls[cur].Point2 == cur+1 {
			cur++
		}
		if b.Walls[cur].Point2 != start {
			return append(errs, fmt.Errorf("sector %d: loop at wall %d does not close", s, start))
		}
		if cur-start+1 < 3 {
			errs = append(errs, fmt.Errorf("sector %d: loop at wall %d has %d walls", s, start, cur-start+1))
		}
		pts := make([]Point, 0, cur-start+1)
		for w := start; w <= cur; w++ {
			pts = append(pts, b.point(w))
		}
		if outer := start == sec.WallPtr; Clockwise(pts) != outer {
			errs = append(errs, fmt.Errorf("sector %d: loop at wall %d winds the wrong way", s, start))
		}
		start = cur + 1
	}
	return errs
}

func (b *Board) validatePortal(s, w int) []error {
	wall := &b.Walls[w]
	switch {
	case wall.NextWall < 0 && wall.NextSector < 0:
		return nil
	case !b.validWall(wall.NextWall) || !b.validSector(wall.NextSector):
		return []error{fmt.Errorf("wall %d: dangling portal %d/%d", w, wall.NextWall, wall.NextSector)}
	}
	var errs []error
	twin := &b.Walls[wall.NextWall]
	if twin.NextWall != w || twin.NextSector != s {
		errs = append(errs, fmt.Errorf("wall %d: twin %d links back to %d/%d", w, wall.NextWall, twin.NextWall, twin.NextSector))
	}
	if !b.ownsWall(wall.NextSector, wall.NextWall) {
		errs = append(errs, fmt.Errorf("wall %d: twin %d is not in sector %d", w, wall.NextWall, wall.NextSector))
	}
	if !b.validWall(wall.Point2) || !b.validWall(twin.Point2) {
		return errs
	}
	if b.point(wall.NextWall) != b.point(wall.Point2) || b.point(twin.Point2) != b.point(w) {
		errs = append(errs, fmt.Errorf("wall %d: twin %d has different endpoints", w, wall.NextWall))
	}
	return errs
}
