package board

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateReportsEveryViolation(t *testing.T) {
	e := twoRooms(t)
	b := e.Board
	b.Walls[1].NextWall = 6
	b.Walls[2].Point2 = 0
	b.Sprites = append(b.Sprites, Sprite{SectNum: 9})

	err := b.Validate()
	if !errors.Is(err, ErrCorruptedBoard) {
		t.Fatalf("Validate() = %v, want ErrCorruptedBoard", err)
	}
	for _, want := range []string{"wall 1", "does not close", "sprite 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
}

func TestValidateWinding(t *testing.T) {
	e := newSquareEditor(t)
	b := e.Board
	// flip the outer loop in place
	for i, p := range []Point{{0, 0}, {0, 1024}, {1024, 1024}, {1024, 0}} {
		b.Walls[i].X, b.Walls[i].Y = p.X, p.Y
	}
	if err := b.Validate(); err == nil || !strings.Contains(err.Error(), "wrong way") {
		t.Errorf("Validate() = %v, want a winding error", err)
	}
}

func TestPrintTree(t *testing.T) {
	e := newSquareEditor(t)
	first, err := e.CreateInnerLoop(0, square(256, 256, 512))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.FillInnerLoop(first); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := PrintTree(&buf, e.Board); err != nil {
		t.Fatalf("PrintTree() failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"- sector 0 walls 0..7", "- hole loop 4..7", "      - sector 1 walls 8..11", "-> sector 1 wall"} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintTree() output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "- sector 1 ") != 1 {
		t.Errorf("sector 1 printed more than once:\n%s", out)
	}
}
