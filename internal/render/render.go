// Package render draws a top-down overview of a board.
package render

import (
	"io"

	"github.com/gogpu/gg"

	"github.com/stuarthighley/board"
)

// Options controls the overview image. Colours are hex strings.
type Options struct {
	Size       int
	Margin     int
	LineWidth  float64
	SpriteSize float64
	Background string
	SolidWall  string
	PortalWall string
	Sprite     string
}

func DefaultOptions() Options {
	return Options{
		Size:       1024,
		Margin:     32,
		LineWidth:  2,
		SpriteSize: 4,
		Background: "#101418",
		SolidWall:  "#e8e8e8",
		PortalWall: "#d04040",
		Sprite:     "#40a0ff",
	}
}

// view maps board coordinates into the square image, keeping the aspect
// ratio. Board y grows downward like image y.
type view struct {
	minX, minY float64
	scale      float64
	offX, offY float64
}

func newView(b *board.Board, o Options) view {
	minX, minY, maxX, maxY := b.Bounds()
	w, h := float64(maxX-minX), float64(maxY-minY)
	inner := float64(o.Size - 2*o.Margin)
	v := view{minX: float64(minX), minY: float64(minY), scale: 1}
	if span := max(w, h); span > 0 && inner > 0 {
		v.scale = inner / span
	}
	v.offX = float64(o.Margin) + (inner-w*v.scale)/2
	v.offY = float64(o.Margin) + (inner-h*v.scale)/2
	return v
}

func (v view) at(x, y int) (float64, float64) {
	return v.offX + (float64(x)-v.minX)*v.scale, v.offY + (float64(y)-v.minY)*v.scale
}

// Draw renders b. The caller closes the returned context.
func Draw(b *board.Board, o Options) (*gg.Context, error) {
	dc := gg.NewContext(o.Size, o.Size)
	dc.ClearWithColor(gg.Hex(o.Background))
	v := newView(b, o)

	dc.SetLineWidth(o.LineWidth)
	// portals last so shared edges show as portals
	for _, portals := range []bool{false, true} {
		colour := o.SolidWall
		if portals {
			colour = o.PortalWall
		}
		dc.SetColor(gg.Hex(colour).Color())
		drawn := false
		for w := range b.Walls {
			wall := &b.Walls[w]
			if b.IsPortal(w) != portals || wall.Point2 < 0 || wall.Point2 >= len(b.Walls) {
				continue
			}
			next := &b.Walls[wall.Point2]
			x1, y1 := v.at(wall.X, wall.Y)
			x2, y2 := v.at(next.X, next.Y)
			dc.DrawLine(x1, y1, x2, y2)
			drawn = true
		}
		if drawn {
			if err := dc.Stroke(); err != nil {
				dc.Close()
				return nil, err
			}
		}
	}

	if len(b.Sprites) > 0 {
		dc.SetColor(gg.Hex(o.Sprite).Color())
		for _, sp := range b.Sprites {
			x, y := v.at(sp.X, sp.Y)
			dc.DrawCircle(x, y, o.SpriteSize)
		}
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

// EncodePNG renders b as PNG into w.
func EncodePNG(w io.Writer, b *board.Board, o Options) error {
	dc, err := Draw(b, o)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG renders b into the PNG file at path.
func SavePNG(path string, b *board.Board, o Options) error {
	dc, err := Draw(b, o)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}
