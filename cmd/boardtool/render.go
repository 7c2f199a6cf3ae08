package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	irender "github.com/stuarthighley/board/internal/render"
)

var (
	flagImage string
	flagSize  int
)

var renderCmd = &cobra.Command{
	Use:   "render <board>",
	Short: "Draw a top-down PNG overview of a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagImage, "out", "o", "", "Output PNG (default: <board>.png)")
	renderCmd.Flags().IntVar(&flagSize, "size", 0, "Image size in pixels (default from config)")
}

func runRender(_ *cobra.Command, args []string) error {
	b, err := readBoard(args[0])
	if err != nil {
		return err
	}
	o := irender.Options{
		Size:       cfg.Render.Size,
		Margin:     cfg.Render.Margin,
		LineWidth:  cfg.Render.LineWidth,
		SpriteSize: cfg.Render.SpriteSize,
		Background: cfg.Render.Background,
		SolidWall:  cfg.Render.SolidWall,
		PortalWall: cfg.Render.PortalWall,
		Sprite:     cfg.Render.Sprite,
	}
	if flagSize > 0 {
		o.Size = flagSize
	}
	out := flagImage
	if out == "" {
		out = strings.TrimSuffix(args[0], ".yaml") + ".png"
	}
	if err := irender.SavePNG(out, b, o); err != nil {
		return fmt.Errorf("failed to render %s: %w", out, err)
	}
	fmt.Println(render(okStyle, "Wrote "+out))
	return nil
}
