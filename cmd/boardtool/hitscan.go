package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stuarthighley/board"
)

var (
	flagFrom      string
	flagDir       string
	flagSector    int
	flagNoSprites bool
)

var hitscanCmd = &cobra.Command{
	Use:   "hitscan <board>",
	Short: "Trace a ray through a board and report the first hit",
	Long: `Trace a ray from --from along --dir. The start sector is looked up
when --sector is negative.

Examples:
  boardtool hitscan level.yaml --from 512,512,-8192 --dir 1,0,0
  boardtool hitscan level.yaml --from 512,512,-8192 --dir 0,0,1 --sector 0`,
	Args: cobra.ExactArgs(1),
	RunE: runHitscan,
}

func init() {
	hitscanCmd.Flags().StringVar(&flagFrom, "from", "0,0,0", "Start point x,y,z")
	hitscanCmd.Flags().StringVar(&flagDir, "dir", "1,0,0", "Direction dx,dy,dz")
	hitscanCmd.Flags().IntVar(&flagSector, "sector", -1, "Start sector (-1 = find)")
	hitscanCmd.Flags().BoolVar(&flagNoSprites, "no-sprites", false, "Ignore sprites")
}

func parseVec3(s string) (board.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return board.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return board.Vec3{}, fmt.Errorf("bad component %q: %w", p, err)
		}
		v[i] = f
	}
	return board.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func runHitscan(_ *cobra.Command, args []string) error {
	b, err := readBoard(args[0])
	if err != nil {
		return err
	}
	start, err := parseVec3(flagFrom)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	dir, err := parseVec3(flagDir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	var flags board.HitscanFlags
	if flagNoSprites || !cfg.Editor.HitscanSprites {
		flags |= board.HitscanNoSprites
	}

	var h board.Hit
	board.Hitscan(b, art, board.NewSectorSprites(b), start, flagSector, dir, flags, &h)
	if h.Kind == board.HitNone {
		fmt.Println(render(dimStyle, "no hit"))
		return nil
	}
	fmt.Printf("%s at (%.1f, %.1f, %.1f) distance %.1f sector %d",
		render(titleStyle, h.Kind.String()), h.X, h.Y, h.Z, h.T, h.Sector)
	switch {
	case h.Wall >= 0:
		fmt.Printf(" wall %d", h.Wall)
	case h.Sprite >= 0:
		fmt.Printf(" sprite %d", h.Sprite)
	}
	fmt.Println()
	return nil
}
