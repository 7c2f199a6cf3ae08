package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stuarthighley/board"
)

var flagTree bool

var infoCmd = &cobra.Command{
	Use:   "info <board>",
	Short: "Validate a board and print its sector tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&flagTree, "tree", true, "Print the sector/loop tree")
}

func runInfo(_ *cobra.Command, args []string) error {
	b, err := readBoard(args[0])
	if err != nil {
		return err
	}
	minX, minY, maxX, maxY := b.Bounds()
	summary := fmt.Sprintf("%s\nsectors %d  walls %d  sprites %d\nbounds (%d, %d) - (%d, %d)",
		args[0], b.NumSectors(), b.NumWalls(), b.NumSprites(), minX, minY, maxX, maxY)
	if styled() {
		summary = boxStyle.Width(min(termWidth()-2, 60)).Render(summary)
	}
	fmt.Println(summary)

	verr := b.Validate()
	if verr != nil {
		fmt.Println(render(errorStyle, verr.Error()))
	} else {
		fmt.Println(render(okStyle, "board is valid"))
	}
	if flagTree && verr == nil {
		if err := board.PrintTree(os.Stdout, b); err != nil {
			return err
		}
	}
	return verr
}
