package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stuarthighley/board/internal/edit"
	"github.com/stuarthighley/board/internal/history"
)

var (
	flagBoard     string
	flagOut       string
	flagNoHistory bool
	flagNoCheck   bool
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Apply a YAML edit script to a board",
	Long: `Apply the ops of a YAML edit script in order. The board is validated
after every op and the run stops at the first failure. On success the board
is written out and a snapshot is committed to the history database.

Examples:
  boardtool run rooms.yaml
  boardtool run split.yaml --board level.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().StringVar(&flagBoard, "board", "", "Board file to edit (default: start empty)")
	runCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output board file (default: --board, or board.yaml)")
	runCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not commit a history snapshot")
	runCmd.Flags().BoolVar(&flagNoCheck, "no-validate", false, "Skip validation after each op")
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := edit.LoadScript(args[0])
	if err != nil {
		return err
	}
	b, err := readBoard(flagBoard)
	if err != nil {
		return err
	}

	d := edit.NewDispatcher(newEditor(b), logger)
	d.Validate = !flagNoCheck
	d.HullDepth = cfg.Editor.HullDepth
	results, runErr := d.Run(cmd.Context(), script)
	printResults(results)
	if runErr != nil {
		return runErr
	}

	out := flagOut
	if out == "" {
		out = flagBoard
	}
	if out == "" {
		out = "board.yaml"
	}
	if err := writeBoard(out, b); err != nil {
		return err
	}
	fmt.Println(render(okStyle, fmt.Sprintf("Wrote %s: %d sectors, %d walls, %d sprites",
		out, b.NumSectors(), b.NumWalls(), b.NumSprites())))

	if flagNoHistory {
		return nil
	}
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		return nil
	}
	defer store.Close()
	id, err := store.Commit(cmd.Context(), filepath.Base(args[0]), b)
	if err != nil {
		return err
	}
	if n, err := store.Prune(cmd.Context(), cfg.History.Keep); err == nil && n > 0 {
		logger.Debug("pruned snapshots", "count", n)
	}
	logger.Info("committed snapshot", "id", id)
	return nil
}

func printResults(results []edit.Result) {
	var sb strings.Builder
	for i, r := range results {
		status := render(okStyle, "ok")
		switch {
		case r.Err != nil:
			status = render(errorStyle, r.Err.Error())
		case r.Invalid != nil:
			status = render(errorStyle, "invalid board")
		}
		id := render(dimStyle, "-")
		if r.ID >= 0 {
			id = fmt.Sprint(r.ID)
		}
		fmt.Fprintf(&sb, "%3d  %-18s %-6s %s\n", i, r.Op.Name(), id, status)
	}
	if sb.Len() == 0 {
		return
	}
	fmt.Println(render(titleStyle, "Ops"))
	fmt.Print(sb.String())
}
