// boardtool edits BUILD-style boards from the command line.
//
// Usage:
//
//	boardtool run <script>          - Apply a YAML edit script to a board
//	boardtool info <board>          - Validate a board and print its sector tree
//	boardtool render <board>        - Draw a top-down PNG overview
//	boardtool hitscan <board>       - Trace a ray through a board
//	boardtool history list          - List stored snapshots
//	boardtool history undo          - Drop the newest snapshot
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.boardtool, ./configs)
//	--db <path>         - History database (default from config)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stuarthighley/board"
	"github.com/stuarthighley/board/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	cfg    config.Config
	art    board.StaticArt
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, render(errorStyle, "Error: "+err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boardtool",
	Short: "Edit BUILD-style boards from the command line",
	Long: `boardtool applies structural edits to sector/wall boards and inspects
the result.

Examples:
  boardtool run rooms.yaml --out level.yaml
  boardtool info level.yaml
  boardtool render level.yaml -o level.png
  boardtool hitscan level.yaml --from 512,512,-8192 --dir 1,0,0
  boardtool history list`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(hitscanCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the config and wires the logger before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.History.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "boardtool",
		Level:  cfg.LogLevel(),
	})
	board.SetLogger(logger.WithPrefix("board"))

	art, err = cfg.LoadArt()
	return err
}

// newEditor wraps b with the configured factory and art.
func newEditor(b *board.Board) *board.Editor {
	e := board.NewEditor(b, art)
	e.Factory = cfg.Factory()
	return e
}
