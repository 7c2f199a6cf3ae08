package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stuarthighley/board/internal/history"
)

var (
	flagLimit      int
	flagHistoryOut string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and roll back stored board snapshots",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Drop the newest snapshot and write out the one before it",
	Args:  cobra.NoArgs,
	RunE:  runHistoryUndo,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Write snapshot <id> to a board file",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum snapshots to list (0 = all)")
	for _, c := range []*cobra.Command{historyUndoCmd, historyShowCmd} {
		c.Flags().StringVarP(&flagHistoryOut, "out", "o", "board.yaml", "Output board file")
	}
	historyCmd.AddCommand(historyListCmd, historyUndoCmd, historyShowCmd)
}

func openHistory() (*history.Store, error) {
	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No snapshots recorded yet.")
		return nil
	}

	fmt.Println(render(titleStyle, fmt.Sprintf("  %-5s  %-20s  %-8s %-8s %-8s %s", "ID", "Label", "Sectors", "Walls", "Sprites", "Date")))
	for _, sn := range list {
		fmt.Printf("  %-5d  %-20s  %-8d %-8d %-8d %s\n",
			sn.ID, sn.Label, sn.Sectors, sn.Walls, sn.Sprites, sn.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryUndo(cmd *cobra.Command, _ []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	b, sn, err := store.Undo(cmd.Context())
	if err != nil {
		return err
	}
	if err := writeBoard(flagHistoryOut, b); err != nil {
		return err
	}
	fmt.Println(render(okStyle, fmt.Sprintf("Restored snapshot %d (%s) to %s", sn.ID, sn.Label, flagHistoryOut)))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad snapshot id %q: %w", args[0], err)
	}
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	b, err := store.Load(cmd.Context(), id)
	if err != nil {
		return err
	}
	if err := writeBoard(flagHistoryOut, b); err != nil {
		return err
	}
	fmt.Println(render(okStyle, fmt.Sprintf("Wrote snapshot %d to %s", id, flagHistoryOut)))
	return nil
}
