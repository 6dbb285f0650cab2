package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dersalik/fibscope/internal/history"
)

func newHistoryCommand(s *settings) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.cfg.Log.History == "" {
				return fmt.Errorf("analysis history is disabled (log.history is empty)")
			}
			entries, err := history.Read(s.cfg.Log.History)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), entries, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of most recent runs to show (0 for all)")

	return cmd
}

func printHistory(out io.Writer, entries []history.Entry, limit int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No analysis runs recorded.")
		return err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	for _, e := range entries {
		currencies := strings.Join(e.Currencies, ", ")
		if currencies == "" {
			currencies = "-"
		}
		_, err := fmt.Fprintf(out, "%s  %d/%d transactions  %-15s  %-4s  %s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Analyzed, e.Total,
			currencies,
			e.Format,
			strings.Join(e.Files, ", "))
		if err != nil {
			return err
		}
	}
	return nil
}
