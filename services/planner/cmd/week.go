package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"study-planner/services/planner/core"
)

var weekStartFlag string

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the Monday-start week grid",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekStartFlag, "start", "", "first day of the grid (YYYY-MM-DD), defaults to this week's Monday")
}

func runWeek(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	start, err := parseStartFlag(weekStartFlag, a.svc.Location())
	if err != nil {
		return err
	}

	days, err := a.svc.Week(cmd.Context(), time.Now(), start)
	if err != nil {
		return fmt.Errorf("failed to build week: %w", err)
	}
	printWeek(cmd.OutOrStdout(), days)
	return nil
}

func parseStartFlag(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := core.ParseDate(value, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid --start %q: %w", value, err)
	}
	return &d, nil
}

func printWeek(w io.Writer, days []core.DayBucket) {
	for _, day := range days {
		fmt.Fprintf(w, "%s %s\n", day.Date.Format("Mon"), day.Date.Format(core.DateLayout))
		if len(day.Sessions) == 0 {
			fmt.Fprintln(w, "  No sessions")
			continue
		}
		for _, s := range day.Sessions {
			fmt.Fprintf(w, "  %s  %s\n", timeSpan(s), s.Label)
		}
	}
}

func timeSpan(s core.ScheduledSession) string {
	if s.End == nil {
		return s.Start.Format("15:04")
	}
	return s.Start.Format("15:04") + " — " + s.End.Format("15:04")
}
