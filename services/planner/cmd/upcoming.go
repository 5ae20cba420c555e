package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"study-planner/services/planner/core"
)

const dateTimeLayout = "2006-01-02 15:04"

var upcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Print sessions starting within the next seven days",
	Args:  cobra.NoArgs,
	RunE:  runUpcoming,
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.svc.Upcoming(cmd.Context(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to list upcoming sessions: %w", err)
	}
	printUpcoming(cmd.OutOrStdout(), sessions)
	return nil
}

func printUpcoming(w io.Writer, sessions []core.ScheduledSession) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions planned or logged for the next 7 days.")
		return
	}
	for _, s := range sessions {
		span := s.Start.Format(dateTimeLayout)
		if s.End != nil {
			span += " — " + s.End.Format(dateTimeLayout)
		}
		fmt.Fprintf(w, "%s  %s\n", span, s.Label)
		if s.Notes != "" {
			fmt.Fprintf(w, "    %s\n", s.Notes)
		}
	}
}
