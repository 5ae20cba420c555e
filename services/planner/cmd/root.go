package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "planner",
	Short: "Study planner for subjects, tasks and study sessions",
	Long: `planner serves a single-page study planner backed by PostgreSQL.
It also prints the upcoming sessions and the week grid, and can
export planned sessions to Google Calendar.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main. Commands see a context that
// is cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "planner configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(upcomingCmd)
	rootCmd.AddCommand(gcalSyncCmd)
}
