package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "metadia",
		Short: "Daily income goals for gig workers",
		Long: `metadia tracks income, bills and savings and tells you how much you still have to earn
today to cover the current billing cycle.

Reports are computed from the same data the API and the TUI use.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.date, "date", "", "reference day as YYYY-MM-DD (default: today)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print machine-readable JSON")

	root.AddCommand(
		goalCmd(a),
		historyCmd(a),
		cycleCmd(a),
		summaryCmd(a),
		savingsCmd(a),
		importCmd(a),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(&app{now: time.Now}).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
