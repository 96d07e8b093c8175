package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand runs the dashboard by default.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gorestaurant",
		Short: "GoRestaurant - manage the food menu from the terminal",
		Long: `GoRestaurant lists the plates served by a /foods backend and lets you
create, edit, toggle and remove them. Use "serve" to run a local backend.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}
	cmd.AddCommand(newTUICommand(), newServeCommand(), newListCommand(), newConfigCommand())
	return cmd
}
