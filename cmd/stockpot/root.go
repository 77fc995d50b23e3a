package main

import (
	"github.com/spf13/cobra"

	"github.com/mthstanley/stockpot/internal/platform/logger"
)

func newRootCommand(log *logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stockpot",
		Short:         "Recipe management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServerCommand(log))
	return cmd
}
