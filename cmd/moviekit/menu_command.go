package main

import (
	"context"

	"github.com/spf13/cobra"

	"moviekit/internal/organizer"
	"moviekit/internal/tui"
)

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, ctx)
		},
	}
}

func runMenu(cmd *cobra.Command, ctx *commandContext) error {
	// The menu owns the terminal, so the log goes to the file only.
	s, err := ctx.openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.New(s.org,
		tui.WithHistory(s.journal),
		tui.WithReload(func(context.Context) (*organizer.Organizer, error) {
			return s.reload(ctx.configPath(), cmd.OutOrStdout())
		}),
		tui.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
	)
	return app.Run(s.ctx)
}
