// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hacs/hacs/hacs"
)

func optionalName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func update(open opener) *cobra.Command {
	command := &cobra.Command{
		Use:   "update [owner/name]",
		Short: "Refreshes one repository, or every tracked repository",
		Args:  cobra.MaximumNArgs(1),
	}
	command.RunE = func(cmd *cobra.Command, args []string) error {
		return withHACS(cmd, open, func(ctx context.Context, h *hacs.HACS) error {
			return h.Update(ctx, optionalName(args))
		})
	}
	return command
}

func validate(open opener) *cobra.Command {
	command := &cobra.Command{
		Use:   "validate [owner/name]",
		Short: "Runs the repository checks against one repository, or every tracked repository",
		Args:  cobra.MaximumNArgs(1),
	}
	command.RunE = func(cmd *cobra.Command, args []string) error {
		return withHACS(cmd, open, func(ctx context.Context, h *hacs.HACS) error {
			return h.Validate(ctx, optionalName(args))
		})
	}
	return command
}

func run(open opener) *cobra.Command {
	command := &cobra.Command{
		Use:   "run",
		Short: "Runs the startup tasks and keeps the scheduled updates going until interrupted",
		Args:  cobra.NoArgs,
	}
	command.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		h, err := open(ctx)
		if err != nil {
			return err
		}
		defer func() {
			_ = h.Close()
		}()
		return h.Run(ctx)
	}
	return command
}
