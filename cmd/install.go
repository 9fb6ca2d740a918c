// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hacs/hacs/hacs"
)

func install(open opener) *cobra.Command {
	ref := ""
	command := &cobra.Command{
		Use:   "install <owner/name>",
		Short: "Installs a tracked repository",
		Args:  cobra.ExactArgs(1),
	}
	command.Flags().StringVar(&ref, "version", "", "tag or branch to install, the latest release when empty")
	command.RunE = func(cmd *cobra.Command, args []string) error {
		return withHACS(cmd, open, func(ctx context.Context, h *hacs.HACS) error {
			return h.Install(ctx, args[0], ref)
		})
	}
	return command
}

func uninstall(open opener) *cobra.Command {
	command := &cobra.Command{
		Use:   "uninstall <owner/name>",
		Short: "Removes the installed content of a repository",
		Args:  cobra.ExactArgs(1),
	}
	command.RunE = func(cmd *cobra.Command, args []string) error {
		return withHACS(cmd, open, func(ctx context.Context, h *hacs.HACS) error {
			return h.Uninstall(ctx, args[0])
		})
	}
	return command
}
