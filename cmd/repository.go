// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hacs/hacs/hacs"
)

func addRepository(open opener) *cobra.Command {
	category := ""
	ref := ""

	command := &cobra.Command{
		Use:   "add-repository <owner/name>",
		Short: "Validates a custom repository and adds it to the tracked repositories",
		Args:  cobra.ExactArgs(1),
	}
	command.Flags().StringVar(&category, "category", "", "category of the repository")
	command.Flags().StringVar(&ref, "ref", "", "tag or branch to pin the repository to")
	cobra.CheckErr(command.MarkFlagRequired("category"))

	command.RunE = func(cmd *cobra.Command, args []string) error {
		return withHACS(cmd, open, func(ctx context.Context, h *hacs.HACS) error {
			return h.Register(ctx, args[0], category, ref)
		})
	}
	return command
}

func removeRepository(open opener) *cobra.Command {
	command := &cobra.Command{
		Use:   "remove-repository <owner/name>",
		Short: "Uninstalls a custom repository and stops tracking it",
		Args:  cobra.ExactArgs(1),
	}
	command.RunE = func(cmd *cobra.Command, args []string) error {
		return withHACS(cmd, open, func(ctx context.Context, h *hacs.HACS) error {
			return h.Remove(ctx, args[0])
		})
	}
	return command
}

func listRepositories(open opener) *cobra.Command {
	command := &cobra.Command{
		Use:   "list-repositories",
		Short: "Lists the tracked repositories and their status",
		Args:  cobra.NoArgs,
	}
	command.RunE = func(cmd *cobra.Command, _ []string) error {
		return withHACS(cmd, open, func(_ context.Context, h *hacs.HACS) error {
			return h.List()
		})
	}
	return command
}
