package main

import (
	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/render"
	"github.com/spf13/cobra"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show balances, this month's expenses and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			return render.Dashboard(cmd.OutOrStdout(), sess.dashboard(), sess.theme())
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every transaction, newest first, with its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			return render.Transactions(cmd.OutOrStdout(), sess.dashboard().Transactions, sess.theme())
		},
	}
}
