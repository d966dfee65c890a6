package main

import (
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/spf13/cobra"
)

func deleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction and reverse its effect on the balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			out := cmd.OutOrStdout()

			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			var confirm engine.Confirmer = engine.Confirmed
			if !force {
				if t, ok := sess.engine.Snapshot().Find(args[0]); ok {
					fmt.Fprintln(out, cli.FormatTitle("Delete transaction"))
					fmt.Fprintf(out, "ID: %s\n", t.ID)
					fmt.Fprintf(out, "Date: %s\n", sess.formatter.Date(t.Date))
					fmt.Fprintf(out, "Type: %s\n", t.Kind)
					fmt.Fprintf(out, "Category: %s\n", t.Category)
					fmt.Fprintf(out, "Amount: %s\n\n", sess.formatter.Money(t.Amount))
				}
				confirm = cli.NewConfirmer(cmd.InOrStdin(), out)
			}

			eff, err := sess.engine.DeleteTransaction(cmd.Context(), args[0], confirm)
			if err != nil {
				return err
			}
			if eff.Canceled {
				fmt.Fprintln(out, "Operation canceled.")
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess("Transaction deleted"))
			return finish(eff)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}
