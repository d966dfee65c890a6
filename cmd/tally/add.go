package main

import (
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/spf13/cobra"
)

func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <income|expense|savings> <amount> <category>",
		Short: "Record a transaction",
		Long: `Record an income, expense or savings transaction.

Expenses and savings cannot exceed the cash balance. Amounts accept a decimal
point or a decimal comma and must be between 0 and 1000000. Thousands
separators are rejected, so write 1000 rather than 1,000.`,
		Example: `  tally add income 1200 salary
  tally add expense 42,50 food`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			eff, err := sess.engine.AddTransaction(cmd.Context(), engine.TransactionInput{
				Kind:     args[0],
				Amount:   args[1],
				Category: args[2],
			})
			if err != nil {
				return err
			}
			printRecorded(cmd, sess, eff)
			return finish(eff)
		},
	}
}

func transferCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <deposit|withdraw> <amount>",
		Short: "Move money between cash and the bank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			eff, err := sess.engine.BankTransfer(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printRecorded(cmd, sess, eff)
			return finish(eff)
		},
	}
}

func depositCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deposit",
		Short: "Move the daily deposit from cash into savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			eff, err := sess.engine.DailyDeposit(cmd.Context())
			if err != nil {
				return err
			}
			printRecorded(cmd, sess, eff)
			return finish(eff)
		},
	}
}

func printRecorded(cmd *cobra.Command, sess *session, eff engine.Effect) {
	if eff.Transaction == nil {
		return
	}
	t := eff.Transaction
	snap := sess.engine.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Recorded %s %s %s (%s)",
		t.Kind, t.Kind.Sign(), sess.formatter.Money(t.Amount), t.Category)))
	fmt.Fprintf(out, "ID: %s\n", t.ID)
	fmt.Fprintf(out, "Cash: %s  Bank: %s  Savings: %s\n",
		sess.formatter.Money(snap.CashBalance),
		sess.formatter.Money(snap.BankBalance),
		sess.formatter.Money(snap.Savings))
}
