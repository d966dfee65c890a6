package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/render"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every transaction to finances_<date>.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("out")
			notifier := cli.NewNotifier(cmd.ErrOrStderr())

			sess, err := a.openSession(cmd.Context(), notifier)
			if err != nil {
				return err
			}
			defer sess.Close()

			eff, err := sess.engine.ExportCSV(cmd.Context())
			if err != nil {
				return err
			}

			path := filepath.Join(dir, eff.Download.Filename)
			if err := os.WriteFile(path, eff.Download.Data, 0o600); err != nil {
				return common.Report(notifier, "exporting data", common.NewUserError("Error exporting data", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported to "+path))
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", ".", "directory to write the CSV file to")

	return cmd
}

func chartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the savings history as a PNG line chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("out")
			notifier := cli.NewNotifier(cmd.ErrOrStderr())

			sess, err := a.openSession(cmd.Context(), notifier)
			if err != nil {
				return err
			}
			defer sess.Close()

			if path == "" {
				path = render.ChartFilename(sess.engine.Now())
			}

			dash := sess.dashboard()
			var buf bytes.Buffer
			if err := render.SavingsChartPNG(&buf, dash.Series, dash.Cumulative); err != nil {
				return common.Report(notifier, "drawing chart", err)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				return common.Report(notifier, "drawing chart", common.Render("Error drawing chart", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Chart written to "+path))
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "PNG file to write (default: savings_<date>.png)")

	return cmd
}
