package main

import (
	"fmt"
	"slices"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/spf13/cobra"
)

func settingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the daily allowance, daily deposit and savings goal",
		Long: `Without flags, print the current settings.

Each flag is applied on its own: an invalid value leaves that setting unchanged
while the valid ones are still saved. Every ignored value is listed with a
warning, and the command still exits successfully.`,
		Example: `  tally settings --target 20
  tally settings --allowance 25 --goal 15000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := engine.SettingsInput{}
			in.Allowance, _ = cmd.Flags().GetString("allowance")
			in.Target, _ = cmd.Flags().GetString("target")
			in.Goal, _ = cmd.Flags().GetString("goal")
			out := cmd.OutOrStdout()

			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			if in == (engine.SettingsInput{}) {
				dash := sess.dashboard()
				fmt.Fprintf(out, "Daily allowance: %s\n", dash.DailyAllowance)
				fmt.Fprintf(out, "Daily deposit:   %s\n", dash.DailyTarget)
				fmt.Fprintf(out, "Savings goal:    %s\n", dash.SavingsGoal)
				return nil
			}

			eff, err := sess.engine.UpdateSettings(cmd.Context(), in)
			if err != nil {
				return err
			}

			requested := []struct {
				name  string
				flag  string
				value string
			}{
				{engine.SettingAllowance, "allowance", in.Allowance},
				{engine.SettingTarget, "target", in.Target},
				{engine.SettingGoal, "goal", in.Goal},
			}
			for _, r := range requested {
				switch {
				case r.value == "":
				case slices.Contains(eff.Updated, r.name):
					fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Updated %s to %s", r.flag, r.value)))
				default:
					fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Ignored invalid %s %q", r.flag, r.value)))
				}
			}
			return finish(eff)
		},
	}

	cmd.Flags().String("allowance", "", "daily allowance")
	cmd.Flags().String("target", "", "daily deposit moved into savings")
	cmd.Flags().String("goal", "", "savings goal")

	return cmd
}

func themeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between the light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.openSession(cmd.Context(), cli.NewNotifier(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer sess.Close()

			eff, err := sess.engine.ToggleTheme(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Theme: "+eff.Theme))
			return finish(eff)
		},
	}
}
