package cli

import (
	"lifeline-cli/internal/subscription"

	"github.com/spf13/cobra"
)

func newSubscriptionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Plan status and upgrades",
	}
	cmd.AddCommand(newSubscriptionStatusCmd(app))
	cmd.AddCommand(newSubscriptionUpgradeCmd(app))
	return cmd
}

func newSubscriptionStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current plan and remaining capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			limits := subscription.LimitsFor(db.Plan)
			cats, evs := subscription.Remaining(db.Plan, len(db.Categories), len(db.Events))
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"plan":                db.Plan,
					"maxCategories":       limits.MaxCategories,
					"maxEvents":           limits.MaxEvents,
					"remainingCategories": cats,
					"remainingEvents":     evs,
				},
			})
		},
	}
	return cmd
}

func newSubscriptionUpgradeCmd(app *App) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Redeem an upgrade code",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			plan, err := subscription.Redeem(code)
			if err != nil {
				return writeErr(cmd, err)
			}
			db.Plan = plan
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"plan": plan}})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Upgrade code")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
