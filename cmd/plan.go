package cmd

import (
	"fmt"
	"time"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect daily plans",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate (or fetch) the daily plan for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		grade, _ := cmd.Flags().GetInt("grade")
		date := resolveDate(cmd)

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plan, err := a.Builder.GenerateDailyPlan(cmd.Context(), userID, grade, date)
		if err != nil {
			return fmt.Errorf("generate daily plan: %w", err)
		}
		return printJSON(plan)
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show an existing daily plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		date := resolveDate(cmd)

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plan, err := a.Plans.GetByUserDate(cmd.Context(), userID, date)
		if err != nil {
			return fmt.Errorf("load daily plan: %w", err)
		}
		return printJSON(plan)
	},
}

func init() {
	planGenerateCmd.Flags().String("user", "", "Learner ID")
	planGenerateCmd.Flags().Int("grade", 0, "Grade level (K=0)")
	planGenerateCmd.Flags().String("date", "", "Plan date as YYYY-MM-DD (default: today)")
	_ = planGenerateCmd.MarkFlagRequired("user")
	_ = planGenerateCmd.MarkFlagRequired("grade")

	planShowCmd.Flags().String("user", "", "Learner ID")
	planShowCmd.Flags().String("date", "", "Plan date as YYYY-MM-DD (default: today)")
	_ = planShowCmd.MarkFlagRequired("user")

	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planShowCmd)
}

// resolveDate reads the --date flag, defaulting to today.
func resolveDate(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("date"); d != "" {
		return d
	}
	return time.Now().Format(dailyplan.DateLayout)
}
