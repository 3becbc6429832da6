package cmd

import (
	"fmt"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run daily learning sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start (or resume) today's session",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		grade, _ := cmd.Flags().GetInt("grade")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plan, current, err := a.Orchestrator.StartDailySession(cmd.Context(), userID, grade)
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		return printJSON(map[string]any{
			"plan":           plan,
			"currentSession": current,
		})
	},
}

var sessionCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Record a completed activity and advance the plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		sessionID, _ := cmd.Flags().GetString("session")
		date := resolveDate(cmd)

		accuracy, _ := cmd.Flags().GetFloat64("accuracy")
		minutes, _ := cmd.Flags().GetInt("minutes")
		engagement, _ := cmd.Flags().GetFloat64("engagement")
		feedback, _ := cmd.Flags().GetString("feedback")

		perf := dailyplan.Performance{
			Accuracy:           accuracy,
			TimeSpentMinutes:   minutes,
			Engagement:         engagement,
			DifficultyFeedback: dailyplan.DifficultyFeedback(feedback),
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plan, err := a.Orchestrator.CompleteActivity(cmd.Context(), userID, date, sessionID, perf)
		if err != nil {
			return fmt.Errorf("complete activity: %w", err)
		}
		return printJSON(plan)
	},
}

var sessionAttachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach a content fingerprint to a pending session",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		sessionID, _ := cmd.Flags().GetString("session")
		fingerprintID, _ := cmd.Flags().GetString("fingerprint")
		date := resolveDate(cmd)

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Orchestrator.AttachContent(cmd.Context(), userID, date, sessionID, fingerprintID); err != nil {
			return fmt.Errorf("attach content: %w", err)
		}
		return nil
	},
}

func init() {
	sessionStartCmd.Flags().String("user", "", "Learner ID")
	sessionStartCmd.Flags().Int("grade", 0, "Grade level (K=0)")
	_ = sessionStartCmd.MarkFlagRequired("user")
	_ = sessionStartCmd.MarkFlagRequired("grade")

	sessionCompleteCmd.Flags().String("user", "", "Learner ID")
	sessionCompleteCmd.Flags().String("date", "", "Plan date as YYYY-MM-DD (default: today)")
	sessionCompleteCmd.Flags().String("session", "", "Session ID from the daily plan")
	sessionCompleteCmd.Flags().Float64("accuracy", 0, "Answer accuracy 0-100")
	sessionCompleteCmd.Flags().Int("minutes", 0, "Minutes spent")
	sessionCompleteCmd.Flags().Float64("engagement", 0, "Engagement 0-100")
	sessionCompleteCmd.Flags().String("feedback", "just_right", "Difficulty feedback: too_easy, just_right, too_hard")
	_ = sessionCompleteCmd.MarkFlagRequired("user")
	_ = sessionCompleteCmd.MarkFlagRequired("session")

	sessionAttachCmd.Flags().String("user", "", "Learner ID")
	sessionAttachCmd.Flags().String("date", "", "Plan date as YYYY-MM-DD (default: today)")
	sessionAttachCmd.Flags().String("session", "", "Session ID from the daily plan")
	sessionAttachCmd.Flags().String("fingerprint", "", "Fingerprint ID")
	_ = sessionAttachCmd.MarkFlagRequired("user")
	_ = sessionAttachCmd.MarkFlagRequired("session")
	_ = sessionAttachCmd.MarkFlagRequired("fingerprint")

	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionCompleteCmd)
	sessionCmd.AddCommand(sessionAttachCmd)
}
