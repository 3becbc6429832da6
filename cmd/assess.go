package cmd

import (
	"fmt"
	"strings"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/spf13/cobra"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a learner's current level",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		grade, _ := cmd.Flags().GetInt("grade")
		subjects, err := parseSubjects(cmd)
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		level, err := a.Assessor.AssessLevel(cmd.Context(), userID, grade, subjects)
		if err != nil {
			return fmt.Errorf("assess level: %w", err)
		}
		return printJSON(level)
	},
}

func init() {
	assessCmd.Flags().String("user", "", "Learner ID")
	assessCmd.Flags().Int("grade", 0, "Grade level (K=0)")
	assessCmd.Flags().String("subjects", "", "Comma-separated subjects (default: all)")
	_ = assessCmd.MarkFlagRequired("user")
	_ = assessCmd.MarkFlagRequired("grade")
}

// parseSubjects reads the --subjects flag; empty means every subject.
func parseSubjects(cmd *cobra.Command) ([]curriculum.Subject, error) {
	raw, _ := cmd.Flags().GetString("subjects")
	if raw == "" {
		return curriculum.AllSubjects(), nil
	}
	known := map[curriculum.Subject]bool{}
	for _, s := range curriculum.AllSubjects() {
		known[s] = true
	}
	var out []curriculum.Subject
	for _, part := range strings.Split(raw, ",") {
		s := curriculum.Subject(strings.TrimSpace(part))
		if !known[s] {
			return nil, fmt.Errorf("unknown subject %q", s)
		}
		out = append(out, s)
	}
	return out, nil
}
