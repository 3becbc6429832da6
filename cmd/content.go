package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/contentgen"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/spf13/cobra"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Check, generate, and track learning content",
}

var contentCheckCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Check candidate content for uniqueness against the learner's history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		ct, err := parseContentType(cmd)
		if err != nil {
			return err
		}
		subject, err := parseOneSubject(cmd)
		if err != nil {
			return err
		}
		skill, _ := cmd.Flags().GetString("skill")
		grade, _ := cmd.Flags().GetInt("grade")
		difficulty, _ := cmd.Flags().GetInt("difficulty")

		text, err := contentText(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Index.CheckUniqueness(cmd.Context(), fingerprint.CheckRequest{
			UserID:      userID,
			ContentType: ct,
			RawContent:  text,
			Subject:     subject,
			SkillArea:   skill,
			GradeLevel:  grade,
			Difficulty:  difficulty,
		})
		if err != nil {
			return fmt.Errorf("check uniqueness: %w", err)
		}
		return printJSON(result)
	},
}

var contentGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a unique learning activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		ct, err := parseContentType(cmd)
		if err != nil {
			return err
		}
		subject, err := parseOneSubject(cmd)
		if err != nil {
			return err
		}
		skill, _ := cmd.Flags().GetString("skill")
		grade, _ := cmd.Flags().GetInt("grade")
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		style, _ := cmd.Flags().GetString("style")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Generator == nil {
			return fmt.Errorf("no content provider configured, set APP_CONTENT_PROVIDER and its API key")
		}

		generated, err := a.Generator.Generate(cmd.Context(), contentgen.GenerateInput{
			UserID:        userID,
			Subject:       subject,
			SkillArea:     skill,
			GradeLevel:    grade,
			Difficulty:    difficulty,
			ContentType:   ct,
			LearningStyle: learner.LearningStyle(style),
		})
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}
		return printJSON(generated)
	},
}

var contentTrackCmd = &cobra.Command{
	Use:   "track",
	Short: "Record another use of a content fingerprint",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		fingerprintID, _ := cmd.Flags().GetString("fingerprint")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		fp, err := a.Index.TrackUsage(cmd.Context(), userID, fingerprintID)
		if err != nil {
			return fmt.Errorf("track usage: %w", err)
		}
		return printJSON(fp)
	},
}

var contentFreshnessCmd = &cobra.Command{
	Use:   "freshness",
	Short: "Score how varied the learner's recent content has been",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		days, _ := cmd.Flags().GetInt("days")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		score, err := a.Index.FreshnessScore(cmd.Context(), userID, days)
		if err != nil {
			return fmt.Errorf("freshness score: %w", err)
		}
		return printJSON(map[string]any{"userId": userID, "lookbackDays": days, "freshnessScore": score})
	},
}

var contentDiversityCmd = &cobra.Command{
	Use:   "diversity",
	Short: "Report content diversity and how to improve it",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		days, _ := cmd.Flags().GetInt("days")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Index.DiversifiedRecommendations(cmd.Context(), userID, days)
		if err != nil {
			return fmt.Errorf("diversity report: %w", err)
		}
		return printJSON(report)
	},
}

func init() {
	for _, c := range []*cobra.Command{contentCheckCmd, contentGenerateCmd} {
		c.Flags().String("user", "", "Learner ID")
		c.Flags().String("type", "question", "Content type: question, game, activity")
		c.Flags().String("subject", string(curriculum.SubjectMath), "Subject")
		c.Flags().String("skill", "", "Skill area within the subject")
		c.Flags().Int("grade", 0, "Grade level (K=0)")
		c.Flags().Int("difficulty", 1, "Difficulty 1-10")
		_ = c.MarkFlagRequired("user")
		_ = c.MarkFlagRequired("skill")
	}
	contentGenerateCmd.Flags().String("style", "mixed", "Learning style: visual, auditory, kinesthetic, mixed")

	contentTrackCmd.Flags().String("user", "", "Learner ID")
	contentTrackCmd.Flags().String("fingerprint", "", "Fingerprint ID")
	_ = contentTrackCmd.MarkFlagRequired("user")
	_ = contentTrackCmd.MarkFlagRequired("fingerprint")

	for _, c := range []*cobra.Command{contentFreshnessCmd, contentDiversityCmd} {
		c.Flags().String("user", "", "Learner ID")
		c.Flags().Int("days", 30, "Lookback window in days")
		_ = c.MarkFlagRequired("user")
	}

	contentCmd.AddCommand(contentCheckCmd)
	contentCmd.AddCommand(contentGenerateCmd)
	contentCmd.AddCommand(contentTrackCmd)
	contentCmd.AddCommand(contentFreshnessCmd)
	contentCmd.AddCommand(contentDiversityCmd)
}

// contentText returns the positional argument, or stdin when piped.
func contentText(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no content given: pass it as an argument or on stdin")
	}
	return text, nil
}

func parseContentType(cmd *cobra.Command) (content.Type, error) {
	raw, _ := cmd.Flags().GetString("type")
	ct := content.Type(raw)
	if !ct.Valid() {
		return "", fmt.Errorf("unknown content type %q", raw)
	}
	return ct, nil
}

func parseOneSubject(cmd *cobra.Command) (curriculum.Subject, error) {
	raw, _ := cmd.Flags().GetString("subject")
	s := curriculum.Subject(raw)
	for _, known := range curriculum.AllSubjects() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q", raw)
}
