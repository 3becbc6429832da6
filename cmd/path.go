package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Generate and inspect learning paths",
}

var pathGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new learning path for a learner",
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

		path, err := a.Planner.GeneratePath(cmd.Context(), userID, grade, subjects)
		if err != nil {
			return fmt.Errorf("generate path: %w", err)
		}
		return printJSON(path)
	},
}

var pathShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the learner's most recent path",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Paths.LatestByUser(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("load path: %w", err)
		}
		return printJSON(path)
	},
}

func init() {
	pathGenerateCmd.Flags().String("user", "", "Learner ID")
	pathGenerateCmd.Flags().Int("grade", 0, "Grade level (K=0)")
	pathGenerateCmd.Flags().String("subjects", "", "Comma-separated subjects (default: all)")
	_ = pathGenerateCmd.MarkFlagRequired("user")
	_ = pathGenerateCmd.MarkFlagRequired("grade")

	pathShowCmd.Flags().String("user", "", "Learner ID")
	_ = pathShowCmd.MarkFlagRequired("user")

	pathCmd.AddCommand(pathGenerateCmd)
	pathCmd.AddCommand(pathShowCmd)
}
