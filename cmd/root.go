package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/app"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zoelive",
	Short: "Adaptive learning engine",
	Long:  "ZoeLive — adaptive learning core that assesses levels, plans learning paths and daily sessions, and keeps generated content unique.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database DSN: postgres:// URL or SQLite path (overrides APP_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("memory", false, "Keep all state in memory (no database)")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(versionCmd)
}

// newApp assembles the application from env config plus command flags.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg := app.ConfigFromEnv()

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if mem, _ := cmd.Flags().GetBool("memory"); mem {
		cfg.DatabaseDSN = ""
	} else if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
		if err := store.EnsureDir(dsn); err != nil {
			return nil, err
		}
		cfg.DatabaseDSN = dsn
	} else if cfg.DatabaseDSN == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseDSN = p
	}

	return app.New(cmd.Context(), cfg)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
