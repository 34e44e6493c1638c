package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/badger-vote/cliparse"
)

var Version = "dev"

var cfg cliparse.Config

func main() {
	rootCmd := &cobra.Command{
		Use:           "badger-vote",
		Short:         "Telegram bot for suggesting and voting on wake-up tracks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliparse.LoadDotEnv(); err != nil {
				return err
			}
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			setupLogging(cfg.Debug)
			return nil
		},
	}
	cfg.RegisterFlags(rootCmd.PersistentFlags())

	// Add subcommands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(pollCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("badger-vote failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
