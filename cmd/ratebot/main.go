package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/raykavin/ratebot"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	envFile  string
	logLevel string
	dryRun   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ratebot",
		Short:         "Posts crypto rates to a Telegram chat on a fixed interval",
		Version:       "1.0.0",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLoop,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file with the configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override RATEBOT_LOG_LEVEL (trace, debug, info, warn, error)")
	rootCmd.AddCommand(buildOnceCmd())

	return rootCmd
}

func buildOnceCmd() *cobra.Command {
	onceCmd := &cobra.Command{
		Use:   "once",
		Short: "Run a single cycle and print its readings",
		Args:  cobra.NoArgs,
		RunE:  runOnce,
	}

	onceCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the message instead of sending it")

	return onceCmd
}

// runLoop runs the scheduler until SIGINT or SIGTERM
func runLoop(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, labels, err := setup(ctx, false, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer bot.Close()

	ratebot.DefaultLog.WithFields(map[string]any{
		"primary":   labels.PrimarySymbol,
		"secondary": labels.SecondarySymbol,
		"pair":      labels.ConversionPair,
	}).Info("ratebot started")

	return bot.Run(ctx)
}

// runOnce executes exactly one cycle and prints a summary table
func runOnce(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	bot, labels, err := setup(ctx, dryRun, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer bot.Close()

	report := bot.RunCycle(ctx)
	report.Summary(cmd.OutOrStdout(), labels)

	return report.Err
}
