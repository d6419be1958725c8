package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "deltascope",
		Short:        "EVM transaction diff: token transfers, approvals, fees",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	scanCmd := &cobra.Command{
		Use:   "scan <tx_hash> [<tx_hash>...]",
		Short: "Fetch and decode one or more transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}

	scanCmd.Flags().String("rpc", "", "EVM JSON-RPC URL")
	scanCmd.Flags().String("format", "text", "output format (text, json)")
	scanCmd.Flags().String("json-out", "", "append reports to a JSONL file")
	scanCmd.Flags().StringSlice("watch", nil, "addresses to highlight (comma-separated)")
	scanCmd.Flags().Bool("include-unknown", false, "print undecodable logs as opaque records")
	scanCmd.Flags().Bool("no-meta", false, "skip token symbol/decimals enrichment")
	scanCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for scan history")
	scanCmd.Flags().Int("max-retries", 3, "maximum retry attempts for transient RPC failures")
	scanCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	scanCmd.Flags().Duration("rpc-timeout", 30*time.Second, "per-transaction RPC timeout")
	scanCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(scanCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
