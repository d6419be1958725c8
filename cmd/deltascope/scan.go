package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deltascope/internal/chain"
	"deltascope/internal/config"
	"deltascope/internal/economics"
	"deltascope/internal/model"
	"deltascope/internal/report"
	"deltascope/internal/storage"
	"deltascope/internal/storage/postgres"
	"deltascope/internal/token"
	"deltascope/internal/tx"
)

type txArg struct {
	input string
	hash  common.Hash
}

func runScan(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadScan(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}

	// Validate all hashes and the watch list before touching the network.
	hashes := make([]txArg, 0, len(args))
	for _, arg := range args {
		hash, err := tx.ParseTxHash(arg)
		if err != nil {
			return err
		}
		hashes = append(hashes, txArg{input: arg, hash: hash})
	}
	watchAddrs, err := tx.ParseWatchAddresses(cfg.Watch)
	if err != nil {
		return err
	}
	watch := make([]string, 0, len(watchAddrs))
	for _, addr := range watchAddrs {
		watch = append(watch, addr.Hex())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	var archive storage.Storage
	if cfg.JSONOut != "" {
		archive = storage.NewJsonlStorage(cfg.JSONOut)
	}

	var history *postgres.Store
	if cfg.PGDSN != "" {
		history, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer history.Close()
	}

	decoder, err := token.NewTransferDecoder()
	if err != nil {
		return err
	}

	fetcher := tx.NewFetcher(tx.FetchConfig{
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, chainClient, logger)

	metaCache := token.NewTokenMetaCache()

	logger.Info("scan start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("transactions", len(hashes)),
		zap.String("format", cfg.Format),
		zap.Bool("fetch_meta", !cfg.NoMeta),
	)

	var failed int
	for _, arg := range hashes {
		diff, err := scanOne(ctx, cfg, arg, fetcher, chainClient, decoder, metaCache, logger)
		if err != nil {
			failed++
			logger.Error("scan failed", zap.String("tx", arg.input), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", arg.input, err)
			continue
		}

		if err := renderReport(cmd, cfg, watch, diff); err != nil {
			return err
		}

		if archive != nil {
			if err := archive.PutReport(diff); err != nil {
				return fmt.Errorf("archive report: %w", err)
			}
		}
		if history != nil {
			if err := history.SaveReport(ctx, diff); err != nil {
				return fmt.Errorf("save history: %w", err)
			}
		}
	}

	logger.Info("scan complete",
		zap.Int("total", len(hashes)),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d transactions failed", failed, len(hashes))
	}
	return nil
}

func scanOne(
	ctx context.Context,
	cfg config.ScanConfig,
	arg txArg,
	fetcher *tx.Fetcher,
	chainClient *chain.Client,
	decoder *token.TransferDecoder,
	metaCache *token.TokenMetaCache,
	logger *zap.Logger,
) (model.DiffReport, error) {
	fetchCtx := ctx
	if cfg.RPCTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, cfg.RPCTimeout)
		defer cancel()
	}

	result, err := fetcher.Fetch(fetchCtx, arg.hash)
	if err != nil {
		return model.DiffReport{}, err
	}

	decodeCtx := token.DecodeContext{
		Context:   fetchCtx,
		Chain:     chainClient,
		MetaCache: metaCache,
		Logger:    logger,
		FetchMeta: !cfg.NoMeta,
	}

	summary := economics.Summarize(result.ChainID, result.Tx, result.Receipt, result.Header, result.From)

	records := make([]model.LogRecord, 0, len(result.Receipt.Logs))
	for _, logEntry := range result.Receipt.Logs {
		records = append(records, tx.BuildLogRecord(result.ChainID, *logEntry))
	}

	// Decode failures degrade per log, they never abort the report.
	events, unknown := token.ClassifyLogs(records, decoder, decodeCtx)

	return model.DiffReport{
		Summary:   summary,
		Events:    events,
		Unknown:   unknown,
		TotalLogs: len(result.Receipt.Logs),
	}, nil
}

func renderReport(cmd *cobra.Command, cfg config.ScanConfig, watch []string, diff model.DiffReport) error {
	out := cmd.OutOrStdout()
	if cfg.Format == "json" {
		return report.RenderJSON(out, diff)
	}
	return report.RenderText(out, diff, report.RenderOptions{
		Watch:          watch,
		IncludeUnknown: cfg.IncludeUnknown,
	})
}
