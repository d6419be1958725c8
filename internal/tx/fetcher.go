package tx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"deltascope/internal/chain"
)

// FetchConfig holds the transient-failure policy for RPC lookups.
type FetchConfig struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// Result bundles everything fetched for one transaction. The whole lookup
// either completes or fails as one unit.
type Result struct {
	ChainID uint64
	Tx      *types.Transaction
	Receipt *types.Receipt
	Header  *types.Header
	From    common.Address
}

// Fetcher retrieves a transaction, its receipt, and the containing block
// header from the chain.
type Fetcher struct {
	cfg    FetchConfig
	chain  *chain.Client
	logger *zap.Logger
}

// NewFetcher builds a Fetcher with its dependencies.
func NewFetcher(cfg FetchConfig, chainClient *chain.Client, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{cfg: cfg, chain: chainClient, logger: logger}
}

// Fetch retrieves the transaction, receipt, and block header for a hash.
func (f *Fetcher) Fetch(ctx context.Context, hash common.Hash) (*Result, error) {
	if f.chain == nil {
		return nil, fmt.Errorf("chain client is nil")
	}

	result := &Result{}

	err := withRetry(ctx, f.cfg.MaxRetries, f.cfg.RetryBackoff, func(ctx context.Context) error {
		chainID, err := f.chain.GetChainID(ctx)
		if err != nil {
			f.logger.Warn("chain id fetch failed", zap.Error(err))
			return fmt.Errorf("get chain id: %w", err)
		}
		if !chainID.IsUint64() {
			return fmt.Errorf("chain id does not fit in uint64: %s", chainID)
		}
		result.ChainID = chainID.Uint64()

		txn, pending, err := f.chain.TransactionByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, hash.Hex())
			}
			f.logger.Warn("transaction fetch failed", zap.String("tx", hash.Hex()), zap.Error(err))
			return fmt.Errorf("get transaction: %w", err)
		}
		if pending {
			return fmt.Errorf("%w: %s is pending, no receipt yet", ErrNotFound, hash.Hex())
		}
		result.Tx = txn

		receipt, err := f.chain.TransactionReceipt(ctx, hash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return fmt.Errorf("%w: no receipt for %s", ErrNotFound, hash.Hex())
			}
			f.logger.Warn("receipt fetch failed", zap.String("tx", hash.Hex()), zap.Error(err))
			return fmt.Errorf("get receipt: %w", err)
		}
		result.Receipt = receipt

		header, err := f.chain.HeaderByNumber(ctx, receipt.BlockNumber.Uint64())
		if err != nil {
			f.logger.Warn("header fetch failed", zap.Uint64("block", receipt.BlockNumber.Uint64()), zap.Error(err))
			return fmt.Errorf("get header: %w", err)
		}
		result.Header = header

		from, err := f.chain.TransactionSender(ctx, txn, receipt.BlockHash, receipt.TransactionIndex)
		if err != nil {
			f.logger.Warn("sender recovery failed", zap.String("tx", hash.Hex()), zap.Error(err))
			return fmt.Errorf("recover sender: %w", err)
		}
		result.From = from

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
