package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"deltascope/internal/model"
)

// Store provides Postgres persistence for scan history.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveReport upserts the transaction summary and its decoded events.
func (s *Store) SaveReport(ctx context.Context, report model.DiffReport) error {
	if err := s.upsertSummary(ctx, report.Summary, len(report.Events), len(report.Unknown)); err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	if err := s.upsertEvents(ctx, report.Summary, report.Events); err != nil {
		return fmt.Errorf("upsert events: %w", err)
	}
	return nil
}

func (s *Store) upsertSummary(ctx context.Context, summary model.TxSummary, eventCount, unknownCount int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tx_summaries (
			chain_id, tx_hash, block_number, block_hash, block_ts, status,
			addr_from, addr_to, value_wei, gas_used, effective_gas_price_wei,
			fee_wei, burnt_wei, tip_wei, event_count, unknown_count, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,now(),now())
		ON CONFLICT (chain_id, tx_hash)
		DO UPDATE SET
			block_number = EXCLUDED.block_number,
			block_hash = EXCLUDED.block_hash,
			block_ts = EXCLUDED.block_ts,
			status = EXCLUDED.status,
			addr_from = EXCLUDED.addr_from,
			addr_to = EXCLUDED.addr_to,
			value_wei = EXCLUDED.value_wei,
			gas_used = EXCLUDED.gas_used,
			effective_gas_price_wei = EXCLUDED.effective_gas_price_wei,
			fee_wei = EXCLUDED.fee_wei,
			burnt_wei = EXCLUDED.burnt_wei,
			tip_wei = EXCLUDED.tip_wei,
			event_count = EXCLUDED.event_count,
			unknown_count = EXCLUDED.unknown_count,
			updated_at = now()
	`,
		int64(summary.ChainID),
		summary.TxHash,
		int64(summary.BlockNumber),
		summary.BlockHash,
		int64(summary.Timestamp),
		int16(summary.Status),
		summary.From,
		summary.To,
		summary.ValueWei,
		int64(summary.GasUsed),
		summary.EffectiveGasPrice,
		summary.FeeWei,
		nullable(summary.BurntWei),
		nullable(summary.TipWei),
		eventCount,
		unknownCount,
	)
	return err
}

func (s *Store) upsertEvents(ctx context.Context, summary model.TxSummary, events []model.DecodedEvent) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, event := range events {
		row := eventRow(event)
		batch.Queue(`
			INSERT INTO token_events (
				chain_id, tx_hash, log_index, token, kind, symbol,
				addr_from, addr_to, token_id, amount, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now())
			ON CONFLICT (chain_id, tx_hash, log_index)
			DO UPDATE SET
				token = EXCLUDED.token,
				kind = EXCLUDED.kind,
				symbol = EXCLUDED.symbol,
				addr_from = EXCLUDED.addr_from,
				addr_to = EXCLUDED.addr_to,
				token_id = EXCLUDED.token_id,
				amount = EXCLUDED.amount,
				updated_at = now()
		`,
			int64(summary.ChainID),
			summary.TxHash,
			int64(event.LogIndex),
			event.Token,
			string(event.Kind),
			row.symbol,
			row.from,
			row.to,
			nullable(row.tokenID),
			nullable(row.amount),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

type flatEvent struct {
	symbol  string
	from    string
	to      string
	tokenID string
	amount  string
}

func eventRow(event model.DecodedEvent) flatEvent {
	row := flatEvent{}
	if event.TokenMeta != nil {
		row.symbol = event.TokenMeta.Symbol
	}

	switch decoded := event.Decoded.(type) {
	case model.TransferData:
		row.from = decoded.From
		row.to = decoded.To
		row.tokenID = decoded.TokenID
		row.amount = decoded.Amount
	case model.ERC1155SingleData:
		row.from = decoded.From
		row.to = decoded.To
		row.tokenID = decoded.TokenID
		row.amount = decoded.Amount
	case model.ERC1155BatchData:
		row.from = decoded.From
		row.to = decoded.To
		row.tokenID = strings.Join(decoded.TokenIDs, ",")
		row.amount = strings.Join(decoded.Amounts, ",")
	case model.ApprovalData:
		row.from = decoded.Owner
		row.to = decoded.Spender
		row.tokenID = decoded.TokenID
		row.amount = decoded.Amount
	case model.ApprovalForAllData:
		row.from = decoded.Owner
		row.to = decoded.Operator
		if decoded.Approved {
			row.amount = "all"
		} else {
			row.amount = "revoked"
		}
	}
	return row
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
