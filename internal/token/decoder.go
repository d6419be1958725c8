package token

import (
	"context"

	"go.uber.org/zap"

	"deltascope/internal/chain"
	"deltascope/internal/model"
)

// Decoder defines a log decoder.
type Decoder interface {
	CanDecode(topic0 string) bool
	Decode(log model.LogRecord, ctx DecodeContext) (*model.DecodedEvent, error)
}

// DecodeContext provides shared dependencies for decoders.
type DecodeContext struct {
	Context   context.Context
	Chain     *chain.Client
	MetaCache *TokenMetaCache
	Logger    *zap.Logger
	FetchMeta bool
}
