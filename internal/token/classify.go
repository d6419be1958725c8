package token

import (
	"go.uber.org/zap"

	"deltascope/internal/model"
)

// ClassifyLogs runs every log record through the decoder. Records with an
// unsupported or missing topic0, and records whose decode fails, degrade to
// unknown records with the reason set; they never abort classification.
// Exactly one decoded-or-unknown record comes out per input record.
func ClassifyLogs(records []model.LogRecord, dec Decoder, ctx DecodeContext) ([]model.DecodedEvent, []model.UnknownLog) {
	events := make([]model.DecodedEvent, 0, len(records))
	unknown := make([]model.UnknownLog, 0)

	for _, record := range records {
		if len(record.Topics) == 0 {
			unknown = append(unknown, unknownFromRecord(record, "missing topic0"))
			continue
		}
		if !dec.CanDecode(record.Topics[0]) {
			unknown = append(unknown, unknownFromRecord(record, "unknown signature"))
			continue
		}

		event, err := dec.Decode(record, ctx)
		if err != nil {
			if ctx.Logger != nil {
				ctx.Logger.Warn("log decode failed", zap.Any("decode_error", decodeErrorFromRecord(record, err)))
			}
			unknown = append(unknown, unknownFromRecord(record, err.Error()))
			continue
		}
		events = append(events, *event)
	}

	return events, unknown
}

func unknownFromRecord(record model.LogRecord, reason string) model.UnknownLog {
	topic0 := ""
	if len(record.Topics) > 0 {
		topic0 = record.Topics[0]
	}
	return model.UnknownLog{
		LogIndex: record.LogIndex,
		Address:  record.Address,
		Topic0:   topic0,
		Data:     record.Data,
		Reason:   reason,
	}
}

func decodeErrorFromRecord(record model.LogRecord, err error) model.DecodeError {
	topic0 := ""
	if len(record.Topics) > 0 {
		topic0 = record.Topics[0]
	}
	return model.DecodeError{
		ChainID:     record.ChainID,
		BlockNumber: record.BlockNumber,
		TxHash:      record.TxHash,
		LogIndex:    record.LogIndex,
		Address:     record.Address,
		Topic0:      topic0,
		Error:       err.Error(),
	}
}
