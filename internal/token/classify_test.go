package token

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"deltascope/internal/model"
)

func TestClassifyLogsDegradesFailuresToUnknown(t *testing.T) {
	erc20ABI, err := ERC20EventsABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}

	decoder, err := NewTransferDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	token := common.HexToAddress("0x1111111111111111111111111111111111111111")
	from := common.HexToAddress("0x2222222222222222222222222222222222222222")
	to := common.HexToAddress("0x3333333333333333333333333333333333333333")

	goodData, err := erc20ABI.Events["Transfer"].Inputs.NonIndexed().Pack(big.NewInt(1000))
	if err != nil {
		t.Fatalf("pack transfer: %v", err)
	}

	good := buildLogRecord(token, erc20ABI.Events["Transfer"].ID, goodData, []common.Hash{
		topicFromAddress(from),
		topicFromAddress(to),
	})
	good.LogIndex = 0

	// Known topic0 with data too short to unpack.
	malformed := buildLogRecord(token, erc20ABI.Events["Transfer"].ID, []byte{0x01, 0x02}, []common.Hash{
		topicFromAddress(from),
		topicFromAddress(to),
	})
	malformed.LogIndex = 1

	unmatched := buildLogRecord(token, common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"), nil, nil)
	unmatched.LogIndex = 2

	bare := model.LogRecord{ChainID: 1, LogIndex: 3, Address: token.Hex()}

	records := []model.LogRecord{good, malformed, unmatched, bare}
	events, unknown := ClassifyLogs(records, decoder, DecodeContext{Logger: zap.NewNop()})

	if len(events)+len(unknown) != len(records) {
		t.Fatalf("every record must classify: %d events + %d unknown != %d records", len(events), len(unknown), len(records))
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 decoded event, got %d", len(events))
	}
	if events[0].LogIndex != 0 || events[0].Kind != model.KindERC20Transfer {
		t.Fatalf("unexpected decoded event: %+v", events[0])
	}

	if len(unknown) != 3 {
		t.Fatalf("expected 3 unknown records, got %d", len(unknown))
	}
	if unknown[0].LogIndex != 1 || unknown[0].Reason == "" {
		t.Fatalf("malformed record should surface with a reason: %+v", unknown[0])
	}
	if unknown[1].LogIndex != 2 || unknown[1].Reason != "unknown signature" {
		t.Fatalf("unmatched topic should surface as unknown signature: %+v", unknown[1])
	}
	if unknown[2].LogIndex != 3 || unknown[2].Reason != "missing topic0" {
		t.Fatalf("log without topics should surface as missing topic0: %+v", unknown[2])
	}
}

func TestClassifyLogsEmptyReceipt(t *testing.T) {
	decoder, err := NewTransferDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	events, unknown := ClassifyLogs(nil, decoder, DecodeContext{Logger: zap.NewNop()})
	if len(events) != 0 || len(unknown) != 0 {
		t.Fatalf("empty input must classify to nothing: %d events, %d unknown", len(events), len(unknown))
	}
}
