package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLogRecordJSONRoundTrip(t *testing.T) {
	original := LogRecord{
		ChainID:     1,
		BlockNumber: 19000000,
		BlockHash:   "0xabc123",
		TxHash:      "0xdef456",
		TxIndex:     7,
		LogIndex:    12,
		Address:     "0x1111111111111111111111111111111111111111",
		Topics:      []string{"0xaaa", "0xbbb"},
		Data:        "0xdeadbeef",
		Removed:     false,
	}

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded LogRecord
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round-trip mismatch: %+v != %+v", original, decoded)
	}
}

func TestDiffReportAmountsStayStrings(t *testing.T) {
	report := DiffReport{
		Summary: TxSummary{
			ChainID:           1,
			TxHash:            "0xdef456",
			GasUsed:           21000,
			EffectiveGasPrice: "50000000000",
			FeeWei:            "1050000000000000",
			ValueWei:          "12345678901234567890",
		},
		Events: []DecodedEvent{
			{
				LogIndex: 0,
				Token:    "0x2222222222222222222222222222222222222222",
				Kind:     KindERC20Transfer,
				Decoded: TransferData{
					From:   "0x3333333333333333333333333333333333333333",
					To:     "0x4444444444444444444444444444444444444444",
					Amount: "1000",
				},
			},
		},
		TotalLogs: 1,
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("summary missing")
	}
	if _, ok := summary["fee_wei"].(string); !ok {
		t.Fatalf("fee_wei should be string")
	}
	if _, ok := summary["value_wei"].(string); !ok {
		t.Fatalf("value_wei should be string")
	}
	if _, ok := summary["effective_gas_price_wei"].(string); !ok {
		t.Fatalf("effective_gas_price_wei should be string")
	}
}
