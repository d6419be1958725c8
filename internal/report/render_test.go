package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"deltascope/internal/model"
)

func sampleReport() model.DiffReport {
	meta := &model.TokenMeta{
		Address:  "0x1111111111111111111111111111111111111111",
		Standard: model.StandardERC20,
		Symbol:   "USDT",
		Decimals: 6,
	}

	return model.DiffReport{
		Summary: model.TxSummary{
			ChainID:           1,
			TxHash:            "0xdeadbeef",
			BlockNumber:       19000000,
			Status:            1,
			From:              "0x2222222222222222222222222222222222222222",
			To:                "0x3333333333333333333333333333333333333333",
			ValueWei:          "0",
			ValueEther:        "0",
			GasUsed:           21000,
			EffectiveGasPrice: "50000000000",
			FeeWei:            "1050000000000000",
			FeeEther:          "0.00105",
		},
		Events: []model.DecodedEvent{
			{
				LogIndex:  0,
				Token:     meta.Address,
				Kind:      model.KindERC20Transfer,
				TokenMeta: meta,
				Decoded: model.TransferData{
					From:   "0x4444444444444444444444444444444444444444",
					To:     "0x5555555555555555555555555555555555555555",
					Amount: "1500000",
				},
			},
			{
				LogIndex:  1,
				Token:     meta.Address,
				Kind:      model.KindApproval,
				TokenMeta: meta,
				Decoded: model.ApprovalData{
					Owner:   "0x4444444444444444444444444444444444444444",
					Spender: "0x6666666666666666666666666666666666666666",
					Amount:  "9000000",
				},
			},
		},
		Unknown: []model.UnknownLog{
			{LogIndex: 2, Address: "0x7777777777777777777777777777777777777777", Topic0: "0xffff", Data: "0x"},
		},
		TotalLogs: 3,
	}
}

func TestRenderTextContainsSections(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	if err := RenderText(&buf, sampleReport(), RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Tx: 0xdeadbeef",
		"Status: SUCCESS",
		"Fee: 0.00105 ETH",
		"Token transfers:",
		"USDT",
		"1.5", // 1500000 raw at 6 decimals
		"Approvals:",
		"Unknown logs: 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTextDeterministic(t *testing.T) {
	color.NoColor = true

	var first, second bytes.Buffer
	if err := RenderText(&first, sampleReport(), RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := RenderText(&second, sampleReport(), RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("render is not deterministic")
	}
}

func TestRenderTextWatchMark(t *testing.T) {
	color.NoColor = true

	var plain, marked bytes.Buffer
	if err := RenderText(&plain, sampleReport(), RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	opts := RenderOptions{Watch: []string{"0x4444444444444444444444444444444444444444"}}
	if err := RenderText(&marked, sampleReport(), opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	if plain.String() == marked.String() {
		t.Fatalf("expected watch marker to change the output:\n%s", marked.String())
	}
}

func TestRenderTextWatchMarkChecksummedAddress(t *testing.T) {
	color.NoColor = true

	report := sampleReport()
	transfer := report.Events[0].Decoded.(model.TransferData)
	transfer.From = "0x00000000219ab540356cBB839Cbe05303d7705Fa"
	report.Events[0].Decoded = transfer

	var plain, marked bytes.Buffer
	if err := RenderText(&plain, report, RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	// Watch entries arrive canonicalized; matching must not depend on case.
	opts := RenderOptions{Watch: []string{"0x00000000219AB540356CBB839CBE05303D7705FA"}}
	if err := RenderText(&marked, report, opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	if plain.String() == marked.String() {
		t.Fatalf("expected watch marker for differently-cased address:\n%s", marked.String())
	}
}

func TestRenderTextEmptyDiff(t *testing.T) {
	color.NoColor = true

	report := sampleReport()
	report.Events = nil
	report.Unknown = nil
	report.TotalLogs = 0

	var buf bytes.Buffer
	if err := RenderText(&buf, report, RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Token transfers: none") {
		t.Fatalf("missing empty transfers line:\n%s", out)
	}
	if !strings.Contains(out, "Approvals: none") {
		t.Fatalf("missing empty approvals line:\n%s", out)
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("render json: %v", err)
	}

	var decoded model.DiffReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Summary.TxHash != "0xdeadbeef" {
		t.Fatalf("tx hash mismatch: %s", decoded.Summary.TxHash)
	}
	if decoded.TotalLogs != 3 {
		t.Fatalf("total logs mismatch: %d", decoded.TotalLogs)
	}
	if len(decoded.Events)+len(decoded.Unknown) != decoded.TotalLogs {
		t.Fatalf("event counts must add up to total logs")
	}
}
