package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"deltascope/internal/economics"
	"deltascope/internal/model"
)

// RenderOptions controls the text rendering.
type RenderOptions struct {
	Watch          []string
	IncludeUnknown bool
}

var (
	successText = color.New(color.FgGreen).SprintFunc()
	failText    = color.New(color.FgRed).SprintFunc()
	watchMark   = color.New(color.FgYellow).SprintFunc()
)

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report model.DiffReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// RenderText writes the human-readable diff: the transaction header, then
// transfer and approval tables in log-index order, then unknown logs.
func RenderText(w io.Writer, report model.DiffReport, opts RenderOptions) error {
	watch := lowercaseSet(opts.Watch)
	s := report.Summary

	status := successText("SUCCESS")
	if s.Status != 1 {
		status = failText("FAIL")
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintf(w, "Tx: %s | Chain: %d | Block: %d | Status: %s\n", s.TxHash, s.ChainID, s.BlockNumber, status)
	fmt.Fprintf(w, "From: %s -> To: %s\n", s.From, orDash(s.To))
	fmt.Fprintf(w, "Value: %s ETH | Fee: %s ETH (gas %d x %s wei)\n", s.ValueEther, s.FeeEther, s.GasUsed, s.EffectiveGasPrice)
	if s.BurntWei != "" {
		fmt.Fprintf(w, "Fee split: burnt %s wei | tip %s wei\n", s.BurntWei, s.TipWei)
	}

	transfers, approvals := splitEvents(report.Events)

	if len(transfers) > 0 {
		fmt.Fprintln(w, "\nToken transfers:")
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"*", "Std", "Sym", "Token", "From", "To", "TokenID", "Amount"})
		for _, event := range transfers {
			tw.AppendRow(transferRow(event, watch))
		}
		tw.Render()
	} else {
		fmt.Fprintln(w, "\nToken transfers: none")
	}

	if len(approvals) > 0 {
		fmt.Fprintln(w, "\nApprovals:")
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.AppendHeader(table.Row{"*", "Sym", "Token", "Owner", "Spender", "Amount"})
		for _, event := range approvals {
			tw.AppendRow(approvalRow(event, watch))
		}
		tw.Render()
	} else {
		fmt.Fprintln(w, "\nApprovals: none")
	}

	if len(report.Unknown) > 0 {
		fmt.Fprintf(w, "\nUnknown logs: %d\n", len(report.Unknown))
		if opts.IncludeUnknown {
			tw := table.NewWriter()
			tw.SetOutputMirror(w)
			tw.AppendHeader(table.Row{"LogIndex", "Address", "Topic0", "Data"})
			for _, unknown := range report.Unknown {
				tw.AppendRow(table.Row{unknown.LogIndex, unknown.Address, truncate(unknown.Topic0, 20), truncate(unknown.Data, 20)})
			}
			tw.Render()
		}
	}

	return nil
}

func splitEvents(events []model.DecodedEvent) (transfers, approvals []model.DecodedEvent) {
	for _, event := range events {
		switch event.Kind {
		case model.KindApproval, model.KindApprovalForAll:
			approvals = append(approvals, event)
		default:
			transfers = append(transfers, event)
		}
	}
	return transfers, approvals
}

func transferRow(event model.DecodedEvent, watch map[string]struct{}) table.Row {
	symbol := metaSymbol(event.TokenMeta)
	standard := standardLabel(event.Kind)

	switch decoded := event.Decoded.(type) {
	case model.TransferData:
		mark := watchedMark(watch, decoded.From, decoded.To)
		amount := displayAmount(decoded.Amount, event.TokenMeta)
		tokenID := orDash(decoded.TokenID)
		if event.Kind == model.KindERC721Transfer {
			amount = "1"
		}
		return table.Row{mark, standard, symbol, event.Token, decoded.From, decoded.To, tokenID, amount}
	case model.ERC1155SingleData:
		mark := watchedMark(watch, decoded.From, decoded.To, decoded.Operator)
		return table.Row{mark, standard, symbol, event.Token, decoded.From, decoded.To, decoded.TokenID, decoded.Amount}
	case model.ERC1155BatchData:
		mark := watchedMark(watch, decoded.From, decoded.To, decoded.Operator)
		ids := strings.Join(decoded.TokenIDs, ",")
		amounts := strings.Join(decoded.Amounts, ",")
		return table.Row{mark, standard, symbol, event.Token, decoded.From, decoded.To, ids, amounts}
	default:
		return table.Row{"", standard, symbol, event.Token, "", "", "", ""}
	}
}

func approvalRow(event model.DecodedEvent, watch map[string]struct{}) table.Row {
	symbol := metaSymbol(event.TokenMeta)

	switch decoded := event.Decoded.(type) {
	case model.ApprovalData:
		mark := watchedMark(watch, decoded.Owner, decoded.Spender)
		amount := displayAmount(decoded.Amount, event.TokenMeta)
		if decoded.TokenID != "" {
			amount = "token #" + decoded.TokenID
		}
		return table.Row{mark, symbol, event.Token, decoded.Owner, decoded.Spender, amount}
	case model.ApprovalForAllData:
		mark := watchedMark(watch, decoded.Owner, decoded.Operator)
		amount := "all: revoked"
		if decoded.Approved {
			amount = "all: granted"
		}
		return table.Row{mark, symbol, event.Token, decoded.Owner, decoded.Operator, amount}
	default:
		return table.Row{"", symbol, event.Token, "", "", ""}
	}
}

// displayAmount scales a raw amount by the token decimals when known.
func displayAmount(raw string, meta *model.TokenMeta) string {
	if raw == "" {
		return "-"
	}
	if meta == nil || meta.Decimals == 0 {
		return raw
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return raw
	}
	return economics.TrimZeros(economics.FormatTokenAmount(value, meta.Decimals))
}

func metaSymbol(meta *model.TokenMeta) string {
	if meta == nil || meta.Symbol == "" {
		return "?"
	}
	return meta.Symbol
}

func standardLabel(kind model.EventKind) string {
	switch kind {
	case model.KindERC20Transfer:
		return "ERC20"
	case model.KindERC721Transfer:
		return "ERC721"
	case model.KindERC1155Single, model.KindERC1155Batch:
		return "ERC1155"
	default:
		return string(kind)
	}
}

func watchedMark(watch map[string]struct{}, addrs ...string) string {
	if len(watch) == 0 {
		return ""
	}
	for _, addr := range addrs {
		if _, ok := watch[strings.ToLower(addr)]; ok {
			return watchMark("*")
		}
	}
	return ""
}

func lowercaseSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out[strings.ToLower(item)] = struct{}{}
	}
	return out
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max] + "..."
}
