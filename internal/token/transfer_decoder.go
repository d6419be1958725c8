package token

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"deltascope/internal/model"
)

// nftIDThreshold is the cutoff for the legacy heuristic: a 3-topic
// Transfer from a contract without decimals() whose raw value sits below
// this reads as a token id, not an amount.
var nftIDThreshold = new(big.Int).SetUint64(10_000_000_000)

// TransferDecoder decodes ERC-20/721/1155 transfer and approval events.
type TransferDecoder struct {
	erc20ABI    abi.ABI
	erc721ABI   abi.ABI
	erc1155ABI  abi.ABI
	topicToName map[string]string
}

// NewTransferDecoder builds a decoder over the static signature table.
func NewTransferDecoder() (*TransferDecoder, error) {
	erc20ABI, err := ERC20EventsABI()
	if err != nil {
		return nil, err
	}
	erc721ABI, err := ERC721EventsABI()
	if err != nil {
		return nil, err
	}
	erc1155ABI, err := ERC1155EventsABI()
	if err != nil {
		return nil, err
	}

	// ERC-20 and ERC-721 Transfer/Approval hash to the same topic0; the
	// table stores the shared name and Decode disambiguates by topic count.
	topicToName := map[string]string{
		strings.ToLower(erc20ABI.Events["Transfer"].ID.Hex()):         "Transfer",
		strings.ToLower(erc20ABI.Events["Approval"].ID.Hex()):         "Approval",
		strings.ToLower(erc1155ABI.Events["TransferSingle"].ID.Hex()): "TransferSingle",
		strings.ToLower(erc1155ABI.Events["TransferBatch"].ID.Hex()):  "TransferBatch",
		strings.ToLower(erc721ABI.Events["ApprovalForAll"].ID.Hex()):  "ApprovalForAll",
	}

	return &TransferDecoder{
		erc20ABI:    erc20ABI,
		erc721ABI:   erc721ABI,
		erc1155ABI:  erc1155ABI,
		topicToName: topicToName,
	}, nil
}

// CanDecode checks if the topic0 is supported.
func (d *TransferDecoder) CanDecode(topic0 string) bool {
	if topic0 == "" {
		return false
	}
	_, ok := d.topicToName[strings.ToLower(topic0)]
	return ok
}

// Decode converts a LogRecord into a DecodedEvent.
func (d *TransferDecoder) Decode(log model.LogRecord, ctx DecodeContext) (*model.DecodedEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("missing topics")
	}
	name, ok := d.topicToName[strings.ToLower(log.Topics[0])]
	if !ok {
		return nil, fmt.Errorf("unsupported topic0: %s", log.Topics[0])
	}

	if !common.IsHexAddress(log.Address) {
		return nil, fmt.Errorf("invalid token address: %s", log.Address)
	}
	tokenAddr := common.HexToAddress(log.Address)

	switch name {
	case "Transfer":
		return d.decodeTransfer(log, ctx, tokenAddr)
	case "Approval":
		return d.decodeApproval(log, ctx, tokenAddr)
	case "TransferSingle":
		decoded, err := d.decodeTransferSingle(log)
		if err != nil {
			return nil, err
		}
		return buildEvent(log, model.KindERC1155Single, decoded, resolvedMeta(ctx, tokenAddr)), nil
	case "TransferBatch":
		decoded, err := d.decodeTransferBatch(log)
		if err != nil {
			return nil, err
		}
		return buildEvent(log, model.KindERC1155Batch, decoded, resolvedMeta(ctx, tokenAddr)), nil
	case "ApprovalForAll":
		decoded, err := d.decodeApprovalForAll(log)
		if err != nil {
			return nil, err
		}
		return buildEvent(log, model.KindApprovalForAll, decoded, resolvedMeta(ctx, tokenAddr)), nil
	default:
		return nil, fmt.Errorf("unsupported event name: %s", name)
	}
}

// decodeTransfer resolves the ERC-20/721 Transfer ambiguity. A conforming
// ERC-721 indexes tokenId (4 topics, empty data); the 3-topic layout is an
// ERC-20 candidate, reclassified by ERC-165 probe or the legacy heuristic.
func (d *TransferDecoder) decodeTransfer(log model.LogRecord, ctx DecodeContext, tokenAddr common.Address) (*model.DecodedEvent, error) {
	switch len(log.Topics) {
	case 4:
		event := d.erc721ABI.Events["Transfer"]
		indexedTopics, err := parseIndexedTopics(event, log.Topics)
		if err != nil {
			return nil, err
		}

		var indexed struct {
			From    common.Address
			To      common.Address
			TokenId *big.Int
		}
		if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
			return nil, fmt.Errorf("parse topics: %w", err)
		}

		decoded := model.TransferData{
			From:    indexed.From.Hex(),
			To:      indexed.To.Hex(),
			TokenID: indexed.TokenId.String(),
		}
		return buildEvent(log, model.KindERC721Transfer, decoded, resolvedMeta(ctx, tokenAddr)), nil

	case 3:
		event := d.erc20ABI.Events["Transfer"]
		indexedTopics, err := parseIndexedTopics(event, log.Topics)
		if err != nil {
			return nil, err
		}

		var indexed struct {
			From common.Address
			To   common.Address
		}
		if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
			return nil, fmt.Errorf("parse topics: %w", err)
		}

		values, err := unpackNonIndexed(event, log.Data)
		if err != nil {
			return nil, err
		}
		if len(values) != 1 {
			return nil, fmt.Errorf("unexpected transfer values: %d", len(values))
		}
		raw, err := asBigInt(values[0])
		if err != nil {
			return nil, err
		}

		meta, ok := resolveTokenMeta(ctx, tokenAddr)
		kind := model.KindERC20Transfer
		decoded := model.TransferData{
			From:   indexed.From.Hex(),
			To:     indexed.To.Hex(),
			Amount: raw.String(),
		}
		if ok && isNonConformingNFT(meta, raw) {
			kind = model.KindERC721Transfer
			decoded.Amount = ""
			decoded.TokenID = raw.String()
		}

		var metaPtr *model.TokenMeta
		if ok {
			metaPtr = &meta
		}
		return buildEvent(log, kind, decoded, metaPtr), nil

	default:
		return nil, fmt.Errorf("unexpected transfer topic count: %d", len(log.Topics))
	}
}

func (d *TransferDecoder) decodeApproval(log model.LogRecord, ctx DecodeContext, tokenAddr common.Address) (*model.DecodedEvent, error) {
	switch len(log.Topics) {
	case 4:
		event := d.erc721ABI.Events["Approval"]
		indexedTopics, err := parseIndexedTopics(event, log.Topics)
		if err != nil {
			return nil, err
		}

		var indexed struct {
			Owner    common.Address
			Approved common.Address
			TokenId  *big.Int
		}
		if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
			return nil, fmt.Errorf("parse topics: %w", err)
		}

		decoded := model.ApprovalData{
			Owner:   indexed.Owner.Hex(),
			Spender: indexed.Approved.Hex(),
			TokenID: indexed.TokenId.String(),
		}
		return buildEvent(log, model.KindApproval, decoded, resolvedMeta(ctx, tokenAddr)), nil

	case 3:
		event := d.erc20ABI.Events["Approval"]
		indexedTopics, err := parseIndexedTopics(event, log.Topics)
		if err != nil {
			return nil, err
		}

		var indexed struct {
			Owner   common.Address
			Spender common.Address
		}
		if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
			return nil, fmt.Errorf("parse topics: %w", err)
		}

		values, err := unpackNonIndexed(event, log.Data)
		if err != nil {
			return nil, err
		}
		if len(values) != 1 {
			return nil, fmt.Errorf("unexpected approval values: %d", len(values))
		}
		amount, err := asBigInt(values[0])
		if err != nil {
			return nil, err
		}

		decoded := model.ApprovalData{
			Owner:   indexed.Owner.Hex(),
			Spender: indexed.Spender.Hex(),
			Amount:  amount.String(),
		}
		return buildEvent(log, model.KindApproval, decoded, resolvedMeta(ctx, tokenAddr)), nil

	default:
		return nil, fmt.Errorf("unexpected approval topic count: %d", len(log.Topics))
	}
}

func (d *TransferDecoder) decodeTransferSingle(log model.LogRecord) (model.ERC1155SingleData, error) {
	event := d.erc1155ABI.Events["TransferSingle"]
	indexedTopics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return model.ERC1155SingleData{}, err
	}

	var indexed struct {
		Operator common.Address
		From     common.Address
		To       common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
		return model.ERC1155SingleData{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil {
		return model.ERC1155SingleData{}, err
	}
	if len(values) != 2 {
		return model.ERC1155SingleData{}, fmt.Errorf("unexpected transfer single values: %d", len(values))
	}

	id, err := asBigInt(values[0])
	if err != nil {
		return model.ERC1155SingleData{}, err
	}
	amount, err := asBigInt(values[1])
	if err != nil {
		return model.ERC1155SingleData{}, err
	}

	return model.ERC1155SingleData{
		Operator: indexed.Operator.Hex(),
		From:     indexed.From.Hex(),
		To:       indexed.To.Hex(),
		TokenID:  id.String(),
		Amount:   amount.String(),
	}, nil
}

func (d *TransferDecoder) decodeTransferBatch(log model.LogRecord) (model.ERC1155BatchData, error) {
	event := d.erc1155ABI.Events["TransferBatch"]
	indexedTopics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return model.ERC1155BatchData{}, err
	}

	var indexed struct {
		Operator common.Address
		From     common.Address
		To       common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
		return model.ERC1155BatchData{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil {
		return model.ERC1155BatchData{}, err
	}
	if len(values) != 2 {
		return model.ERC1155BatchData{}, fmt.Errorf("unexpected transfer batch values: %d", len(values))
	}

	ids, err := asBigIntSlice(values[0])
	if err != nil {
		return model.ERC1155BatchData{}, err
	}
	amounts, err := asBigIntSlice(values[1])
	if err != nil {
		return model.ERC1155BatchData{}, err
	}
	if len(ids) != len(amounts) {
		return model.ERC1155BatchData{}, fmt.Errorf("batch length mismatch: %d ids, %d amounts", len(ids), len(amounts))
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}
	amountStrings := make([]string, 0, len(amounts))
	for _, amount := range amounts {
		amountStrings = append(amountStrings, amount.String())
	}

	return model.ERC1155BatchData{
		Operator: indexed.Operator.Hex(),
		From:     indexed.From.Hex(),
		To:       indexed.To.Hex(),
		TokenIDs: idStrings,
		Amounts:  amountStrings,
	}, nil
}

func (d *TransferDecoder) decodeApprovalForAll(log model.LogRecord) (model.ApprovalForAllData, error) {
	event := d.erc721ABI.Events["ApprovalForAll"]
	indexedTopics, err := parseIndexedTopics(event, log.Topics)
	if err != nil {
		return model.ApprovalForAllData{}, err
	}

	var indexed struct {
		Owner    common.Address
		Operator common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(event.Inputs), indexedTopics); err != nil {
		return model.ApprovalForAllData{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := unpackNonIndexed(event, log.Data)
	if err != nil {
		return model.ApprovalForAllData{}, err
	}
	if len(values) != 1 {
		return model.ApprovalForAllData{}, fmt.Errorf("unexpected approval for all values: %d", len(values))
	}
	approved, err := asBool(values[0])
	if err != nil {
		return model.ApprovalForAllData{}, err
	}

	return model.ApprovalForAllData{
		Owner:    indexed.Owner.Hex(),
		Operator: indexed.Operator.Hex(),
		Approved: approved,
	}, nil
}

func isNonConformingNFT(meta model.TokenMeta, raw *big.Int) bool {
	if meta.Standard == model.StandardERC721 {
		return true
	}
	return meta.Standard == model.StandardUnknown && meta.Decimals == 0 && raw.Cmp(nftIDThreshold) < 0
}

func resolvedMeta(ctx DecodeContext, token common.Address) *model.TokenMeta {
	meta, ok := resolveTokenMeta(ctx, token)
	if !ok {
		return nil
	}
	return &meta
}

func buildEvent(log model.LogRecord, kind model.EventKind, decoded interface{}, meta *model.TokenMeta) *model.DecodedEvent {
	raw := &model.RawLogRef{Topic0: log.Topics[0], Data: log.Data}
	return &model.DecodedEvent{
		LogIndex:  log.LogIndex,
		Token:     log.Address,
		Kind:      kind,
		TokenMeta: meta,
		Decoded:   decoded,
		Raw:       raw,
	}
}

func parseIndexedTopics(event abi.Event, topics []string) ([]common.Hash, error) {
	indexedCount := len(indexedArguments(event.Inputs))
	if len(topics) != indexedCount+1 {
		return nil, fmt.Errorf("expected %d topics, got %d", indexedCount+1, len(topics))
	}
	return parseTopicHashes(topics[1:])
}

func parseTopicHashes(topics []string) ([]common.Hash, error) {
	out := make([]common.Hash, 0, len(topics))
	for _, topic := range topics {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) > 32 {
			return nil, fmt.Errorf("topic length %d", len(data))
		}
		out = append(out, common.BytesToHash(data))
	}
	return out, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func unpackNonIndexed(event abi.Event, dataHex string) ([]interface{}, error) {
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	return values, nil
}
