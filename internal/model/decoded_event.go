package model

// EventKind tags the variant carried by a DecodedEvent.
type EventKind string

const (
	KindERC20Transfer  EventKind = "erc20_transfer"
	KindERC721Transfer EventKind = "erc721_transfer"
	KindERC1155Single  EventKind = "erc1155_single"
	KindERC1155Batch   EventKind = "erc1155_batch"
	KindApproval       EventKind = "approval"
	KindApprovalForAll EventKind = "approval_for_all"
)

// DecodedEvent is one decoded token event. Each instance derives from
// exactly one receipt log, identified by LogIndex.
type DecodedEvent struct {
	LogIndex  uint64      `json:"log_index"`
	Token     string      `json:"token"`
	Kind      EventKind   `json:"kind"`
	TokenMeta *TokenMeta  `json:"token_meta,omitempty"`
	Decoded   interface{} `json:"decoded"`
	Raw       *RawLogRef  `json:"raw,omitempty"`
}

// RawLogRef keeps a minimal raw reference for traceability.
type RawLogRef struct {
	Topic0 string `json:"topic0"`
	Data   string `json:"data"`
}

// UnknownLog is a receipt log that matched no known event signature or
// failed to decode. It is surfaced, never silently merged.
type UnknownLog struct {
	LogIndex uint64 `json:"log_index"`
	Address  string `json:"address"`
	Topic0   string `json:"topic0"`
	Data     string `json:"data"`
	Reason   string `json:"reason,omitempty"`
}
