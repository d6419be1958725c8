package model

// TransferData is the decoded payload of an ERC-20 or ERC-721 Transfer.
// Amount carries the raw token amount for ERC-20; TokenID carries the
// token id for ERC-721 (the other field is empty).
type TransferData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount,omitempty"`
	TokenID string `json:"token_id,omitempty"`
}

// ERC1155SingleData is the decoded payload of a TransferSingle event.
type ERC1155SingleData struct {
	Operator string `json:"operator"`
	From     string `json:"from"`
	To       string `json:"to"`
	TokenID  string `json:"token_id"`
	Amount   string `json:"amount"`
}

// ERC1155BatchData is the decoded payload of a TransferBatch event.
type ERC1155BatchData struct {
	Operator string   `json:"operator"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	TokenIDs []string `json:"token_ids"`
	Amounts  []string `json:"amounts"`
}

// ApprovalData is the decoded payload of an ERC-20 Approval or an
// ERC-721 Approval (TokenID set instead of Amount).
type ApprovalData struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount,omitempty"`
	TokenID string `json:"token_id,omitempty"`
}

// ApprovalForAllData is the decoded payload of an ApprovalForAll event.
type ApprovalForAllData struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}
