package model

// TxSummary carries the top-level transaction facts and fee economics.
// All wei amounts are decimal strings to survive JSON round-trips.
type TxSummary struct {
	ChainID           uint64 `json:"chain_id"`
	TxHash            string `json:"tx_hash"`
	BlockNumber       uint64 `json:"block_number"`
	BlockHash         string `json:"block_hash"`
	Timestamp         uint64 `json:"timestamp"`
	Status            uint64 `json:"status"`
	From              string `json:"from"`
	To                string `json:"to,omitempty"`
	Nonce             uint64 `json:"nonce"`
	ValueWei          string `json:"value_wei"`
	ValueEther        string `json:"value_ether"`
	GasUsed           uint64 `json:"gas_used"`
	EffectiveGasPrice string `json:"effective_gas_price_wei"`
	FeeWei            string `json:"fee_wei"`
	FeeEther          string `json:"fee_ether"`
	BurntWei          string `json:"burnt_wei,omitempty"`
	TipWei            string `json:"tip_wei,omitempty"`
}

// DiffReport is the sole output artifact: decoded events in log-index
// order plus the economics summary. Immutable after construction.
type DiffReport struct {
	Summary   TxSummary      `json:"summary"`
	Events    []DecodedEvent `json:"events"`
	Unknown   []UnknownLog   `json:"unknown_logs"`
	TotalLogs int            `json:"total_logs"`
}
