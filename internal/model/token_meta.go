package model

// TokenStandard names the interface a token contract exposes.
type TokenStandard string

const (
	StandardERC20   TokenStandard = "ERC20"
	StandardERC721  TokenStandard = "ERC721"
	StandardERC1155 TokenStandard = "ERC1155"
	StandardUnknown TokenStandard = "UNKNOWN"
)

// TokenMeta captures token contract metadata.
type TokenMeta struct {
	Address  string        `json:"address"`
	Standard TokenStandard `json:"standard"`
	Decimals uint8         `json:"decimals"`
	Symbol   string        `json:"symbol"`
	Name     string        `json:"name"`
}
