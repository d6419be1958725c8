package tx

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseTxHash validates a transaction hash string and converts it into a
// common.Hash. Validation happens before any network call.
func ParseTxHash(input string) (common.Hash, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.Hash{}, fmt.Errorf("%w: empty", ErrInvalidInput)
	}

	data, err := hexutil.Decode(input)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrInvalidInput, input)
	}
	if len(data) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidInput, len(data))
	}

	return common.BytesToHash(data), nil
}

// ParseWatchAddresses converts watch list entries into common.Address.
func ParseWatchAddresses(inputs []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid address: %s", input)
		}
		addresses = append(addresses, common.HexToAddress(input))
	}
	return addresses, nil
}
