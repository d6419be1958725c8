package token

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"deltascope/internal/chain"
	"deltascope/internal/model"
)

// ERC-165 interface ids.
var (
	interfaceIDERC721  = [4]byte{0x80, 0xac, 0x58, 0xcd}
	interfaceIDERC1155 = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
)

const defaultSymbol = "UNKNOWN"

// TokenMetaCache caches token metadata by address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]model.TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (model.TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// FetchTokenMeta loads token metadata via eth_call: ERC-165 probes decide
// the standard, symbol/name fall back from string to bytes32 returns.
// Metadata failures degrade to defaults and never fail the scan.
func FetchTokenMeta(ctx context.Context, chainClient *chain.Client, token common.Address, logger *zap.Logger) (model.TokenMeta, error) {
	meta := model.TokenMeta{
		Address:  token.Hex(),
		Standard: model.StandardUnknown,
		Symbol:   defaultSymbol,
	}
	if chainClient == nil {
		return meta, fmt.Errorf("chain client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	call := func(method string, parsed abi.ABI, args ...interface{}) ([]interface{}, error) {
		data, err := parsed.Pack(method, args...)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", method, err)
		}
		msg := ethereum.CallMsg{To: &token, Data: data}
		resp, err := chainClient.CallContract(ctx, msg, nil)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", method, err)
		}
		values, err := parsed.Unpack(method, resp)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", method, err)
		}
		return values, nil
	}

	if supports, err := supportsInterface(call, interfaceIDERC721); err == nil && supports {
		meta.Standard = model.StandardERC721
	} else if supports, err := supportsInterface(call, interfaceIDERC1155); err == nil && supports {
		meta.Standard = model.StandardERC1155
	}

	if values, err := call("decimals", stringABI); err == nil {
		if decimals, err := asUint8(values[0]); err == nil {
			meta.Decimals = decimals
			if meta.Standard == model.StandardUnknown {
				meta.Standard = model.StandardERC20
			}
		}
	} else {
		logger.Debug("decimals call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	if values, err := call("symbol", stringABI); err == nil {
		if symbol, ok := values[0].(string); ok && symbol != "" {
			meta.Symbol = symbol
		}
	} else if values, err := call("symbol", bytes32ABI); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok && symbol != "" {
			meta.Symbol = symbol
		}
	} else {
		logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	if values, err := call("name", stringABI); err == nil {
		if name, ok := values[0].(string); ok {
			meta.Name = name
		}
	} else if values, err := call("name", bytes32ABI); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			meta.Name = name
		}
	} else {
		logger.Debug("name call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	return meta, nil
}

func supportsInterface(call func(string, abi.ABI, ...interface{}) ([]interface{}, error), id [4]byte) (bool, error) {
	parsed, err := ERC165ABI()
	if err != nil {
		return false, err
	}
	values, err := call("supportsInterface", parsed, id)
	if err != nil {
		return false, err
	}
	supports, ok := values[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected supportsInterface return %T", values[0])
	}
	return supports, nil
}

// resolveTokenMeta consults the cache first and fetches on a miss. Fetch
// failures are cached too, so one bad contract is probed once per run.
func resolveTokenMeta(ctx DecodeContext, token common.Address) (model.TokenMeta, bool) {
	if !ctx.FetchMeta {
		return model.TokenMeta{}, false
	}
	if ctx.MetaCache != nil {
		if meta, ok := ctx.MetaCache.Get(token); ok {
			return meta, true
		}
	}
	if ctx.Chain == nil {
		return model.TokenMeta{}, false
	}

	callCtx := ctx.Context
	if callCtx == nil {
		callCtx = context.Background()
	}

	meta, err := FetchTokenMeta(callCtx, ctx.Chain, token, ctx.Logger)
	if err != nil && ctx.Logger != nil {
		ctx.Logger.Warn("token metadata fetch failed", zap.String("token", token.Hex()), zap.Error(err))
	}
	if ctx.MetaCache != nil {
		ctx.MetaCache.Set(token, meta)
	}
	return meta, true
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asBigIntSlice(value interface{}) ([]*big.Int, error) {
	slice, ok := value.([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("unsupported int slice type %T", value)
	}
	out := make([]*big.Int, 0, len(slice))
	for _, item := range slice {
		out = append(out, new(big.Int).Set(item))
	}
	return out, nil
}

func asBool(value interface{}) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("unsupported bool type %T", value)
	}
	return b, nil
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case uint16:
		return uint8(v), nil
	case uint32:
		return uint8(v), nil
	case uint64:
		return uint8(v), nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
