package economics

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"deltascope/internal/model"
)

const weiDecimals = 18

// FeeWei computes the fee paid: gasUsed × effectiveGasPrice, exact.
func FeeWei(gasUsed uint64, effectiveGasPrice *big.Int) *big.Int {
	if effectiveGasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), effectiveGasPrice)
}

// SplitFee divides the fee into the burnt base portion (baseFee × gasUsed)
// and the tip remainder. Returns nils when the block has no base fee.
func SplitFee(feeWei *big.Int, gasUsed uint64, baseFee *big.Int) (burnt *big.Int, tip *big.Int) {
	if feeWei == nil || baseFee == nil {
		return nil, nil
	}
	burnt = new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), baseFee)
	if burnt.Cmp(feeWei) > 0 {
		burnt = new(big.Int).Set(feeWei)
	}
	tip = new(big.Int).Sub(feeWei, burnt)
	return burnt, tip
}

// FormatWei renders a wei amount as ether, trailing zeros trimmed.
func FormatWei(wei *big.Int) string {
	return TrimZeros(FormatTokenAmount(wei, weiDecimals))
}

// FormatTokenAmount renders a raw token amount at the given decimals with
// full precision, never through floats.
func FormatTokenAmount(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := rat.FloatString(int(decimals))
	if sign < 0 {
		return "-" + text
	}
	return text
}

// Summarize derives the economics summary from the fetched transaction.
func Summarize(chainID uint64, txn *types.Transaction, receipt *types.Receipt, header *types.Header, from common.Address) model.TxSummary {
	fee := FeeWei(receipt.GasUsed, receipt.EffectiveGasPrice)

	value := txn.Value()
	if value == nil {
		value = new(big.Int)
	}

	summary := model.TxSummary{
		ChainID:     chainID,
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		BlockHash:   receipt.BlockHash.Hex(),
		Status:      receipt.Status,
		From:        from.Hex(),
		Nonce:       txn.Nonce(),
		ValueWei:    value.String(),
		ValueEther:  FormatWei(value),
		GasUsed:     receipt.GasUsed,
		FeeWei:      fee.String(),
		FeeEther:    FormatWei(fee),
	}

	if receipt.EffectiveGasPrice != nil {
		summary.EffectiveGasPrice = receipt.EffectiveGasPrice.String()
	} else {
		summary.EffectiveGasPrice = "0"
	}

	if to := txn.To(); to != nil {
		summary.To = to.Hex()
	} else if receipt.ContractAddress != (common.Address{}) {
		// Contract creation: report the deployed address.
		summary.To = receipt.ContractAddress.Hex()
	}

	if header != nil {
		summary.Timestamp = header.Time
		if burnt, tip := SplitFee(fee, receipt.GasUsed, header.BaseFee); burnt != nil {
			summary.BurntWei = burnt.String()
			summary.TipWei = tip.String()
		}
	}

	return summary
}

// TrimZeros strips trailing fractional zeros from a decimal string.
func TrimZeros(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	text = strings.TrimRight(text, "0")
	return strings.TrimSuffix(text, ".")
}
