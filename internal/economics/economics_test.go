package economics

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func TestFeeWeiExact(t *testing.T) {
	// 21000 gas at 50 gwei -> 1,050,000 gwei = 1.05e15 wei.
	fee := FeeWei(21000, big.NewInt(50_000_000_000))
	want := "1050000000000000"
	if fee.String() != want {
		t.Fatalf("fee mismatch: %s != %s", fee.String(), want)
	}
}

func TestFeeWeiNilPrice(t *testing.T) {
	fee := FeeWei(21000, nil)
	if fee.Sign() != 0 {
		t.Fatalf("expected zero fee, got %s", fee.String())
	}
}

func TestSplitFee(t *testing.T) {
	fee := FeeWei(100000, big.NewInt(30))
	burnt, tip := SplitFee(fee, 100000, big.NewInt(25))
	if burnt.String() != "2500000" {
		t.Fatalf("burnt mismatch: %s", burnt.String())
	}
	if tip.String() != "500000" {
		t.Fatalf("tip mismatch: %s", tip.String())
	}
	if new(big.Int).Add(burnt, tip).Cmp(fee) != 0 {
		t.Fatalf("burnt + tip must equal fee")
	}
}

func TestSplitFeeNoBaseFee(t *testing.T) {
	burnt, tip := SplitFee(big.NewInt(100), 10, nil)
	if burnt != nil || tip != nil {
		t.Fatalf("expected nils without base fee")
	}
}

func TestFormatWei(t *testing.T) {
	cases := []struct {
		wei  string
		want string
	}{
		{"0", "0"},
		{"1000000000000000000", "1"},
		{"1050000000000000", "0.00105"},
		{"1", "0.000000000000000001"},
		{"1500000000000000000", "1.5"},
	}

	for _, tc := range cases {
		wei, ok := new(big.Int).SetString(tc.wei, 10)
		if !ok {
			t.Fatalf("bad test input: %s", tc.wei)
		}
		if got := FormatWei(wei); got != tc.want {
			t.Fatalf("format %s: %s != %s", tc.wei, got, tc.want)
		}
	}
}

func TestFormatTokenAmount(t *testing.T) {
	value := big.NewInt(-1234500)
	if got := FormatTokenAmount(value, 6); got != "-1.234500" {
		t.Fatalf("unexpected format: %s", got)
	}
	if got := FormatTokenAmount(big.NewInt(42), 0); got != "42" {
		t.Fatalf("zero decimals should pass through: %s", got)
	}
	if got := FormatTokenAmount(nil, 18); got != "0" {
		t.Fatalf("nil should format as 0: %s", got)
	}
}

func TestTrimZeros(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.500000", "1.5"},
		{"2.000000000000000000", "2"},
		{"42", "42"},
		{"0.00105", "0.00105"},
	}

	for _, tc := range cases {
		if got := TrimZeros(tc.in); got != tc.want {
			t.Fatalf("trim %s: %s != %s", tc.in, got, tc.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	to := common.HexToAddress("0x3333333333333333333333333333333333333333")
	txn := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(1),
		Nonce:     9,
		To:        &to,
		Value:     big.NewInt(2_000_000_000_000_000_000),
		Gas:       21000,
		GasFeeCap: big.NewInt(60_000_000_000),
		GasTipCap: big.NewInt(2_000_000_000),
	})

	receipt := &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		TxHash:            txn.Hash(),
		BlockHash:         common.HexToHash("0xabc"),
		BlockNumber:       big.NewInt(19000000),
		GasUsed:           21000,
		EffectiveGasPrice: big.NewInt(50_000_000_000),
	}

	header := &types.Header{
		Time:    1700000000,
		BaseFee: big.NewInt(48_000_000_000),
	}

	from := common.HexToAddress("0x2222222222222222222222222222222222222222")
	summary := Summarize(1, txn, receipt, header, from)

	if summary.FeeWei != "1050000000000000" {
		t.Fatalf("fee mismatch: %s", summary.FeeWei)
	}
	if summary.ValueEther != "2" {
		t.Fatalf("value mismatch: %s", summary.ValueEther)
	}
	if summary.To != to.Hex() {
		t.Fatalf("to mismatch: %s", summary.To)
	}
	if summary.BurntWei != "1008000000000000" {
		t.Fatalf("burnt mismatch: %s", summary.BurntWei)
	}
	if summary.TipWei != "42000000000000" {
		t.Fatalf("tip mismatch: %s", summary.TipWei)
	}
	if summary.Timestamp != 1700000000 {
		t.Fatalf("timestamp mismatch: %d", summary.Timestamp)
	}
	if summary.Nonce != 9 {
		t.Fatalf("nonce mismatch: %d", summary.Nonce)
	}
}
