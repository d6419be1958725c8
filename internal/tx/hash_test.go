package tx

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTxHash(t *testing.T) {
	input := "0x" + strings.Repeat("ab", 32)
	hash, err := ParseTxHash(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash.Hex() != input {
		t.Fatalf("hash mismatch: %s", hash.Hex())
	}
}

func TestParseTxHashInvalid(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"0x1234",
		"0x" + strings.Repeat("ab", 31),
		"0x" + strings.Repeat("ab", 33),
		"0x" + strings.Repeat("zz", 32),
		strings.Repeat("ab", 32),
	}

	for _, input := range cases {
		if _, err := ParseTxHash(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q, got %v", input, err)
		}
	}
}

func TestParseWatchAddresses(t *testing.T) {
	got, err := ParseWatchAddresses([]string{
		" 0x1111111111111111111111111111111111111111 ",
		"",
		"0x2222222222222222222222222222222222222222",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(got))
	}

	if _, err := ParseWatchAddresses([]string{"not-an-address"}); err == nil {
		t.Fatalf("expected error for invalid address")
	}
}

func TestRetryableClassification(t *testing.T) {
	if retryable(ErrInvalidInput) {
		t.Fatalf("invalid input must not be retryable")
	}
	if retryable(ErrNotFound) {
		t.Fatalf("not found must not be retryable")
	}
	if !retryable(errors.New("connection reset")) {
		t.Fatalf("transport errors should be retryable")
	}
}
