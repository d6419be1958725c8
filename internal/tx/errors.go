package tx

import "errors"

var (
	// ErrInvalidInput means the transaction hash failed format validation.
	ErrInvalidInput = errors.New("invalid transaction hash")

	// ErrNotFound means the endpoint does not know the transaction, or it
	// is still pending and has no receipt.
	ErrNotFound = errors.New("transaction not found")
)

// retryable reports whether a fetch error is worth another attempt.
// Invalid input and unknown hashes never resolve by retrying.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrInvalidInput) && !errors.Is(err, ErrNotFound)
}
