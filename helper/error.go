package helper

import "fmt"

// NewError wraps err with the operation that failed. The original error
// stays reachable via errors.Is/errors.As.
func NewError(context string, err error) error {
	return fmt.Errorf("error %s: %w", context, err)
}
