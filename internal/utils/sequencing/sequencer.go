package sequencing

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
)

// Width is the number of digits in a sequence number.
const Width = 4

// MaxSequence is the largest sequence number that fits in Width digits.
const MaxSequence = 9999

// Format renders n as a zero-padded sequence number.
func Format(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("sequence number must be positive, got %d", n)
	}
	if n > MaxSequence {
		return "", fmt.Errorf("%w: %d items exceeds the %d item limit", apperrors.ErrCapacityExceeded, n, MaxSequence)
	}
	return fmt.Sprintf("%0*d", Width, n), nil
}

// Assign numbers items 0001..N in their current slice order.
// Nothing is modified when the batch would need more than MaxSequence numbers.
func Assign(items []domain.LineItem) error {
	if len(items) > MaxSequence {
		return fmt.Errorf("%w: %d items exceeds the %d item limit", apperrors.ErrCapacityExceeded, len(items), MaxSequence)
	}
	for i := range items {
		seq, err := Format(i + 1)
		if err != nil {
			return err
		}
		items[i].SequenceNumber = seq
	}
	return nil
}

// Renumber orders items by their existing sequence number (stable) and then
// assigns a fresh contiguous run starting at 0001.
func Renumber(items []domain.LineItem) error {
	sort.SliceStable(items, func(i, j int) bool {
		return sequenceValue(items[i].SequenceNumber) < sequenceValue(items[j].SequenceNumber)
	})
	return Assign(items)
}

// sequenceValue orders unparsable sequence numbers after all valid ones.
func sequenceValue(seq string) int {
	n, err := strconv.Atoi(seq)
	if err != nil {
		return MaxSequence + 1
	}
	return n
}
