package sequencing_test

import (
	"fmt"
	"testing"

	"github.com/SscSPs/eft_batch_service/internal/apperrors"
	"github.com/SscSPs/eft_batch_service/internal/core/domain"
	"github.com/SscSPs/eft_batch_service/internal/utils/sequencing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemsWithIDs(n int) []domain.LineItem {
	items := make([]domain.LineItem, n)
	for i := range items {
		items[i].LineItemID = fmt.Sprintf("item-%d", i+1)
	}
	return items
}

func TestFormat(t *testing.T) {
	seq, err := sequencing.Format(1)
	require.NoError(t, err)
	assert.Equal(t, "0001", seq)

	seq, err = sequencing.Format(9999)
	require.NoError(t, err)
	assert.Equal(t, "9999", seq)

	_, err = sequencing.Format(10000)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	_, err = sequencing.Format(0)
	assert.Error(t, err)
}

func TestAssign_InsertionOrder(t *testing.T) {
	items := itemsWithIDs(3)
	require.NoError(t, sequencing.Assign(items))

	assert.Equal(t, "0001", items[0].SequenceNumber)
	assert.Equal(t, "0002", items[1].SequenceNumber)
	assert.Equal(t, "0003", items[2].SequenceNumber)
}

func TestAssign_CapacityExceededLeavesItemsUntouched(t *testing.T) {
	items := itemsWithIDs(sequencing.MaxSequence + 1)
	err := sequencing.Assign(items)

	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Empty(t, items[0].SequenceNumber)
}

func TestRenumber_AfterEveryPossibleRemoval(t *testing.T) {
	const n = 7
	for removed := 0; removed < n; removed++ {
		t.Run(fmt.Sprintf("remove index %d", removed), func(t *testing.T) {
			items := itemsWithIDs(n)
			require.NoError(t, sequencing.Assign(items))

			survivors := append(append([]domain.LineItem{}, items[:removed]...), items[removed+1:]...)
			require.NoError(t, sequencing.Renumber(survivors))

			require.Len(t, survivors, n-1)
			prevID := ""
			for i, item := range survivors {
				assert.Equal(t, fmt.Sprintf("%04d", i+1), item.SequenceNumber)
				if prevID != "" {
					assert.Less(t, idOrder(prevID), idOrder(item.LineItemID), "relative order of survivors must be kept")
				}
				prevID = item.LineItemID
			}
		})
	}
}

func TestRenumber_SortsByExistingSequence(t *testing.T) {
	items := []domain.LineItem{
		{LineItemID: "c", SequenceNumber: "0005"},
		{LineItemID: "a", SequenceNumber: "0001"},
		{LineItemID: "b", SequenceNumber: "0003"},
	}
	require.NoError(t, sequencing.Renumber(items))

	assert.Equal(t, "a", items[0].LineItemID)
	assert.Equal(t, "b", items[1].LineItemID)
	assert.Equal(t, "c", items[2].LineItemID)
	assert.Equal(t, "0003", items[2].SequenceNumber)
}

func idOrder(id string) int {
	var n int
	_, _ = fmt.Sscanf(id, "item-%d", &n)
	return n
}
