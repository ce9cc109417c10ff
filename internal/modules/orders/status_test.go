package orders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"pending to processing", StatusPending, StatusProcessing, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"processing to shipped", StatusProcessing, StatusShipped, true},
		{"processing to cancelled", StatusProcessing, StatusCancelled, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"delivered to refunded", StatusDelivered, StatusRefunded, true},
		{"cancelled to refunded", StatusCancelled, StatusRefunded, true},

		{"pending skips to delivered", StatusPending, StatusDelivered, false},
		{"pending skips to shipped", StatusPending, StatusShipped, false},
		{"shipped cannot cancel", StatusShipped, StatusCancelled, false},
		{"delivered cannot reopen", StatusDelivered, StatusProcessing, false},
		{"refunded is terminal (pending)", StatusRefunded, StatusPending, false},
		{"refunded is terminal (delivered)", StatusRefunded, StatusDelivered, false},
		{"no backwards move", StatusProcessing, StatusPending, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("PENDING")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)

	st, err = ParseStatus("  Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("teleported")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStatus))

	_, err = ParseStatus("")
	require.Error(t, err)
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusProcessing, StatusCancelled}, NextStatuses(StatusPending))
	assert.Empty(t, NextStatuses(StatusRefunded))
	assert.Equal(t, "none (terminal state)", describeNext(StatusRefunded))
}

func TestValidateTotals(t *testing.T) {
	o := Order{SubtotalCents: 10000, DiscountCents: 1500, ShippingCents: 500, TotalCents: 9000}
	require.NoError(t, o.ValidateTotals())

	o.TotalCents = 9100
	assert.ErrorIs(t, o.ValidateTotals(), ErrTotalMismatch)

	o = Order{SubtotalCents: 1000, DiscountCents: 2000, ShippingCents: 0, TotalCents: 0}
	assert.ErrorIs(t, o.ValidateTotals(), ErrDiscountExceedsSubtotal)

	o = Order{SubtotalCents: -1}
	assert.ErrorIs(t, o.ValidateTotals(), ErrNegativeAmount)
}
