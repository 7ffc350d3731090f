//go:build unit

package order

import (
	"testing"
	"time"

	"storefront-core/internal/domain/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateReady, StatePending, true},
		{StatePending, StateCommitted, true},
		{StatePending, StateFailed, true},
		{StateReady, StateCommitted, false},
		{StateCommitted, StatePending, false},
		{StateFailed, StateCommitted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
	assert.True(t, StateCommitted.IsTerminal())
	assert.True(t, StateFailed.IsTerminal())
	assert.False(t, StatePending.IsTerminal())
}

func TestAttempt_TerminalIsSticky(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := NewAttempt("alice", now)
	require.Equal(t, StateReady, a.State)
	require.False(t, a.Transition(StateFailed, now), "ready attempts must pass through pending")

	require.True(t, a.Transition(StatePending, now))
	assert.True(t, a.FinishedAt.IsZero())
	require.True(t, a.Transition(StateFailed, now.Add(time.Second)))
	assert.False(t, a.Transition(StateCommitted, now.Add(2*time.Second)))
	assert.Equal(t, StateFailed, a.State)
	assert.Equal(t, now.Add(time.Second), a.FinishedAt)
}

func TestFromCart_CopiesActiveLines(t *testing.T) {
	snapshot := cart.New("alice").WithLines([]cart.LineItem{
		{RecordID: 1, Amount: 2, UnitPrice: decimal.NewFromInt(10)},
		{RecordID: 2, Amount: 0, UnitPrice: decimal.NewFromInt(5)},
		{RecordID: 3, Amount: 1, UnitPrice: decimal.RequireFromString("4.5")},
	})

	o := FromCart("42", snapshot, "credit-card", time.Unix(0, 0))

	require.Len(t, o.Lines, 2)
	assert.Equal(t, 3, o.TotalItems())
	assert.True(t, decimal.RequireFromString("24.5").Equal(o.TotalPrice))
	assert.Equal(t, "alice", o.OwnerKey)

	snapshot.Lines[0].Amount = 99
	assert.Equal(t, 2, o.Lines[0].Amount)
}
