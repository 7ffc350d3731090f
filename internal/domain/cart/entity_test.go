//go:build unit

package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id, amount int, price string) LineItem {
	return LineItem{RecordID: id, Amount: amount, UnitPrice: decimal.RequireFromString(price)}
}

func TestTotals(t *testing.T) {
	c := New("alice@example.com").WithLines([]LineItem{
		line(1, 2, "10.50"),
		line(2, 1, "3.25"),
		line(3, 0, "99"),
	})

	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, decimal.RequireFromString("24.25").Equal(c.TotalPrice()))
}

func TestTotals_DisabledReportsZeroButKeepsLines(t *testing.T) {
	c := New("alice@example.com").WithLines([]LineItem{line(1, 2, "10"), line(2, 3, "5")})

	disabled := c.WithEnabled(false)
	assert.Equal(t, 0, disabled.TotalItems())
	assert.True(t, disabled.TotalPrice().IsZero())
	assert.Len(t, disabled.Lines, 2)

	enabled := disabled.WithEnabled(true)
	assert.Equal(t, c.TotalItems(), enabled.TotalItems())
	assert.True(t, c.TotalPrice().Equal(enabled.TotalPrice()))
}

func TestWithLine_CopyOnWrite(t *testing.T) {
	original := New("bob").WithLines([]LineItem{line(1, 1, "2"), line(2, 1, "2")})

	updated := original.WithLine(line(1, 5, "2"))
	appended := original.WithLine(line(9, 1, "1"))

	first, _ := original.Line(1)
	assert.Equal(t, 1, first.Amount)

	got, ok := updated.Line(1)
	require.True(t, ok)
	assert.Equal(t, 5, got.Amount)
	assert.Equal(t, 1, updated.Lines[0].RecordID)

	require.Len(t, appended.Lines, 3)
	assert.Equal(t, 9, appended.Lines[2].RecordID)
}

func TestNormalizeLines_MergesDuplicates(t *testing.T) {
	lines := NormalizeLines([]LineItem{
		line(4, 1, "1"),
		line(2, 2, "1"),
		line(4, 3, "2"),
		line(5, -1, "1"),
	})

	require.Len(t, lines, 3)
	assert.Equal(t, []int{4, 2, 5}, []int{lines[0].RecordID, lines[1].RecordID, lines[2].RecordID})
	assert.Equal(t, 4, lines[0].Amount)
	assert.True(t, decimal.NewFromInt(2).Equal(lines[0].UnitPrice))
	assert.Equal(t, 0, lines[2].Amount)
}

func TestDrained(t *testing.T) {
	c := New("carol").WithLines([]LineItem{line(1, 2, "3")}).WithEnabled(true)

	d := c.Drained()
	assert.Empty(t, d.Lines)
	assert.True(t, d.Enabled)
	assert.True(t, d.Synced)
	assert.Equal(t, 0, d.TotalItems())
	assert.Len(t, c.Lines, 1)
}

func TestActiveLines(t *testing.T) {
	c := New("dave").WithLines([]LineItem{line(1, 0, "1"), line(2, 2, "1")})
	active := c.ActiveLines()
	require.Len(t, active, 1)
	assert.Equal(t, 2, active[0].RecordID)
}
