package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one record in a cart. Title, Image and GroupName are the last
// display fields the backend listing carried for the record.
type LineItem struct {
	RecordID     int
	Amount       int
	UnitPrice    decimal.Decimal
	StockAtFetch int
	StockKnown   bool

	Title     string
	Image     string
	GroupName string
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Amount)))
}

// Cart is an immutable snapshot. Every With* method returns a copy.
type Cart struct {
	OwnerKey string
	Lines    []LineItem
	Enabled  bool
	// false until the first fetch attempt for the owner completed
	Synced bool
	// assigned by the store on every replace
	Version uint64
}

func New(ownerKey string) Cart {
	return Cart{
		OwnerKey: ownerKey,
		Enabled:  true,
	}
}

// TotalItems is zero for a disabled cart regardless of its lines.
func (c Cart) TotalItems() int {
	if !c.Enabled {
		return 0
	}
	total := 0
	for _, l := range c.Lines {
		total += l.Amount
	}
	return total
}

func (c Cart) TotalPrice() decimal.Decimal {
	if !c.Enabled {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (c Cart) Summary() Summary {
	return Summary{
		OwnerKey:   c.OwnerKey,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Enabled:    c.Enabled,
	}
}

func (c Cart) Line(recordID int) (LineItem, bool) {
	for _, l := range c.Lines {
		if l.RecordID == recordID {
			return l, true
		}
	}
	return LineItem{}, false
}

// ActiveLines are the lines with a positive amount, in cart order.
func (c Cart) ActiveLines() []LineItem {
	out := make([]LineItem, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.Amount > 0 {
			out = append(out, l)
		}
	}
	return out
}

// WithLine replaces the line with the same record id in place, or appends it.
func (c Cart) WithLine(line LineItem) Cart {
	next := c.clone()
	for i, l := range next.Lines {
		if l.RecordID == line.RecordID {
			next.Lines[i] = line
			return next
		}
	}
	next.Lines = append(next.Lines, line)
	return next
}

func (c Cart) WithLines(lines []LineItem) Cart {
	next := c.clone()
	next.Lines = NormalizeLines(lines)
	return next
}

func (c Cart) WithEnabled(enabled bool) Cart {
	next := c.clone()
	next.Enabled = enabled
	return next
}

func (c Cart) WithSynced() Cart {
	next := c.clone()
	next.Synced = true
	return next
}

// Drained is the cart after a committed order: no lines, same enabled flag.
func (c Cart) Drained() Cart {
	next := c.clone()
	next.Lines = nil
	next.Synced = true
	return next
}

func (c Cart) clone() Cart {
	next := c
	if c.Lines != nil {
		next.Lines = make([]LineItem, len(c.Lines))
		copy(next.Lines, c.Lines)
	}
	return next
}

// NormalizeLines keeps the first position of every record id. Duplicate rows
// are merged: amounts are summed and the later row's price and stock win.
// Display fields the later row lacks are kept from the earlier one.
func NormalizeLines(lines []LineItem) []LineItem {
	if len(lines) == 0 {
		return nil
	}
	out := make([]LineItem, 0, len(lines))
	index := make(map[int]int, len(lines))
	for _, l := range lines {
		if l.Amount < 0 {
			l.Amount = 0
		}
		if i, ok := index[l.RecordID]; ok {
			merged := l
			merged.Amount += out[i].Amount
			if merged.Title == "" {
				merged.Title = out[i].Title
			}
			if merged.Image == "" {
				merged.Image = out[i].Image
			}
			if merged.GroupName == "" {
				merged.GroupName = out[i].GroupName
			}
			out[i] = merged
			continue
		}
		index[l.RecordID] = len(out)
		out = append(out, l)
	}
	return out
}

type Summary struct {
	OwnerKey   string
	TotalItems int
	TotalPrice decimal.Decimal
	Enabled    bool
}
