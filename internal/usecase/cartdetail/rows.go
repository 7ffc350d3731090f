package cartdetail

import (
	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// Row is one display line of the cart detail view.
type Row struct {
	RecordID      int
	Title         string
	Image         string
	GroupName     string
	Amount        int
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal
	Stock         int
	StockKnown    bool
	MetadataStale bool
}

// CatalogView is the read side of the catalog the rows are joined with.
type CatalogView interface {
	Lookup(recordID int) (catalog.Record, bool)
	LastSeen(recordID int) (catalog.Record, bool)
}

// Build joins the cart's non-empty lines with catalog metadata, keeping cart order.
// A line whose record is missing from the catalog still yields a row, built from
// the last catalog entry seen for it or else the line's own cached fields.
func Build(c cart.Cart, view CatalogView) []Row {
	rows := make([]Row, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.Amount <= 0 {
			continue
		}
		rows = append(rows, buildRow(l, view))
	}
	return rows
}

func buildRow(l cart.LineItem, view CatalogView) Row {
	row := Row{
		RecordID:   l.RecordID,
		Amount:     l.Amount,
		UnitPrice:  l.UnitPrice,
		LineTotal:  l.LineTotal(),
		Stock:      l.StockAtFetch,
		StockKnown: l.StockKnown,
	}

	if view != nil {
		if rec, ok := view.Lookup(l.RecordID); ok {
			row.Title, row.Image, row.GroupName = rec.Title, rec.Image, rec.GroupName
			row.Stock, row.StockKnown = rec.Stock, true
			return row
		}
		if rec, ok := view.LastSeen(l.RecordID); ok {
			row.Title, row.Image, row.GroupName = rec.Title, rec.Image, rec.GroupName
			row.MetadataStale = true
			return row
		}
	}

	row.Title, row.Image, row.GroupName = l.Title, l.Image, l.GroupName
	row.MetadataStale = true
	return row
}

// ListingRow is a catalog record annotated with the owner's amount in cart.
type ListingRow struct {
	Record catalog.Record
	InCart int
}

func annotate(records []catalog.Record, c cart.Cart) []ListingRow {
	out := make([]ListingRow, len(records))
	for i, r := range records {
		row := ListingRow{Record: r}
		if l, ok := c.Line(r.ID); ok {
			row.InCart = l.Amount
		}
		out[i] = row
	}
	return out
}
