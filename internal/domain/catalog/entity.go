package catalog

import "github.com/shopspring/decimal"

// Record is the catalog snapshot of a single purchasable record.
type Record struct {
	ID           int
	Title        string
	Image        string
	Price        decimal.Decimal
	Stock        int
	Discontinued bool
	GroupID      int
	GroupName    string
}

type Group struct {
	ID   int
	Name string
}

// StockEvent is broadcast whenever the last known stock of a record changes.
type StockEvent struct {
	RecordID int `json:"recordId"`
	NewStock int `json:"newStock"`
}
