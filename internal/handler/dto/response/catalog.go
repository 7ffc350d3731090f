package response

import (
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/usecase/cartdetail"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type RowResponse struct {
	RecordID      int             `json:"recordId"`
	Title         string          `json:"title"`
	Image         string          `json:"image,omitempty"`
	GroupName     string          `json:"groupName,omitempty"`
	Amount        int             `json:"amount"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	Stock         *int            `json:"stock"`
	MetadataStale bool            `json:"metadataStale"`
}

func FromRows(rows []cartdetail.Row) []RowResponse {
	res := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		var item RowResponse
		_ = copier.Copy(&item, &r)
		item.Stock = nil
		if r.StockKnown {
			stock := r.Stock
			item.Stock = &stock
		}
		res = append(res, item)
	}
	return res
}

type RecordResponse struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Image        string          `json:"image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Discontinued bool            `json:"discontinued"`
	GroupID      int             `json:"groupId"`
	GroupName    string          `json:"groupName,omitempty"`
	InCart       int             `json:"inCart"`
}

func FromListing(rows []cartdetail.ListingRow) []RecordResponse {
	res := make([]RecordResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, FromRecord(r.Record, r.InCart))
	}
	return res
}

func FromRecord(rec catalog.Record, inCart int) RecordResponse {
	var res RecordResponse
	_ = copier.Copy(&res, &rec)
	res.InCart = inCart
	return res
}

type StockEventResponse struct {
	RecordID int `json:"recordId"`
	NewStock int `json:"newStock"`
}

func FromStockEvent(ev catalog.StockEvent) StockEventResponse {
	return StockEventResponse{RecordID: ev.RecordID, NewStock: ev.NewStock}
}
