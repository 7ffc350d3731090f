package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"storefront-core/internal/domain/cart"
	"storefront-core/internal/domain/catalog"
	"storefront-core/internal/domain/order"
	"storefront-core/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

// flexID accepts a JSON number or string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// flexTime accepts RFC 3339 and zone-less timestamps. Zone-less values are read as UTC.
type flexTime struct {
	time.Time
}

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		f.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			f.Time = t
			return nil
		}
	}
	f.Time = time.Time{}
	return nil
}

type cartDetailDTO struct {
	IDCartDetail int                 `json:"idCartDetail"`
	CartID       int                 `json:"cartId"`
	RecordID     int                 `json:"recordId"`
	ImageRecord  string              `json:"imageRecord"`
	TitleRecord  string              `json:"titleRecord"`
	GroupName    string              `json:"groupName"`
	Amount       int                 `json:"amount"`
	Price        decimal.NullDecimal `json:"price"`
	Total        decimal.NullDecimal `json:"total"`
	Stock        *int                `json:"stock"`
}

func (d cartDetailDTO) toLine() cart.LineItem {
	line := cart.LineItem{
		RecordID:  d.RecordID,
		Amount:    d.Amount,
		Title:     d.TitleRecord,
		Image:     d.ImageRecord,
		GroupName: d.GroupName,
	}
	switch {
	case d.Price.Valid:
		line.UnitPrice = d.Price.Decimal
	case d.Total.Valid && d.Amount > 0:
		line.UnitPrice = d.Total.Decimal.Div(decimal.NewFromInt(int64(d.Amount)))
	}
	if d.Stock != nil {
		line.StockAtFetch = *d.Stock
		line.StockKnown = true
	}
	return line
}

func (d cartDetailDTO) toEcho() *shared.LineEcho {
	echo := &shared.LineEcho{RecordID: d.RecordID, Amount: d.Amount}
	if d.Stock != nil {
		echo.Stock = *d.Stock
		echo.StockKnown = true
	}
	return echo
}

type recordDTO struct {
	IDRecord     int                 `json:"idRecord"`
	TitleRecord  string              `json:"titleRecord"`
	ImageRecord  string              `json:"imageRecord"`
	Price        decimal.NullDecimal `json:"price"`
	Stock        int                 `json:"stock"`
	Discontinued bool                `json:"discontinued"`
	GroupID      int                 `json:"groupId"`
	GroupName    string              `json:"groupName"`
	NameGroup    string              `json:"nameGroup"`
}

func (d recordDTO) toRecord() catalog.Record {
	name := d.GroupName
	if name == "" {
		name = d.NameGroup
	}
	return catalog.Record{
		ID:           d.IDRecord,
		Title:        d.TitleRecord,
		Image:        d.ImageRecord,
		Price:        d.Price.Decimal,
		Stock:        d.Stock,
		Discontinued: d.Discontinued,
		GroupID:      d.GroupID,
		GroupName:    name,
	}
}

type groupDTO struct {
	IDGroup   int    `json:"idGroup"`
	NameGroup string `json:"nameGroup"`
}

type cartDTO struct {
	IDCart     int                 `json:"idCart"`
	UserEmail  string              `json:"userEmail"`
	TotalPrice decimal.NullDecimal `json:"totalPrice"`
	TotalItems int                 `json:"totalItems"`
	Enabled    bool                `json:"enabled"`
}

func (d cartDTO) toSummary() shared.CartSummary {
	return shared.CartSummary{
		ID:         d.IDCart,
		OwnerKey:   strings.ToLower(strings.TrimSpace(d.UserEmail)),
		TotalItems: d.TotalItems,
		TotalPrice: d.TotalPrice.Decimal,
		Enabled:    d.Enabled,
	}
}

type statusDTO struct {
	Enabled *bool `json:"enabled"`
}

type orderDetailDTO struct {
	RecordID    int                 `json:"recordId"`
	TitleRecord string              `json:"titleRecord"`
	Amount      int                 `json:"amount"`
	Price       decimal.NullDecimal `json:"price"`
}

type orderDTO struct {
	IDOrder       flexID              `json:"idOrder"`
	UserEmail     string              `json:"userEmail"`
	OrderDate     flexTime            `json:"orderDate"`
	PaymentMethod string              `json:"paymentMethod"`
	Total         decimal.NullDecimal `json:"total"`
	OrderDetails  json.RawMessage     `json:"orderDetails"`
}

func (d orderDTO) toHistory() (order.History, error) {
	h := order.History{
		ID:            string(d.IDOrder),
		OwnerKey:      strings.ToLower(strings.TrimSpace(d.UserEmail)),
		OrderDate:     d.OrderDate.Time,
		PaymentMethod: d.PaymentMethod,
		Total:         d.Total.Decimal,
	}
	if len(d.OrderDetails) == 0 {
		return h, nil
	}
	details, err := decodeList[orderDetailDTO](d.OrderDetails)
	if err != nil {
		return order.History{}, err
	}
	for _, od := range details {
		h.Lines = append(h.Lines, order.HistoryLine{
			RecordID:  od.RecordID,
			Title:     od.TitleRecord,
			Amount:    od.Amount,
			UnitPrice: od.Price.Decimal,
		})
	}
	return h, nil
}

func (d orderDTO) toReceipt() *shared.CommitReceipt {
	return &shared.CommitReceipt{OrderID: string(d.IDOrder), CreatedAt: d.OrderDate.Time}
}

type commitRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
