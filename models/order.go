package models

import (
	"errors"
	"time"
)

type OrderType string

const (
	OrderDineIn   OrderType = "Dine-In"
	OrderDineInQR OrderType = "Dine-In-QR"
	OrderTakeaway OrderType = "Takeaway"
	OrderDelivery OrderType = "Delivery"
)

// DineIn reports whether the order is bound to a table.
func (t OrderType) DineIn() bool {
	return t == OrderDineIn || t == OrderDineInQR
}

// ErrBadResponse means the backend accepted a request but its answer could
// not be read, so the call may have taken effect.
var ErrBadResponse = errors.New("unreadable backend response")

// Order is the backend's authoritative view of an order.
type Order struct {
	ID              string           `json:"_id"`
	OrderType       OrderType        `json:"orderType"`
	Table           *Table           `json:"tableId,omitempty"`
	CustomerDetails *CustomerDetails `json:"customerDetails,omitempty"`
	Items           []OrderItem      `json:"items"`
	KOTNumber       int              `json:"kotNumber,omitempty"`
	Status          string           `json:"status,omitempty"`
	TotalAmount     float64          `json:"totalAmount,omitempty"`
	CreatedAt       time.Time        `json:"createdAt,omitempty"`
}

// Label is the name shown on order headers and kitchen tickets.
func (o Order) Label() string {
	if o.OrderType.DineIn() || o.OrderType == "" {
		if o.Table != nil && o.Table.Name != "" {
			return o.Table.Name
		}
		if o.OrderType.DineIn() {
			return "Guest"
		}
	}
	if o.CustomerDetails != nil && o.CustomerDetails.Name != "" {
		return o.CustomerDetails.Name
	}
	return string(o.OrderType)
}

// TableID returns the id of the table the order is seated at, if any.
func (o Order) TableID() string {
	if o.Table == nil {
		return ""
	}
	return o.Table.ID
}
