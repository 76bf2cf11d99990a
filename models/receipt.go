package models

import "time"

// Bill is returned by the backend when an order is closed.
type Bill struct {
	ID          string    `json:"_id,omitempty"`
	BillNumber  string    `json:"billNumber"`
	OrderID     string    `json:"orderId,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
