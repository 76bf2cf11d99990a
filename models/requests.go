package models

// OrderLinePayload is the wire form of a draft line sent to the backend.
type OrderLinePayload struct {
	MenuItemID string     `json:"menuItemId"`
	Name       string     `json:"name"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
	Status     LineStatus `json:"status,omitempty"`
}

type CreateOrderRequest struct {
	Items           []OrderLinePayload `json:"items"`
	OrderType       OrderType          `json:"orderType"`
	TableID         string             `json:"tableId,omitempty"`
	CustomerDetails *CustomerDetails   `json:"customerDetails,omitempty"`
	IdempotencyKey  string             `json:"-"`
}

type AppendItemsRequest struct {
	Items          []OrderLinePayload `json:"items"`
	IdempotencyKey string             `json:"-"`
}

// PublicOrderRequest is what a QR customer submits; restaurantId is the shop id
// carried in the QR code.
type PublicOrderRequest struct {
	RestaurantID   string             `json:"restaurantId"`
	TableID        string             `json:"tableId"`
	Items          []OrderLinePayload `json:"items"`
	TotalPrice     float64            `json:"totalPrice"`
	IdempotencyKey string             `json:"-"`
}

type StatusUpdateRequest struct {
	Status LineStatus `json:"status"`
}

type BillRequest struct {
	OrderID string `json:"orderId"`
}
