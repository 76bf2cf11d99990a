package models

// LineStatus is the kitchen status of a single order line.
// Lines only ever move forward: New -> Sent to Kitchen -> Preparing -> Ready.
type LineStatus string

const (
	StatusNew       LineStatus = "New"
	StatusSent      LineStatus = "Sent to Kitchen"
	StatusPreparing LineStatus = "Preparing"
	StatusReady     LineStatus = "Ready"
)

// Next returns the status that follows s. ok is false for Ready and unknown values.
func (s LineStatus) Next() (next LineStatus, ok bool) {
	switch s {
	case StatusNew:
		return StatusSent, true
	case StatusSent:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	}
	return "", false
}

// Editable reports whether the line is still owned by the client.
func (s LineStatus) Editable() bool {
	return s == StatusNew
}

// OnKitchenDisplay reports whether the kitchen still has work to do on the line.
func (s LineStatus) OnKitchenDisplay() bool {
	return s == StatusSent || s == StatusPreparing
}

// OrderItem is one line of a server-side order.
type OrderItem struct {
	ID         string     `json:"_id,omitempty"`
	MenuItemID string     `json:"menuItemId,omitempty"`
	ProductID  string     `json:"productId,omitempty"`
	Name       string     `json:"name"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
	Status     LineStatus `json:"status"`
}

// MenuKey returns the menu item the line was ordered from. Older backend
// versions call it productId.
func (i OrderItem) MenuKey() string {
	if i.MenuItemID != "" {
		return i.MenuItemID
	}
	return i.ProductID
}
