package models

// CustomerDetails identifies the customer of a takeaway or delivery order.
type CustomerDetails struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
