package models

import "strings"

// MenuItem is a dish as served by the backend's /api/menu and public menu endpoints.
type MenuItem struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	IsAvailable *bool          `json:"isAvailable,omitempty"`
	Attributes  MenuAttributes `json:"attributes"`
}

type MenuAttributes struct {
	Description string `json:"description,omitempty"`
}

// Available treats a missing flag as available.
func (m MenuItem) Available() bool {
	return m.IsAvailable == nil || *m.IsAvailable
}

// CategoryName returns the trimmed category, or "" when the item has none.
func (m MenuItem) CategoryName() string {
	return strings.TrimSpace(m.Category)
}

// PublicMenu is the unauthenticated menu served to QR customers.
type PublicMenu struct {
	ShopName  string     `json:"shopName"`
	MenuItems []MenuItem `json:"menuItems"`
}

// MenuItemForm is sent as multipart form data when creating or editing a dish.
type MenuItemForm struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	IsAvailable bool    `json:"isAvailable"`
	Image       []byte  `json:"-"`
	ImageName   string  `json:"-"`
}
