package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTarget = errors.New("invalid order target")

// OrderTarget says who an order is for. It is fixed when a draft is created.
type OrderTarget struct {
	Type      OrderType        `json:"orderType"`
	TableID   string           `json:"tableId,omitempty"`
	TableName string           `json:"tableName,omitempty"`
	ShopID    string           `json:"shopId,omitempty"`
	Customer  *CustomerDetails `json:"customerDetails,omitempty"`
}

func TableTarget(table Table) OrderTarget {
	return OrderTarget{Type: OrderDineIn, TableID: table.ID, TableName: table.Name}
}

func TakeawayTarget(customerName string) OrderTarget {
	return OrderTarget{Type: OrderTakeaway, Customer: &CustomerDetails{Name: customerName}}
}

func DeliveryTarget(details CustomerDetails) OrderTarget {
	return OrderTarget{Type: OrderDelivery, Customer: &details}
}

func QRSessionTarget(shopID, tableID string) OrderTarget {
	return OrderTarget{Type: OrderDineInQR, ShopID: shopID, TableID: tableID}
}

// TargetFromOrder rebuilds the target of an order fetched from the backend.
func TargetFromOrder(order Order) OrderTarget {
	t := OrderTarget{Type: order.OrderType}
	if t.Type == "" {
		t.Type = OrderDineIn
	}
	if order.Table != nil {
		t.TableID = order.Table.ID
		t.TableName = order.Table.Name
	}
	if order.CustomerDetails != nil {
		details := *order.CustomerDetails
		t.Customer = &details
	}
	return t
}

// Validate checks that the fields required by the target's type are present.
func (t OrderTarget) Validate() error {
	switch t.Type {
	case OrderDineIn:
		if t.TableID == "" {
			return fmt.Errorf("%w: dine-in order needs a table", ErrInvalidTarget)
		}
	case OrderTakeaway:
		if t.Customer == nil || strings.TrimSpace(t.Customer.Name) == "" {
			return fmt.Errorf("%w: takeaway order needs a customer name", ErrInvalidTarget)
		}
	case OrderDelivery:
		if t.Customer == nil {
			return fmt.Errorf("%w: delivery order needs customer details", ErrInvalidTarget)
		}
		if err := Validate(t.Customer); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
		}
		if strings.TrimSpace(t.Customer.Address) == "" {
			return fmt.Errorf("%w: delivery order needs an address", ErrInvalidTarget)
		}
	case OrderDineInQR:
		if t.ShopID == "" || t.TableID == "" {
			return fmt.Errorf("%w: QR session needs shop and table", ErrInvalidTarget)
		}
	default:
		return fmt.Errorf("%w: unknown order type %q", ErrInvalidTarget, t.Type)
	}
	return nil
}

// Public reports whether the order goes through the unauthenticated customer endpoints.
func (t OrderTarget) Public() bool {
	return t.Type == OrderDineInQR
}

func (t OrderTarget) Label() string {
	switch {
	case t.TableName != "":
		return t.TableName
	case t.Customer != nil && t.Customer.Name != "":
		return t.Customer.Name
	case t.TableID != "":
		return t.TableID
	}
	return "New Order"
}
