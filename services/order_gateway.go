package services

import (
	"context"

	"github.com/yeremiapane/restaurant-pos/models"
)

// OrderGateway is where a draft is submitted. Staff terminals and customer
// QR sessions use different backend endpoints behind the same contract.
type OrderGateway interface {
	Create(ctx context.Context, target models.OrderTarget, lines []models.DraftLine, key string) (*models.Order, error)
	Amend(ctx context.Context, target models.OrderTarget, orderID string, lines []models.DraftLine, key string) error
	Fetch(ctx context.Context, target models.OrderTarget, orderID string) (*models.Order, error)
}

type StaffOrderAPI interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	AppendItems(ctx context.Context, orderID string, req models.AppendItemsRequest) error
	Order(ctx context.Context, orderID string) (*models.Order, error)
}

// StaffGateway submits through the authenticated /api/orders endpoints.
// Lines go out as "Sent to Kitchen": a submission is a KOT.
type StaffGateway struct {
	API StaffOrderAPI
}

func (g StaffGateway) Create(ctx context.Context, target models.OrderTarget, lines []models.DraftLine, key string) (*models.Order, error) {
	req := models.CreateOrderRequest{
		Items:          payloads(lines, models.StatusSent),
		OrderType:      target.Type,
		IdempotencyKey: key,
	}
	if target.Type.DineIn() {
		req.TableID = target.TableID
	} else {
		req.CustomerDetails = target.Customer
	}
	return g.API.CreateOrder(ctx, req)
}

func (g StaffGateway) Amend(ctx context.Context, _ models.OrderTarget, orderID string, lines []models.DraftLine, key string) error {
	return g.API.AppendItems(ctx, orderID, models.AppendItemsRequest{
		Items:          payloads(lines, models.StatusSent),
		IdempotencyKey: key,
	})
}

func (g StaffGateway) Fetch(ctx context.Context, _ models.OrderTarget, orderID string) (*models.Order, error) {
	return g.API.Order(ctx, orderID)
}

type PublicOrderAPI interface {
	CreatePublicOrder(ctx context.Context, req models.PublicOrderRequest) (*models.Order, error)
	AmendPublicOrder(ctx context.Context, orderID string, req models.PublicOrderRequest) error
	PublicOrder(ctx context.Context, shopID, orderID string) (*models.Order, error)
}

// PublicGateway submits customer orders placed from a table's QR code.
type PublicGateway struct {
	API PublicOrderAPI
}

func (g PublicGateway) Create(ctx context.Context, target models.OrderTarget, lines []models.DraftLine, key string) (*models.Order, error) {
	return g.API.CreatePublicOrder(ctx, publicRequest(target, lines, key))
}

func (g PublicGateway) Amend(ctx context.Context, target models.OrderTarget, orderID string, lines []models.DraftLine, key string) error {
	return g.API.AmendPublicOrder(ctx, orderID, publicRequest(target, lines, key))
}

func (g PublicGateway) Fetch(ctx context.Context, target models.OrderTarget, orderID string) (*models.Order, error) {
	return g.API.PublicOrder(ctx, target.ShopID, orderID)
}

func publicRequest(target models.OrderTarget, lines []models.DraftLine, key string) models.PublicOrderRequest {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return models.PublicOrderRequest{
		RestaurantID:   target.ShopID,
		TableID:        target.TableID,
		Items:          payloads(lines, ""),
		TotalPrice:     total,
		IdempotencyKey: key,
	}
}

func payloads(lines []models.DraftLine, status models.LineStatus) []models.OrderLinePayload {
	out := make([]models.OrderLinePayload, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Payload(status))
	}
	return out
}
