package services

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type KitchenAPI interface {
	KitchenOrders(ctx context.Context) ([]models.Order, error)
	UpdateItemStatus(ctx context.Context, orderID, itemID string, status models.LineStatus) error
}

// KitchenTicket is one order as the kitchen sees it: only the lines that
// still need work.
type KitchenTicket struct {
	OrderID   string             `json:"orderId"`
	Label     string             `json:"label"`
	OrderType models.OrderType   `json:"orderType"`
	KOTNumber int                `json:"kotNumber,omitempty"`
	Items     []models.OrderItem `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
}

// KitchenTickets keeps Sent and Preparing lines and drops orders left
// with nothing to cook.
func KitchenTickets(orders []models.Order) []KitchenTicket {
	tickets := []KitchenTicket{}
	for _, o := range orders {
		var items []models.OrderItem
		for _, item := range o.Items {
			if item.Status.OnKitchenDisplay() {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		tickets = append(tickets, KitchenTicket{
			OrderID:   o.ID,
			Label:     o.Label(),
			OrderType: o.OrderType,
			KOTNumber: o.KOTNumber,
			Items:     items,
			CreatedAt: o.CreatedAt,
		})
	}
	return tickets
}

type KitchenScreen struct {
	api KitchenAPI

	mu      sync.RWMutex
	tickets []KitchenTicket
}

func NewKitchenScreen(api KitchenAPI) *KitchenScreen {
	return &KitchenScreen{api: api, tickets: []KitchenTicket{}}
}

func (s *KitchenScreen) Fetch(ctx context.Context) ([]KitchenTicket, error) {
	orders, err := s.api.KitchenOrders(ctx)
	if err != nil {
		return nil, err
	}
	return KitchenTickets(orders), nil
}

func (s *KitchenScreen) Apply(tickets []KitchenTicket) {
	s.mu.Lock()
	s.tickets = tickets
	s.mu.Unlock()
}

func (s *KitchenScreen) Refresh(ctx context.Context) ([]KitchenTicket, error) {
	tickets, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.Apply(tickets)
	return tickets, nil
}

func (s *KitchenScreen) Tickets() []KitchenTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickets
}

// Advance moves a displayed line one step forward. The backend decides
// whether the move is accepted; the local view only changes when it is.
func (s *KitchenScreen) Advance(ctx context.Context, orderID, itemID string) (models.LineStatus, error) {
	current, ok := s.lineStatus(orderID, itemID)
	if !ok {
		return "", ErrNotOnDisplay
	}
	next, ok := current.Next()
	if !ok {
		return "", ErrNotOnDisplay
	}

	if err := s.api.UpdateItemStatus(ctx, orderID, itemID, next); err != nil {
		return "", err
	}
	utils.InfoLogger.Printf("Order %s item %s moved to %s", orderID, itemID, next)

	s.mu.Lock()
	s.tickets = withLineStatus(s.tickets, orderID, itemID, next)
	s.mu.Unlock()
	return next, nil
}

func (s *KitchenScreen) lineStatus(orderID, itemID string) (models.LineStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tickets {
		if t.OrderID != orderID {
			continue
		}
		for _, item := range t.Items {
			if item.ID == itemID {
				return item.Status, true
			}
		}
	}
	return "", false
}

// withLineStatus returns a copy of tickets with one line updated and
// filtered again, so a Ready line disappears at once.
func withLineStatus(tickets []KitchenTicket, orderID, itemID string, status models.LineStatus) []KitchenTicket {
	out := make([]KitchenTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.OrderID != orderID {
			out = append(out, t)
			continue
		}
		var items []models.OrderItem
		for _, item := range t.Items {
			if item.ID == itemID {
				item.Status = status
			}
			if item.Status.OnKitchenDisplay() {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		t.Items = items
		out = append(out, t)
	}
	return out
}
