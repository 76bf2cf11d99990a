package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// OrderIDCache remembers, per shop table, the customer order that can still
// be amended after a page reload.
type OrderIDCache interface {
	InProgressOrder(shopID, tableID string) (string, bool, error)
	SetInProgressOrder(shopID, tableID, orderID string) error
	ClearInProgressOrder(shopID, tableID string) error
}

// DraftManager owns the single draft of one screen. While a submission is
// in flight the draft is frozen, so a double tap cannot send the same KOT
// twice and the server's answer cannot overwrite newer local edits.
type DraftManager struct {
	gateway OrderGateway
	cache   OrderIDCache

	mu         sync.Mutex
	draft      *models.DraftOrder
	submitting bool
}

// NewDraftManager returns a manager with no draft selected. cache may be nil.
func NewDraftManager(gateway OrderGateway, cache OrderIDCache) *DraftManager {
	return &DraftManager{gateway: gateway, cache: cache}
}

// Select starts a fresh draft for target, dropping whatever was selected.
func (m *DraftManager) Select(target models.OrderTarget) (models.DraftOrder, error) {
	if err := target.Validate(); err != nil {
		return models.DraftOrder{}, err
	}
	return m.replace(models.NewDraftOrder(target))
}

// Resume selects an order the backend already knows, for amendment.
func (m *DraftManager) Resume(target models.OrderTarget, order models.Order) (models.DraftOrder, error) {
	if order.ID == "" {
		return models.DraftOrder{}, ErrUnknownOrder
	}
	return m.replace(models.DraftFromOrder(target, order))
}

// ResumeID selects an order known only by id; its lines appear after the
// next successful submission.
func (m *DraftManager) ResumeID(target models.OrderTarget, orderID string) (models.DraftOrder, error) {
	return m.Resume(target, models.Order{ID: orderID})
}

func (m *DraftManager) replace(d *models.DraftOrder) (models.DraftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return models.DraftOrder{}, ErrSubmissionInFlight
	}
	m.draft = d
	return d.Clone(), nil
}

// Clear drops the draft. Unsent lines are lost.
func (m *DraftManager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return ErrSubmissionInFlight
	}
	m.draft = nil
	return nil
}

// Complete drops the draft after its order was billed and forgets the
// cached customer order id.
func (m *DraftManager) Complete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitting {
		return ErrSubmissionInFlight
	}
	if m.draft != nil && m.draft.Target.Public() && m.cache != nil {
		t := m.draft.Target
		if err := m.cache.ClearInProgressOrder(t.ShopID, t.TableID); err != nil {
			utils.ErrorLogger.Printf("Error clearing cached order for shop %s table %s: %v", t.ShopID, t.TableID, err)
		}
	}
	m.draft = nil
	return nil
}

// Snapshot returns a copy of the current draft; ok is false when none is selected.
func (m *DraftManager) Snapshot() (draft models.DraftOrder, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return models.DraftOrder{}, false
	}
	return m.draft.Clone(), true
}

func (m *DraftManager) AddItem(item models.MenuItem) (models.DraftOrder, error) {
	return m.mutate(func(d *models.DraftOrder) { d.AddItem(item) })
}

// ChangeQuantity applies delta to the New line of menuItemID. Lines already
// sent are ignored without error.
func (m *DraftManager) ChangeQuantity(menuItemID string, delta int) (models.DraftOrder, error) {
	return m.mutate(func(d *models.DraftOrder) { d.ChangeQuantity(menuItemID, delta) })
}

func (m *DraftManager) mutate(fn func(d *models.DraftOrder)) (models.DraftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return models.DraftOrder{}, ErrNoDraftSelected
	}
	if m.submitting {
		return models.DraftOrder{}, ErrSubmissionInFlight
	}
	fn(m.draft)
	return m.draft.Clone(), nil
}

func (m *DraftManager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return 0
	}
	return m.draft.Total()
}

// CanSubmit reports why the draft cannot be sent, or nil.
func (m *DraftManager) CanSubmit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canSubmitLocked()
}

func (m *DraftManager) canSubmitLocked() error {
	switch {
	case m.draft == nil:
		return ErrNoDraftSelected
	case m.submitting:
		return ErrSubmissionInFlight
	case len(m.draft.Lines) == 0:
		return ErrEmptyDraft
	case !m.draft.HasNewLines():
		return ErrNoNewItems
	}
	return nil
}

// Submit sends the New lines: a new order is created, an existing one gets
// the lines appended. On success the draft mirrors the server's order; on
// failure it is left exactly as it was and nothing is retried. The one
// exception is ErrOrderUnconfirmed, after which the lines are held as Sent.
func (m *DraftManager) Submit(ctx context.Context) (models.DraftOrder, error) {
	m.mu.Lock()
	if err := m.canSubmitLocked(); err != nil {
		m.mu.Unlock()
		return models.DraftOrder{}, err
	}
	m.submitting = true
	snapshot := m.draft.Clone()
	m.mu.Unlock()

	next, err := m.send(ctx, snapshot)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitting = false
	if errors.Is(err, ErrOrderUnconfirmed) {
		utils.ErrorLogger.Printf("Order for %s unconfirmed, holding its lines as sent: %v", snapshot.Target.Label(), err)
		held := snapshot.Clone()
		held.MarkSent()
		m.draft = &held
		return held.Clone(), err
	}
	if err != nil {
		utils.ErrorLogger.Printf("Failed to send order for %s: %v", snapshot.Target.Label(), err)
		return snapshot, err
	}
	m.draft = next
	return next.Clone(), nil
}

func (m *DraftManager) send(ctx context.Context, snapshot models.DraftOrder) (*models.DraftOrder, error) {
	lines := snapshot.NewLines()
	key := uuid.NewString()

	if snapshot.IsNewOrder() {
		order, err := m.gateway.Create(ctx, snapshot.Target, lines, key)
		if errors.Is(err, models.ErrBadResponse) {
			return nil, fmt.Errorf("%w: %v", ErrOrderUnconfirmed, err)
		}
		if err != nil {
			return nil, err
		}
		if order.ID == "" {
			return nil, ErrMissingOrderID
		}
		utils.InfoLogger.Printf("Order %s created for %s (KOT #%d, %d lines)", order.ID, snapshot.Target.Label(), order.KOTNumber, len(lines))
		m.remember(snapshot.Target, order.ID)

		next := models.DraftFromOrder(snapshot.Target, *order)
		if len(order.Items) == 0 {
			next.Lines = snapshot.Clone().Lines
			next.MarkSent()
		}
		return next, nil
	}

	if err := m.gateway.Amend(ctx, snapshot.Target, snapshot.ServerOrderID, lines, key); err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Sent %d new lines for order %s", len(lines), snapshot.ServerOrderID)

	order, err := m.gateway.Fetch(ctx, snapshot.Target, snapshot.ServerOrderID)
	if err != nil {
		utils.ErrorLogger.Printf("Lines sent but order %s could not be re-fetched: %v", snapshot.ServerOrderID, err)
		next := snapshot.Clone()
		next.MarkSent()
		return &next, nil
	}
	return models.DraftFromOrder(snapshot.Target, *order), nil
}

func (m *DraftManager) remember(target models.OrderTarget, orderID string) {
	if !target.Public() || m.cache == nil {
		return
	}
	if err := m.cache.SetInProgressOrder(target.ShopID, target.TableID, orderID); err != nil {
		utils.ErrorLogger.Printf("Error caching order %s for shop %s table %s: %v", orderID, target.ShopID, target.TableID, err)
	}
}
