package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"golang.org/x/sync/errgroup"
)

type POSAPI interface {
	Tables(ctx context.Context) ([]models.Table, error)
	Menu(ctx context.Context) ([]models.MenuItem, error)
	ActiveOrders(ctx context.Context) ([]models.Order, error)
	CreateBill(ctx context.Context, orderID string) (*models.Bill, error)
	FinalizeBill(ctx context.Context, orderID string) (*models.Bill, error)
}

// POSState is everything the POS screen renders besides the draft.
// A refresh replaces it wholesale.
type POSState struct {
	Tables       []models.Table    `json:"tables"`
	Menu         []models.MenuItem `json:"menu"`
	Categories   []MenuGroup       `json:"categories"`
	ActiveOrders []models.Order    `json:"activeOrders"`
	Occupied     map[string]bool   `json:"occupiedTables"`
	RefreshedAt  time.Time         `json:"refreshedAt"`
}

// POSScreen is the cashier terminal: tables, menu, active orders and the
// shared draft.
type POSScreen struct {
	api    POSAPI
	drafts *DraftManager
	now    func() time.Time

	mu    sync.RWMutex
	state POSState
}

func NewPOSScreen(api POSAPI, drafts *DraftManager) *POSScreen {
	return &POSScreen{
		api:    api,
		drafts: drafts,
		now:    time.Now,
		state:  emptyPOSState(),
	}
}

func emptyPOSState() POSState {
	return POSState{
		Tables:       []models.Table{},
		Menu:         []models.MenuItem{},
		Categories:   []MenuGroup{},
		ActiveOrders: []models.Order{},
		Occupied:     map[string]bool{},
	}
}

func (s *POSScreen) Drafts() *DraftManager {
	return s.drafts
}

// Fetch loads tables, menu and active orders concurrently. Any failure
// fails the whole batch so the screen never shows a half-refreshed state.
func (s *POSScreen) Fetch(ctx context.Context) (POSState, error) {
	var (
		tables []models.Table
		menu   []models.MenuItem
		orders []models.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tables, err = s.api.Tables(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		menu, err = s.api.Menu(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.api.ActiveOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return POSState{}, err
	}

	state := emptyPOSState()
	state.Tables = append(state.Tables, PermanentTables(tables)...)
	state.Menu = append(state.Menu, menu...)
	state.Categories = GroupByCategory(menu)
	state.ActiveOrders = append(state.ActiveOrders, orders...)
	state.Occupied = OccupiedTables(orders)
	state.RefreshedAt = s.now()
	return state, nil
}

// Apply swaps in a fetched state. The draft is not touched.
func (s *POSScreen) Apply(state POSState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *POSScreen) Refresh(ctx context.Context) (POSState, error) {
	state, err := s.Fetch(ctx)
	if err != nil {
		return POSState{}, err
	}
	s.Apply(state)
	return state, nil
}

func (s *POSScreen) State() POSState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SelectTable resumes the table's active order, or starts a new dine-in
// draft when the table is free.
func (s *POSScreen) SelectTable(tableID string) (models.DraftOrder, error) {
	state := s.State()

	var table *models.Table
	for i := range state.Tables {
		if state.Tables[i].ID == tableID {
			table = &state.Tables[i]
			break
		}
	}
	if table == nil {
		return models.DraftOrder{}, ErrUnknownTable
	}

	target := models.TableTarget(*table)
	for _, order := range state.ActiveOrders {
		if order.TableID() == tableID {
			return s.drafts.Resume(target, order)
		}
	}
	return s.drafts.Select(target)
}

// SelectOrder resumes any active order, takeaway and delivery included.
func (s *POSScreen) SelectOrder(orderID string) (models.DraftOrder, error) {
	for _, order := range s.State().ActiveOrders {
		if order.ID == orderID {
			return s.drafts.Resume(models.TargetFromOrder(order), order)
		}
	}
	return models.DraftOrder{}, ErrUnknownOrder
}

// NewTakeaway starts a takeaway draft. A blank name becomes "Guest NNN".
func (s *POSScreen) NewTakeaway(customerName string) (models.DraftOrder, error) {
	name := strings.TrimSpace(customerName)
	if name == "" {
		name = fmt.Sprintf("Guest %03d", s.now().UnixMilli()%1000)
	}
	return s.drafts.Select(models.TakeawayTarget(name))
}

func (s *POSScreen) NewDelivery(details models.CustomerDetails) (models.DraftOrder, error) {
	return s.drafts.Select(models.DeliveryTarget(details))
}

// AddMenuItem adds one unit of a menu item from the last refreshed menu,
// at the price shown there.
func (s *POSScreen) AddMenuItem(menuItemID string) (models.DraftOrder, error) {
	item, err := FindMenuItem(s.State().Menu, menuItemID)
	if err != nil {
		return models.DraftOrder{}, err
	}
	if !item.Available() {
		return models.DraftOrder{}, ErrItemUnavailable
	}
	return s.drafts.AddItem(item)
}

// BillOptions decorate the receipt; they do not affect the bill itself.
type BillOptions struct {
	ShopName string
	Currency string
	// Finalize uses the backend's single-step bill endpoint.
	Finalize bool
}

// Bill closes the selected order on the backend and renders its receipt.
// The draft is dropped afterwards.
func (s *POSScreen) Bill(ctx context.Context, opts BillOptions) (*Receipt, error) {
	draft, ok := s.drafts.Snapshot()
	if !ok || draft.IsNewOrder() {
		return nil, ErrOrderNotPlaced
	}

	closeOrder := s.api.CreateBill
	if opts.Finalize {
		closeOrder = s.api.FinalizeBill
	}
	bill, err := closeOrder(ctx, draft.ServerOrderID)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Bill %s generated for order %s", bill.BillNumber, draft.ServerOrderID)

	receipt, err := RenderReceipt(ReceiptData{
		ShopName: opts.ShopName,
		Currency: opts.Currency,
		Label:    draft.Target.Label(),
		Bill:     *bill,
		Lines:    draft.Lines,
		IssuedAt: s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("bill %s created but receipt failed: %w", bill.BillNumber, err)
	}

	if err := s.drafts.Complete(); err != nil {
		utils.ErrorLogger.Printf("Bill %s created but draft is still busy: %v", bill.BillNumber, err)
	}
	return receipt, nil
}
