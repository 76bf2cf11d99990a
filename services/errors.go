package services

import "errors"

// Draft errors are user-facing warnings: the caller shows them and the draft
// stays as it was.
var (
	ErrNoDraftSelected    = errors.New("please select a table or start an order first")
	ErrEmptyDraft         = errors.New("order has no items")
	ErrNoNewItems         = errors.New("no new items to send to kitchen")
	ErrSubmissionInFlight = errors.New("order is already being sent")
	ErrOrderNotPlaced     = errors.New("no active order selected to bill")
	ErrMissingOrderID     = errors.New("backend did not return an order id")
	// ErrOrderUnconfirmed means the order may exist on the backend; its
	// lines are held as sent so they are not placed twice.
	ErrOrderUnconfirmed = errors.New("order may have been placed, check the order list before sending again")
)

var (
	ErrUnknownTable    = errors.New("table not found")
	ErrUnknownOrder    = errors.New("order not found")
	ErrUnknownMenuItem = errors.New("menu item not found")
	ErrNotOnDisplay    = errors.New("item is not on the kitchen display")
	ErrCartNotFound    = errors.New("cart not found")
	ErrNotEnoughData   = errors.New("not enough data to draw a chart")
)

var ErrItemUnavailable = errors.New("menu item is not available")

// ErrRefreshSkipped lets a refresh fetch decline to run, e.g. while logged
// out. The scheduler drops it silently.
var ErrRefreshSkipped = errors.New("refresh skipped")
