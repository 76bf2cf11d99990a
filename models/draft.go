package models

// DraftLine is one line of the order being built. UnitPrice is captured when
// the item is added and never re-read from the live menu.
type DraftLine struct {
	ItemID     string     `json:"itemId,omitempty"`
	MenuItemID string     `json:"menuItemId"`
	Name       string     `json:"name"`
	UnitPrice  float64    `json:"unitPrice"`
	Quantity   int        `json:"quantity"`
	Status     LineStatus `json:"status"`
}

func (l DraftLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

func (l DraftLine) Payload(status LineStatus) OrderLinePayload {
	return OrderLinePayload{
		MenuItemID: l.MenuItemID,
		Name:       l.Name,
		Price:      l.UnitPrice,
		Quantity:   l.Quantity,
		Status:     status,
	}
}

// DraftOrder is the order currently being built or edited on a terminal.
// Invariants: every line has Quantity >= 1 and no two New lines share a
// MenuItemID. ServerOrderID is empty until the first successful submission.
type DraftOrder struct {
	Target        OrderTarget `json:"target"`
	Lines         []DraftLine `json:"lines"`
	ServerOrderID string      `json:"serverOrderId,omitempty"`
	KOTNumber     int         `json:"kotNumber,omitempty"`
}

func NewDraftOrder(target OrderTarget) *DraftOrder {
	return &DraftOrder{Target: target, Lines: []DraftLine{}}
}

// DraftFromOrder mirrors a server order into a draft that can be amended.
// Every mirrored line has been submitted, so a line the backend still
// reports as New comes back Sent.
func DraftFromOrder(target OrderTarget, order Order) *DraftOrder {
	d := &DraftOrder{
		Target:        target,
		Lines:         make([]DraftLine, 0, len(order.Items)),
		ServerOrderID: order.ID,
		KOTNumber:     order.KOTNumber,
	}
	for _, item := range order.Items {
		if item.Quantity < 1 {
			continue
		}
		status := item.Status
		if status == "" || status == StatusNew {
			status = StatusSent
		}
		d.Lines = append(d.Lines, DraftLine{
			ItemID:     item.ID,
			MenuItemID: item.MenuKey(),
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   item.Quantity,
			Status:     status,
		})
	}
	return d
}

func (d *DraftOrder) IsNewOrder() bool {
	return d.ServerOrderID == ""
}

// AddItem merges into the existing New line for the item or appends one.
func (d *DraftOrder) AddItem(item MenuItem) {
	if i := d.newLineIndex(item.ID); i >= 0 {
		d.Lines[i].Quantity++
		return
	}
	d.Lines = append(d.Lines, DraftLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
		Status:     StatusNew,
	})
}

// ChangeQuantity adjusts the New line for menuItemID by delta, removing it
// when the result drops to zero or below. Lines the kitchen already has are
// left alone. It reports whether the draft changed.
func (d *DraftOrder) ChangeQuantity(menuItemID string, delta int) bool {
	i := d.newLineIndex(menuItemID)
	if i < 0 || delta == 0 {
		return false
	}
	qty := d.Lines[i].Quantity + delta
	if qty <= 0 {
		d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
		return true
	}
	d.Lines[i].Quantity = qty
	return true
}

// Total is the sum of UnitPrice * Quantity over all lines, unrounded.
func (d *DraftOrder) Total() float64 {
	var total float64
	for _, l := range d.Lines {
		total += l.Subtotal()
	}
	return total
}

func (d *DraftOrder) NewLines() []DraftLine {
	var lines []DraftLine
	for _, l := range d.Lines {
		if l.Status == StatusNew {
			lines = append(lines, l)
		}
	}
	return lines
}

func (d *DraftOrder) HasNewLines() bool {
	for _, l := range d.Lines {
		if l.Status == StatusNew {
			return true
		}
	}
	return false
}

// MarkSent flips every New line to Sent, used when the backend accepted
// lines but the refreshed order could not be fetched.
func (d *DraftOrder) MarkSent() {
	for i := range d.Lines {
		if d.Lines[i].Status == StatusNew {
			d.Lines[i].Status = StatusSent
		}
	}
}

// Clone returns a deep copy safe to hand out of a lock.
func (d *DraftOrder) Clone() DraftOrder {
	c := *d
	c.Lines = append([]DraftLine(nil), d.Lines...)
	if c.Lines == nil {
		c.Lines = []DraftLine{}
	}
	if d.Target.Customer != nil {
		customer := *d.Target.Customer
		c.Target.Customer = &customer
	}
	return c
}

func (d *DraftOrder) newLineIndex(menuItemID string) int {
	for i, l := range d.Lines {
		if l.Status == StatusNew && l.MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}
