package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/session"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var errShopRequired = errors.New("shopId is required")

// CustomerController serves the QR ordering flow. None of its routes need a
// staff session; every backend call goes to the public endpoints.
type CustomerController struct {
	API            *client.Client
	Carts          *services.DraftRegistry
	Session        *session.Store
	Hub            *kds.KDSHub
	Currency       string
	POSRefresh     Refresher
	KitchenRefresh Refresher
}

type cartView struct {
	CartID       string            `json:"cartId"`
	Draft        models.DraftOrder `json:"draft"`
	Total        float64           `json:"total"`
	DisplayTotal string            `json:"displayTotal"`
}

func (cc *CustomerController) cartView(id string, draft models.DraftOrder) cartView {
	return cartView{
		CartID:       id,
		Draft:        draft,
		Total:        draft.Total(),
		DisplayTotal: utils.FormatCurrency(cc.Currency, draft.Total()),
	}
}

// GetMenu answers with the shop's available dishes grouped by category and,
// when a table is given, the order that table can still add to.
func (cc *CustomerController) GetMenu(c *gin.Context) {
	shopID := c.Query("shopId")
	if shopID == "" {
		utils.RespondError(c, http.StatusBadRequest, errShopRequired)
		return
	}

	menu, err := cc.API.PublicMenu(c.Request.Context(), shopID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tableID := c.Query("tableId")
	resp := gin.H{
		"shopName":   menu.ShopName,
		"tableId":    tableID,
		"categories": services.GroupByCategory(services.AvailableOnly(menu.MenuItems)),
	}
	if tableID != "" {
		if orderID, ok, err := cc.Session.InProgressOrder(shopID, tableID); err == nil && ok {
			resp["inProgressOrderId"] = orderID
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", resp)
}

// CreateCart opens a cart for a table. When that table has an order still in
// progress the cart resumes it, so a reloaded page adds to the same order.
func (cc *CustomerController) CreateCart(c *gin.Context) {
	var body struct {
		ShopID  string `json:"shopId" binding:"required"`
		TableID string `json:"tableId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	target := models.QRSessionTarget(body.ShopID, body.TableID)
	id, cart := cc.Carts.Open()

	draft, err := cc.resume(c, cart, target)
	if err != nil {
		cc.Carts.Close(id)
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Cart created", cc.cartView(id, draft))
}

func (cc *CustomerController) resume(c *gin.Context, cart *services.DraftManager, target models.OrderTarget) (models.DraftOrder, error) {
	orderID, ok, err := cc.Session.InProgressOrder(target.ShopID, target.TableID)
	if err != nil {
		utils.ErrorLogger.Printf("Error reading cached order for shop %s table %s: %v", target.ShopID, target.TableID, err)
	}
	if err != nil || !ok {
		return cart.Select(target)
	}

	order, err := cc.API.PublicOrder(c.Request.Context(), target.ShopID, orderID)
	switch {
	case err == nil:
		if id := order.TableID(); id != "" && id != target.TableID {
			utils.ErrorLogger.Printf("Cached order %s belongs to table %s, not %s; starting over", orderID, id, target.TableID)
			cc.forget(target)
			return cart.Select(target)
		}
		if order.ID == "" {
			order.ID = orderID
		}
		return cart.Resume(target, *order)
	case errors.Is(err, client.ErrNotFound):
		// Billed or cancelled since; start over.
		cc.forget(target)
		return cart.Select(target)
	default:
		utils.ErrorLogger.Printf("Could not load order %s, resuming by id: %v", orderID, err)
		return cart.ResumeID(target, orderID)
	}
}

func (cc *CustomerController) forget(target models.OrderTarget) {
	if err := cc.Session.ClearInProgressOrder(target.ShopID, target.TableID); err != nil {
		utils.ErrorLogger.Printf("Error clearing cached order for shop %s table %s: %v", target.ShopID, target.TableID, err)
	}
}

func (cc *CustomerController) cart(c *gin.Context) (string, *services.DraftManager, bool) {
	id := c.Param("cart_id")
	cart, err := cc.Carts.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return "", nil, false
	}
	return id, cart, true
}

func (cc *CustomerController) GetCart(c *gin.Context) {
	id, cart, ok := cc.cart(c)
	if !ok {
		return
	}
	draft, ok := cart.Snapshot()
	if !ok {
		respondServiceError(c, services.ErrNoDraftSelected)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", cc.cartView(id, draft))
}

// AddItem prices the dish from the live public menu at the moment it is added.
func (cc *CustomerController) AddItem(c *gin.Context) {
	id, cart, ok := cc.cart(c)
	if !ok {
		return
	}
	var body struct {
		MenuItemID string `json:"menuItemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	current, ok := cart.Snapshot()
	if !ok {
		respondServiceError(c, services.ErrNoDraftSelected)
		return
	}
	menu, err := cc.API.PublicMenu(c.Request.Context(), current.Target.ShopID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	item, err := services.FindMenuItem(menu.MenuItems, body.MenuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !item.Available() {
		respondServiceError(c, services.ErrItemUnavailable)
		return
	}

	draft, err := cart.AddItem(item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", cc.cartView(id, draft))
}

func (cc *CustomerController) ChangeQuantity(c *gin.Context) {
	id, cart, ok := cc.cart(c)
	if !ok {
		return
	}
	var body struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	draft, err := cart.ChangeQuantity(c.Param("menu_item_id"), body.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Quantity updated", cc.cartView(id, draft))
}

func (cc *CustomerController) Submit(c *gin.Context) {
	id, cart, ok := cc.cart(c)
	if !ok {
		return
	}
	draft, err := cart.Submit(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := cc.cartView(id, draft)
	if cc.Hub != nil {
		cc.Hub.BroadcastOrderSubmitted(view)
	}
	trigger(cc.POSRefresh, cc.KitchenRefresh)
	utils.RespondJSON(c, http.StatusOK, "Order placed", view)
}

// CloseCart drops a cart the customer is done with. Placed orders stay on
// the backend and in the table's cache.
func (cc *CustomerController) CloseCart(c *gin.Context) {
	id := c.Param("cart_id")
	if _, err := cc.Carts.Get(id); err != nil {
		respondServiceError(c, err)
		return
	}
	cc.Carts.Close(id)
	utils.RespondJSON(c, http.StatusOK, "Cart closed", nil)
}
