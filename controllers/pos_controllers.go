package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// POSController drives the cashier screen. Every draft change is pushed to
// connected POS screens; submissions and bills also wake both refresh loops.
type POSController struct {
	POS            *services.POSScreen
	API            *client.Client
	Hub            *kds.KDSHub
	Currency       string
	POSRefresh     Refresher
	KitchenRefresh Refresher
}

type draftView struct {
	Draft        *models.DraftOrder `json:"draft"`
	Total        float64            `json:"total"`
	DisplayTotal string             `json:"displayTotal"`
	CanSubmit    bool               `json:"canSubmit"`
}

func (pc *POSController) view(draft models.DraftOrder, ok bool) draftView {
	if !ok {
		return draftView{DisplayTotal: utils.FormatCurrency(pc.Currency, 0)}
	}
	return draftView{
		Draft:        &draft,
		Total:        draft.Total(),
		DisplayTotal: utils.FormatCurrency(pc.Currency, draft.Total()),
		CanSubmit:    len(draft.Lines) > 0 && draft.HasNewLines(),
	}
}

func (pc *POSController) respondDraft(c *gin.Context, message string, draft models.DraftOrder) {
	v := pc.view(draft, true)
	if pc.Hub != nil {
		pc.Hub.BroadcastDraftUpdate(v)
	}
	utils.RespondJSON(c, http.StatusOK, message, v)
}

func (pc *POSController) GetState(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "POS state", gin.H{
		"state": pc.POS.State(),
		"draft": pc.view(pc.POS.Drafts().Snapshot()),
	})
}

func (pc *POSController) Refresh(c *gin.Context) {
	state, err := pc.POS.Refresh(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if pc.Hub != nil {
		pc.Hub.BroadcastPOSRefresh(state)
	}
	utils.RespondJSON(c, http.StatusOK, "POS refreshed", state)
}

func (pc *POSController) SelectTable(c *gin.Context) {
	draft, err := pc.POS.SelectTable(c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.respondDraft(c, "Table selected", draft)
}

func (pc *POSController) SelectOrder(c *gin.Context) {
	draft, err := pc.POS.SelectOrder(c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.respondDraft(c, "Order selected", draft)
}

func (pc *POSController) NewTakeaway(c *gin.Context) {
	var body struct {
		CustomerName string `json:"customerName"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	draft, err := pc.POS.NewTakeaway(body.CustomerName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.respondDraft(c, "Takeaway order started", draft)
}

func (pc *POSController) NewDelivery(c *gin.Context) {
	var details models.CustomerDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	draft, err := pc.POS.NewDelivery(details)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.respondDraft(c, "Delivery order started", draft)
}

func (pc *POSController) GetDraft(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current draft", pc.view(pc.POS.Drafts().Snapshot()))
}

func (pc *POSController) ClearDraft(c *gin.Context) {
	if err := pc.POS.Drafts().Clear(); err != nil {
		respondServiceError(c, err)
		return
	}
	v := pc.view(models.DraftOrder{}, false)
	if pc.Hub != nil {
		pc.Hub.BroadcastDraftUpdate(v)
	}
	utils.RespondJSON(c, http.StatusOK, "Draft cleared", v)
}

func (pc *POSController) AddItem(c *gin.Context) {
	var body struct {
		MenuItemID string `json:"menuItemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	draft, err := pc.POS.AddMenuItem(body.MenuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.respondDraft(c, "Item added", draft)
}

func (pc *POSController) ChangeQuantity(c *gin.Context) {
	var body struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	draft, err := pc.POS.Drafts().ChangeQuantity(c.Param("menu_item_id"), body.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	pc.respondDraft(c, "Quantity updated", draft)
}

// Submit sends the draft's new lines to the kitchen.
func (pc *POSController) Submit(c *gin.Context) {
	draft, err := pc.POS.Drafts().Submit(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	v := pc.view(draft, true)
	if pc.Hub != nil {
		pc.Hub.BroadcastOrderSubmitted(v)
	}
	trigger(pc.POSRefresh, pc.KitchenRefresh)
	utils.RespondJSON(c, http.StatusOK, "Order sent to kitchen", v)
}

// Bill closes the selected order and answers with the PDF receipt.
// ?finalize=true goes through the backend's single-step endpoint.
func (pc *POSController) Bill(c *gin.Context) {
	opts := services.BillOptions{Currency: pc.Currency, Finalize: c.Query("finalize") == "true"}
	if profile, err := pc.API.Profile(c.Request.Context()); err == nil && profile.Restaurant != nil {
		opts.ShopName = profile.Restaurant.ShopName
	}

	receipt, err := pc.POS.Bill(c.Request.Context(), opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if pc.Hub != nil {
		pc.Hub.BroadcastDraftUpdate(pc.view(models.DraftOrder{}, false))
	}
	trigger(pc.POSRefresh)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.FileName))
	c.Header("X-Bill-Number", receipt.Bill.BillNumber)
	c.Data(http.StatusOK, "application/pdf", receipt.PDF)
}
