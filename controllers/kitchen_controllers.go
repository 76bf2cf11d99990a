package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type KitchenController struct {
	Kitchen    *services.KitchenScreen
	Hub        *kds.KDSHub
	POSRefresh Refresher
}

// GetOrders answers with fresh tickets, so a chef opening the screen does
// not wait for the next poll.
func (kc *KitchenController) GetOrders(c *gin.Context) {
	tickets, err := kc.Kitchen.Refresh(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", tickets)
}

// AdvanceItem moves one line a step forward: Sent to Kitchen -> Preparing -> Ready.
func (kc *KitchenController) AdvanceItem(c *gin.Context) {
	orderID := c.Param("order_id")
	itemID := c.Param("item_id")

	status, err := kc.Kitchen.Advance(c.Request.Context(), orderID, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tickets := kc.Kitchen.Tickets()
	if kc.Hub != nil {
		kc.Hub.BroadcastKitchenRefresh(tickets)
	}
	trigger(kc.POSRefresh)

	utils.RespondJSON(c, http.StatusOK, "Item status updated", gin.H{
		"status":  status,
		"tickets": tickets,
	})
}
