package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var errNoShop = errors.New("logged in user has no shop")

type TableController struct {
	API          *client.Client
	PublicOrigin string
	POSRefresh   Refresher
}

// GetAllTables lists the shop's permanent tables; temporary QR tables are hidden.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.API.Tables(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", services.PermanentTables(tables))
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var form models.TableForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	table, err := tc.API.CreateTable(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	trigger(tc.POSRefresh)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.Name, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	if err := tc.API.DeleteTable(c.Request.Context(), c.Param("table_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	trigger(tc.POSRefresh)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}

// TableQR returns the customer menu link to print on a table's QR code.
func (tc *TableController) TableQR(c *gin.Context) {
	tc.respondQR(c, c.Param("table_id"))
}

// ShopQR returns the shop-wide menu link.
func (tc *TableController) ShopQR(c *gin.Context) {
	tc.respondQR(c, "")
}

func (tc *TableController) respondQR(c *gin.Context, tableID string) {
	profile, err := tc.API.Profile(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	shopID := profile.ShopID()
	if shopID == "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, errNoShop)
		return
	}
	url, err := services.CustomerMenuURL(tc.PublicOrigin, shopID, tableID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "QR code link", gin.H{
		"url":     url,
		"shopId":  shopID,
		"tableId": tableID,
	})
}
