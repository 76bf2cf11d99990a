package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type ReportController struct {
	API      *client.Client
	Currency string
}

func (rc *ReportController) Dashboard(c *gin.Context) {
	dashboard, err := rc.API.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard", gin.H{
		"dashboard": dashboard,
		"display": gin.H{
			"totalRevenue":      utils.FormatCurrency(rc.Currency, dashboard.KPIs.TotalRevenue),
			"averageOrderValue": utils.FormatCurrency(rc.Currency, dashboard.KPIs.AverageOrderValue),
		},
	})
}

// SalesTrendChart renders the dashboard's sales trend as a PNG.
func (rc *ReportController) SalesTrendChart(c *gin.Context) {
	dashboard, err := rc.API.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := services.RenderSalesTrend(dashboard.SalesTrend, rc.Currency, &buf); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
