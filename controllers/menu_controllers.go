package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/client"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const maxImageSize = 5 << 20

type MenuController struct {
	API        *client.Client
	POSRefresh Refresher
}

// menuItemInput accepts the dish form as JSON or multipart. The image, if
// any, comes as the "image" file field.
type menuItemInput struct {
	Name        string  `form:"name" json:"name"`
	Price       float64 `form:"price" json:"price"`
	Category    string  `form:"category" json:"category"`
	Description string  `form:"description" json:"description"`
	IsAvailable *bool   `form:"isAvailable" json:"isAvailable"`
}

func (mc *MenuController) bindForm(c *gin.Context) (models.MenuItemForm, bool) {
	var in menuItemInput
	if err := c.ShouldBind(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return models.MenuItemForm{}, false
	}
	form := models.MenuItemForm{
		Name:        in.Name,
		Price:       in.Price,
		Category:    in.Category,
		Description: in.Description,
		IsAvailable: in.IsAvailable == nil || *in.IsAvailable,
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if fh, err := c.FormFile("image"); err == nil {
			f, err := fh.Open()
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, err)
				return models.MenuItemForm{}, false
			}
			defer f.Close()
			data, err := io.ReadAll(io.LimitReader(f, maxImageSize))
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, err)
				return models.MenuItemForm{}, false
			}
			form.Image = data
			form.ImageName = fh.Filename
		}
	}
	return form, true
}

// GetMenu lists the whole menu, optionally filtered by ?q= on name or category.
func (mc *MenuController) GetMenu(c *gin.Context) {
	items, err := mc.API.Menu(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", services.SearchMenu(items, c.Query("q")))
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	form, ok := mc.bindForm(c)
	if !ok {
		return
	}
	item, err := mc.API.CreateMenuItem(c.Request.Context(), form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	trigger(mc.POSRefresh)
	utils.InfoLogger.Printf("Menu item created: %s", item.Name)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	form, ok := mc.bindForm(c)
	if !ok {
		return
	}
	item, err := mc.API.UpdateMenuItem(c.Request.Context(), c.Param("menu_id"), form)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	trigger(mc.POSRefresh)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

func (mc *MenuController) SetAvailability(c *gin.Context) {
	var body struct {
		IsAvailable *bool `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	menuID := c.Param("menu_id")
	if err := mc.API.SetMenuItemAvailability(c.Request.Context(), menuID, *body.IsAvailable); err != nil {
		respondServiceError(c, err)
		return
	}
	trigger(mc.POSRefresh)
	utils.RespondJSON(c, http.StatusOK, "Availability updated", gin.H{"_id": menuID, "isAvailable": *body.IsAvailable})
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	if err := mc.API.DeleteMenuItem(c.Request.Context(), c.Param("menu_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	trigger(mc.POSRefresh)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}
