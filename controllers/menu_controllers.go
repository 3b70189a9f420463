package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

// ListAvailable is the public menu.
func (mc *MenuController) ListAvailable(c *gin.Context) {
	items, err := mc.Catalog.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, "fetching menu", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ListAll includes unavailable items.
func (mc *MenuController) ListAll(c *gin.Context) {
	items, err := mc.Catalog.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, "fetching all menu items", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (mc *MenuController) Create(c *gin.Context) {
	var in services.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := mc.Catalog.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, "creating menu item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (mc *MenuController) Update(c *gin.Context) {
	var in services.MenuItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := mc.Catalog.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondServiceError(c, "updating menu item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (mc *MenuController) Delete(c *gin.Context) {
	item, err := mc.Catalog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "deleting menu item", err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Menu item deleted successfully", gin.H{
		"deletedItem": item,
	})
}
