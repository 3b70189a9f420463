package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

type cartLineRequest struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   *int `json:"quantity" binding:"required"`
}

// Get returns the caller's cart, creating it on first access.
func (cc *CartController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cart, err := cc.Cart.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "fetching cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := cc.Cart.AddItem(c.Request.Context(), userID, req.MenuItemID, *req.Quantity)
	if err != nil {
		respondServiceError(c, "adding to cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := cc.Cart.UpdateQuantity(c.Request.Context(), userID, req.MenuItemID, *req.Quantity)
	if err != nil {
		respondServiceError(c, "updating cart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		MenuItemID uint `json:"menuItemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cart, err := cc.Cart.RemoveItem(c.Request.Context(), userID, req.MenuItemID)
	if err != nil {
		respondServiceError(c, "removing from cart", err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Item removed from cart", gin.H{"cart": cart})
}
