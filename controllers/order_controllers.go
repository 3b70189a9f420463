package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/services"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// Place checks out the caller's cart. A retry carrying the same
// Idempotency-Key header (or requestId field) returns the order already placed.
func (oc *OrderController) Place(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var in services.PlaceOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
		in.RequestID = key
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), userID, in)
	if err != nil {
		respondServiceError(c, "creating order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List returns the caller's orders, newest first.
func (oc *OrderController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orders, err := oc.Orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "fetching orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
