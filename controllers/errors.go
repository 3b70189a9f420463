package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

var serviceErrors = []errorMapping{
	{services.ErrInvalidID, http.StatusBadRequest, "Invalid menu item ID format"},
	{services.ErrNotFound, http.StatusNotFound, "Menu item not found"},
	{services.ErrUnauthenticated, http.StatusUnauthorized, "Invalid token"},
	{services.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{services.ErrDuplicateEmail, http.StatusBadRequest, "Email already registered"},
	{services.ErrDuplicateUsername, http.StatusBadRequest, "Username already taken"},
	{services.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{services.ErrEmptyCart, http.StatusBadRequest, "Cart is empty"},
	{services.ErrInvalidQuantity, http.StatusBadRequest, "Quantity must be at least 1"},
	{services.ErrCartNotFound, http.StatusNotFound, "Cart not found"},
	{services.ErrItemNotInCart, http.StatusNotFound, "Item not found in cart"},
}

// respondServiceError maps a service error onto its HTTP response. action
// names what failed, for the opaque 500 message and the log line.
func respondServiceError(c *gin.Context, action string, err error) {
	if errors.Is(err, services.ErrValidation) {
		utils.RespondError(c, http.StatusBadRequest, "Validation Error", err)
		return
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			utils.RespondError(c, m.status, m.message, nil)
			return
		}
	}

	utils.ErrorLogger.WithFields(logrus.Fields{
		"request_id": utils.CurrentRequestID(c),
		"path":       c.Request.URL.Path,
	}).WithError(err).Error(action)
	utils.RespondError(c, http.StatusInternalServerError, "Error "+action, nil)
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondError(c, http.StatusBadRequest, "Validation Error", err)
}

// currentUserID aborts with 401 when no identity is on the context.
func currentUserID(c *gin.Context) (uint, bool) {
	identity, ok := utils.CurrentIdentity(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Access denied", nil)
		return 0, false
	}
	return identity.UserID, true
}
