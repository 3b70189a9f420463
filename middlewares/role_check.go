package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

// RequireRole must run after Authenticate.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := utils.CurrentIdentity(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Access denied", nil)
			return
		}
		if err := services.RequireRole(identity, role); err != nil {
			utils.RespondError(c, http.StatusForbidden, fmt.Sprintf("Forbidden: Requires %s privileges", role), err)
			return
		}
		c.Next()
	}
}
