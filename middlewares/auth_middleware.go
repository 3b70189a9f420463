package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
)

// Authenticate resolves the "Authorization: Bearer <token>" header into an
// identity stored on the context.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Access denied", nil)
			return
		}

		identity, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			var se *services.StorageError
			if errors.As(err, &se) {
				utils.ErrorLogger.WithError(err).Error("authenticate")
				utils.RespondError(c, http.StatusInternalServerError, "Server error", nil)
				return
			}
			utils.RespondError(c, http.StatusUnauthorized, "Invalid token", nil)
			return
		}

		utils.SetIdentity(c, identity)
		c.Next()
	}
}
