package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/models"
)

const (
	identityKey  = "identity"
	RequestIDKey = "request_id"
)

func SetIdentity(c *gin.Context, id models.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the identity stored by the auth middleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok && id.UserID != 0
}

func CurrentRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
