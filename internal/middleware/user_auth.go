package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAuth accepts any authenticated caller.
func UserAuth(secret string) gin.HandlerFunc {
	return AuthGuard(secret)
}

// UserID returns the caller identity stored by AuthGuard.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok && !id.IsZero()
}

func Role(c *gin.Context) string {
	return c.GetString(ContextRole)
}
