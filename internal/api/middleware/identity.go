package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CallerAccountHeader carries the id of the account acting on the request.
	// An upstream gateway is expected to authenticate the caller and set it.
	CallerAccountHeader = "X-Account-ID"

	// CallerAccountKey is the key used to store the caller account id in the context
	CallerAccountKey = "caller_account_id"
)

// CallerIdentity middleware requires a valid account id on the request and
// stores it for handlers. Transfers always debit the calling account, so a
// request without an identity cannot be served.
func CallerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(CallerAccountHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing " + CallerAccountHeader + " header",
				},
			})
			return
		}

		callerID, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid " + CallerAccountHeader + " header",
				},
			})
			return
		}

		c.Set(CallerAccountKey, callerID)
		c.Next()
	}
}

// GetCallerAccountID retrieves the caller account id from the gin context
func GetCallerAccountID(c *gin.Context) (uuid.UUID, bool) {
	if id, exists := c.Get(CallerAccountKey); exists {
		if callerID, ok := id.(uuid.UUID); ok {
			return callerID, true
		}
	}
	return uuid.Nil, false
}
