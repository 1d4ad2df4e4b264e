package middleware

import (
	"net/http"
	"strings"

	"krib/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthContractorMiddleware verifies the bearer token issued to a
// contractor and stores the contractor ID on the request context. Token
// minting lives with the identity provider; this only verifies.
func JWTAuthContractorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		contractorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("contractorID", contractorID)
		c.Next()
	}
}
