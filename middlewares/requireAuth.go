package middlewares

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const identityKey = "user"

// RequireAuth rejects requests without a valid token: 401 when none is
// presented, 403 when it does not verify.
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := a.Authenticate(ctx.Request)
		if err != nil {
			if errors.Is(err, ErrMissingToken) {
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			log.Printf("Token rejected: %v", err)
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// CurrentIdentity returns the identity RequireAuth stored on the context.
func CurrentIdentity(ctx *gin.Context) (Identity, bool) {
	value, exists := ctx.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}
