package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxClaimsKey is where the middleware stores the verified claims on
// the request context.
const CtxClaimsKey = "auth_claims"

// bearerToken extracts the token from the Authorization header, or ""
// when the header is absent or not a bearer scheme.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// AuthMiddleware verifies the bearer token and compares its embedded
// version with the user's current one, so logout invalidates every
// token issued before it. A nil repo skips the version check.
func AuthMiddleware(tokens TokenService, repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		if repo != nil {
			version, err := repo.GetTokenVersion(c.Request.Context(), claims.UserID)
			if err != nil || version != claims.TokenVersion {
				// stale or revoked; same message as a bad signature so
				// callers cannot distinguish the two
				abortUnauthorized(c, "invalid token")
				return
			}
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// MustGetClaims returns the claims stored by AuthMiddleware, or nil on
// an unprotected route.
func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
