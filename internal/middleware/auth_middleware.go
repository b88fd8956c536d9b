package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/travelgo/tour-booking-backend/internal/auth"
	"github.com/travelgo/tour-booking-backend/internal/models"
	"github.com/travelgo/tour-booking-backend/pkg/jwt"
)

// PrincipalContextKey is the key used to store the principal in Gin context
const PrincipalContextKey = "principal"

// AuthMiddleware creates a middleware that validates JWT bearer tokens and
// stores the resulting principal in the Gin context. Handlers pass the
// principal on to the booking core explicitly.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
				"code":    "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Token cannot be empty",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateAccessToken(tokenString)
		if err != nil {
			if jwtService.IsTokenExpired(tokenString) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "token_expired",
					"message": "Access token has expired. Please refresh your token.",
					"code":    "TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "invalid_token",
					"message": "Invalid access token",
					"code":    "INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		c.Set(PrincipalContextKey, auth.Principal{
			Username: claims.Username,
			Roles:    claims.Roles,
		})

		c.Next()
	}
}

// RequireRole creates a middleware that checks the principal's roles before
// the handler runs. The services re-check through the guard; this gate only
// produces earlier, cheaper denials.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipal(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Principal not found. Auth middleware may not be applied.",
				"code":    "MISSING_PRINCIPAL",
			})
			c.Abort()
			return
		}

		hasRole := false
		for _, required := range roles {
			if principal.HasRole(required) {
				hasRole = true
				break
			}
		}

		if !hasRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "You don't have permission to access this resource",
				"code":    "INSUFFICIENT_PERMISSIONS",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates a route to administrators
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// GetPrincipal retrieves the authenticated principal from the Gin context.
// The second return is false for anonymous requests.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}
