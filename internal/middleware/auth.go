package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/models"
)

const claimsContextKey = "account"

// RequireAccount checks for a valid bearer token and admits the request
// only when the token's account kind is one of the given kinds. Claims
// are stored in the request context for handlers.
func RequireAccount(kinds ...models.AccountKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			// Get JWT Secret from environment or use default
			jwtSecret := os.Getenv("JWT_SECRET")
			if jwtSecret == "" {
				jwtSecret = "supersecretjwtkey" // Must match the secret used for signing
			}

			claims := &models.AccountClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			allowed := false
			for _, kind := range kinds {
				if claims.Kind == kind {
					allowed = true
					break
				}
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account kind not permitted for this route")
			}

			c.Set(claimsContextKey, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the account claims stored by RequireAccount,
// or nil when the route is unauthenticated.
func ClaimsFromContext(c echo.Context) *models.AccountClaims {
	claims, _ := c.Get(claimsContextKey).(*models.AccountClaims)
	return claims
}
