package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/talenthub/backend/internal/middleware"
	"github.com/talenthub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// generateToken signs a bearer token carrying the account id and kind,
// so middleware resolves the role without trial lookups.
func generateToken(accountID string, kind models.AccountKind, email, secret string) (string, error) {
	claims := &models.AccountClaims{
		AccountID: accountID,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// accountIDFromContext resolves the authenticated account's ObjectID from
// the claims stored by the auth middleware.
func accountIDFromContext(c echo.Context) (primitive.ObjectID, *models.AccountClaims, error) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return primitive.NilObjectID, nil, echo.NewHTTPError(http.StatusUnauthorized, "Account not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(claims.AccountID)
	if err != nil {
		return primitive.NilObjectID, nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid account ID in token")
	}
	return id, claims, nil
}
