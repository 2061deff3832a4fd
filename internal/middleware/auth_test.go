package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/talenthub/backend/internal/middleware"
	"github.com/talenthub/backend/internal/models"
)

const testSecret = "supersecretjwtkey" // default used when JWT_SECRET is unset

func signToken(t *testing.T, kind models.AccountKind) string {
	t.Helper()
	claims := &models.AccountClaims{
		AccountID: "65f000000000000000000001",
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func invoke(authHeader string, kinds ...models.AccountKind) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.RequireAccount(kinds...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestRequireAccount_MissingHeader(t *testing.T) {
	_, err := invoke("", models.KindSeeker)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAccount_MalformedHeader(t *testing.T) {
	_, err := invoke("Token abc", models.KindSeeker)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAccount_InvalidToken(t *testing.T) {
	_, err := invoke("Bearer not-a-jwt", models.KindSeeker)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAccount_AdmitsMatchingKind(t *testing.T) {
	token := signToken(t, models.KindSeeker)
	rec, err := invoke("Bearer "+token, models.KindSeeker)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAccount_RejectsWrongKind(t *testing.T) {
	token := signToken(t, models.KindFinder)
	_, err := invoke("Bearer "+token, models.KindSeeker)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAccount_HybridAdmitsBothKinds(t *testing.T) {
	for _, kind := range []models.AccountKind{models.KindSeeker, models.KindFinder} {
		token := signToken(t, kind)
		rec, err := invoke("Bearer "+token, models.KindSeeker, models.KindFinder)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequireAccount_StoresClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, models.KindFinder))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *models.AccountClaims
	handler := middleware.RequireAccount(models.KindFinder)(func(c echo.Context) error {
		got = middleware.ClaimsFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, handler(c))
	assert.NotNil(t, got)
	assert.Equal(t, models.KindFinder, got.Kind)
	assert.Equal(t, "65f000000000000000000001", got.AccountID)
}
