package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, svc *JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentBarberID(c))
	})
	return r
}

func TestNewJWTServiceRequiresKey(t *testing.T) {
	_, err := NewJWTService("", "")
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestMiddlewareSetsBarberID(t *testing.T) {
	svc, err := NewJWTService("segredo", "barbearia")
	require.NoError(t, err)
	token, err := svc.GenerateToken("barber-1", "Zé", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newRouter(t, svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "barber-1", w.Body.String())
}

func TestMiddlewareRejects(t *testing.T) {
	svc, err := NewJWTService("segredo", "barbearia")
	require.NoError(t, err)
	other, err := NewJWTService("outro-segredo", "barbearia")
	require.NoError(t, err)

	expired, err := svc.GenerateToken("barber-1", "", -time.Minute)
	require.NoError(t, err)
	forged, err := other.GenerateToken("barber-1", "", time.Hour)
	require.NoError(t, err)

	cases := map[string]string{
		"sem cabeçalho":   "",
		"sem bearer":      "Token abc",
		"expirado":        "Bearer " + expired,
		"assinatura ruim": "Bearer " + forged,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			newRouter(t, svc).ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestValidateTokenFallsBackToSubject(t *testing.T) {
	svc, err := NewJWTService("segredo", "")
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{Subject: "barber-9", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	got, err := svc.ValidateToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "barber-9", got.BarberID)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	issuerA, err := NewJWTService("segredo", "a")
	require.NoError(t, err)
	issuerB, err := NewJWTService("segredo", "b")
	require.NoError(t, err)

	token, err := issuerA.GenerateToken("barber-1", "", time.Hour)
	require.NoError(t, err)

	_, err = issuerB.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
