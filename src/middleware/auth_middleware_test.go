package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finote-server/src/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func identityEcho(t *testing.T, gotUID, gotEmail *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUID, _ = r.Context().Value("uid").(string)
		*gotEmail, _ = r.Context().Value("email").(string)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	handler := AuthMiddleware(auth.JWTVerifier{Secret: testSecret}, false)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without a credential")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	handler := AuthMiddleware(auth.JWTVerifier{Secret: testSecret}, false)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run with an invalid credential")
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	var gotUID, gotEmail string
	handler := AuthMiddleware(auth.JWTVerifier{Secret: testSecret}, false)(
		identityEcho(t, &gotUID, &gotEmail))

	token := signToken(t, jwt.MapClaims{"sub": "user-42", "email": "a@b.test"})
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", gotUID)
	assert.Equal(t, "a@b.test", gotEmail)
}

func TestAuthMiddlewareDevFallback(t *testing.T) {
	var gotUID, gotEmail string
	handler := AuthMiddleware(auth.JWTVerifier{Secret: testSecret}, true)(
		identityEcho(t, &gotUID, &gotEmail))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.DevIdentity.UID, gotUID)
	assert.Equal(t, auth.DevIdentity.Email, gotEmail)
}

func TestAuthMiddlewareDevFallbackStillRequiresHeader(t *testing.T) {
	handler := AuthMiddleware(auth.JWTVerifier{Secret: testSecret}, true)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without a credential")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
