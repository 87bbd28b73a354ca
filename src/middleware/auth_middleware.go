package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"finote-server/src/auth"
	"finote-server/src/util"
)

// AuthMiddleware resolves the bearer credential to an identity and stores it
// in the request context. When verification fails and devFallback is set, the
// fixed development identity is substituted instead of rejecting the request;
// that path is logged on every hit and must stay off in production.
func AuthMiddleware(verifier auth.TokenVerifier, devFallback bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				util.RespondError(w, http.StatusUnauthorized, "Authorization header missing")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if !devFallback {
					util.RespondError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				log.Printf("WARN: Token verification failed, substituting development identity: %v", err)
				identity = auth.DevIdentity
			}

			ctx := context.WithValue(r.Context(), "uid", identity.UID)
			ctx = context.WithValue(ctx, "email", identity.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
