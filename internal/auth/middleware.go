package auth

import (
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/quizzical/quizzical-api/pkg/http/errors"
)

// RequireDigest rejects requests whose Authorization header does not carry a
// valid digest response. Every rejection re-issues the challenge so clients
// can retry with a fresh nonce.
func RequireDigest(authorizer *Authorizer, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				challenge(w, authorizer)
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
				return
			}

			if err := authorizer.Verify(header, r.Method, r.URL.RequestURI()); err != nil {
				logger.Warn().Err(err).Str("method", r.Method).Str("uri", r.URL.RequestURI()).Msg("digest verification failed")
				challenge(w, authorizer)
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func challenge(w http.ResponseWriter, authorizer *Authorizer) {
	w.Header().Set("WWW-Authenticate", authorizer.WWWAuthenticate())
}
