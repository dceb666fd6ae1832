package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"drivent/pkg/auth"
	apperrors "drivent/pkg/errors"
	"drivent/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type SessionLookup interface {
	UserIDForToken(ctx context.Context, token string) (string, error)
}

// Authenticate requires a bearer JWT that also matches a stored session for the same user.
func Authenticate(verifier TokenVerifier, sessions SessionLookup, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := logger.RequestIDFromContext(r.Context())

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, apperrors.Unauthorized("Missing bearer token"))
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				log.Debug("Rejected bearer token", "request_id", requestID, "error", err)
				writeError(w, apperrors.Unauthorized("Invalid token"))
				return
			}

			sessionUserID, err := sessions.UserIDForToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrSessionNotFound) {
					writeError(w, apperrors.Unauthorized("No session for token"))
					return
				}
				log.Error("Session lookup failed", "request_id", requestID, "error", err)
				writeError(w, apperrors.Internal("Internal server error", err))
				return
			}
			if sessionUserID != userID {
				log.Warn("Token user does not match session owner", "request_id", requestID)
				writeError(w, apperrors.Unauthorized("No session for token"))
				return
			}

			ctx := auth.ContextWithUserID(r.Context(), userID)
			ctx = logger.ContextWithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
