package middleware

import (
	"mime"
	"net/http"

	apperrors "drivent/pkg/errors"
	httputil "drivent/pkg/http"
	"drivent/pkg/logger"
)

const jsonMediaType = "application/json"

// ContentTypeValidation rejects bodies on POST, PUT and PATCH that are not JSON.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if carriesBody(r.Method) {
				header := r.Header.Get("Content-Type")
				if mediaType, _, err := mime.ParseMediaType(header); err != nil || mediaType != jsonMediaType {
					log.Warn("Rejected request body media type",
						"request_id", logger.RequestIDFromContext(r.Context()),
						"content_type", header,
						"method", r.Method,
						"path", r.URL.Path,
					)
					writeError(w, apperrors.UnsupportedMediaType("Content-Type must be application/json"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MaxRequestSize caps the request body; decoding past the limit fails with *http.MaxBytesError.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func writeError(w http.ResponseWriter, err *apperrors.AppError) {
	_ = httputil.WriteError(w, err)
}
