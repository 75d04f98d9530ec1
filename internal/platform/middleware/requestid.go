package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Bahjat/design-playbook/internal/platform/requestid"
)

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, reusing a client-supplied
// X-Request-ID when present and generating a UUID v4 otherwise. The ID is
// stored in the request context and returned in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestid.NewContext(r.Context(), id)))
	})
}
