package requestid

import (
	"net/http"

	"github.com/google/uuid"
)

// Header is the header read from the request and echoed on the response.
const Header = "X-Request-ID"

const maxIDLength = 128

// Middleware tags every request with an id. A valid incoming X-Request-ID is
// kept; anything else is replaced with a fresh UUID.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !Valid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// Valid reports whether id may be propagated as is: 1 to 128 characters of
// ASCII letters, digits, '-' or '_'.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
