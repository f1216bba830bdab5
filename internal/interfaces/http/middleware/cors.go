package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

const requestHeadersHeader = "Access-Control-Request-Headers"

// CORS permits cross-origin GET requests from allowedOrigins ("*" permits
// any origin) and answers preflights itself.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return func(next http.Handler) http.Handler {
		h := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// rs/cors only matches lowercase requested header names
			if values := r.Header.Values(requestHeadersHeader); len(values) > 0 {
				lowered := make([]string, len(values))
				for i, v := range values {
					lowered[i] = strings.ToLower(v)
				}
				r.Header[requestHeadersHeader] = lowered
			}
			h.ServeHTTP(w, r)
		})
	}
}
