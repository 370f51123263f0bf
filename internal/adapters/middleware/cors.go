package middleware

import "net/http"

// CORSMiddleware sets Cross-Origin Resource Sharing headers for browser
// consumers of the local gateway and short-circuits preflight requests.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := len(allowedOrigins) > 0 && allowedOrigins[0] == "*"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if allow := resolveOrigin(origin, allowedOrigins, wildcard); allow != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allow)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolveOrigin returns the Allow-Origin value to emit, or "" when the
// request origin is not permitted.
func resolveOrigin(origin string, allowed []string, wildcard bool) string {
	if origin == "" {
		if wildcard {
			return "*"
		}
		return ""
	}
	for _, candidate := range allowed {
		if candidate == "*" || candidate == origin {
			return origin
		}
	}
	return ""
}
