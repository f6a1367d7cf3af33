package middleware

import (
	"net/http"
	"strings"
)

// Cross-Origin-Resource-Policy values accepted by Security.
const (
	ResourcePolicySameOrigin  = "same-origin"
	ResourcePolicyCrossOrigin = "cross-origin"
)

// Security returns middleware that sets OWASP REST security headers on all responses.
//
// resourcePolicy is sent as Cross-Origin-Resource-Policy. The greeting API is
// read by a page on another origin and uses ResourcePolicyCrossOrigin; the page
// server keeps ResourcePolicySameOrigin. Paths in skipPaths get no headers.
func Security(resourcePolicy string, skipPaths ...string) func(http.Handler) http.Handler {
	if resourcePolicy == "" {
		resourcePolicy = ResourcePolicySameOrigin
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", "frame-ancestors 'none'")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", resourcePolicy)
			h.Set(
				"Permissions-Policy",
				"accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
			)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
