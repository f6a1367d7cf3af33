// Package greeting serves the greeting as an HTTP Cloud Function.
package greeting

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/go-chi/cors"
)

const defaultAllowedOrigin = "http://localhost:8080"

func init() {
	functions.HTTP("Greeting", newHandler(allowedOrigin()).ServeHTTP)
}

// Response is the greeting payload.
type Response struct {
	Message string `json:"message"`
}

func allowedOrigin() string {
	if o := os.Getenv("ALLOWED_ORIGIN"); o != "" {
		return o
	}
	return defaultAllowedOrigin
}

// newHandler wraps the greeting with CORS for a single origin.
func newHandler(origin string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
		MaxAge:         300,
	})(http.HandlerFunc(greetingHandler))
}

func greetingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Message: "hello world!"})
}
