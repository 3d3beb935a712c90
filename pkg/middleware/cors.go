package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the configured origins to call the API from a browser. A "*"
// entry allows any origin; credentials are then not allowed.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowCredentials := true
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}
