package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware allows any origin to call the API and exposes the request
// id header to browsers.
type CORSMiddleware struct {
	methods string
	headers string
}

func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{
		methods: strings.Join([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}, ", "),
		headers: strings.Join([]string{"Content-Type", RequestIDHeader}, ", "),
	}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", m.methods)
		w.Header().Set("Access-Control-Allow-Headers", m.headers)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		// Preflight stops here
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
