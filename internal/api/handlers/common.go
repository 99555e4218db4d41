package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/githbnaboulsi/shipcore-api/internal/version"
)

// DefaultAccount is used when a request does not name an account.
const DefaultAccount = "default"

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Failed to write response: %v", err)
	}
}

// MethodNotAllowedHandler answers 405 with the offending method.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"message": fmt.Sprintf("Method %s not allowed", r.Method),
		})
	}
}

// NotFoundHandler answers 404 in JSON.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": fmt.Sprintf("No route for %s", r.URL.Path),
		})
	}
}

// HealthHandler reports liveness and the build version.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version.String(),
		})
	}
}
