package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"freeflix/models"
)

const errContentNotFound = "content not found"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Helper for JSON error responses
func jsonError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

func notFound(w http.ResponseWriter) {
	jsonError(w, errContentNotFound, http.StatusNotFound)
}

// contentRoute extracts {kind} and {id} route variables. Malformed values
// report false and are treated as not found by callers.
func contentRoute(r *http.Request) (models.MediaKind, int64, bool) {
	vars := mux.Vars(r)
	kind, ok := models.ParseMediaKind(vars["kind"])
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(vars["id"]), 10, 64)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return kind, id, true
}
