package helper

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// HeaderUserID carries the authenticated user id between middleware and handlers.
const HeaderUserID = "X-User-ID"

var ErrMissingUserID = errors.New("user id is required")

func ToJSON(data interface{}) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal data: %v", err)
		return nil
	}
	return json.RawMessage(bytes)
}

// ParseID parses a positive numeric identifier.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}

// UserIDFromHeader reads the authenticated user set by the auth middleware.
func UserIDFromHeader(r *http.Request) (uint, error) {
	xUserID := r.Header.Get(HeaderUserID)
	if xUserID == "" {
		return 0, ErrMissingUserID
	}
	return ParseID(xUserID)
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, code string) {
	WriteJSON(w, status, map[string]string{"error": code})
}
