package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"datamesh/internal/domain"
)

// APIResponse is the envelope returned by mutating endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// pageFromQuery parses optional limit/offset query parameters. Values outside
// limit [1,1000] or offset >= 0 are a validation error.
func pageFromQuery(r *http.Request) (domain.Page, error) {
	page := domain.Page{Limit: domain.DefaultPageLimit}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.ErrValidation("limit must be an integer")
		}
		if limit < 1 || limit > domain.MaxPageLimit {
			return page, domain.ErrValidation("limit must be between 1 and %d", domain.MaxPageLimit)
		}
		page.Limit = limit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return page, domain.ErrValidation("offset must be an integer")
		}
		if offset < 0 {
			return page, domain.ErrValidation("offset must not be negative")
		}
		page.Offset = offset
	}

	return page, nil
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %s", err)
	}
	return nil
}
