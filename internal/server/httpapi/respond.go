package httpapi

import (
	"encoding/json"
	"net/http"
)

// fieldError is one entry of a 422 detail array.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes the {"detail": ...} error body the client expects.
func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, map[string]any{"detail": detail})
}

func writeValidation(w http.ResponseWriter, errs ...fieldError) {
	writeDetail(w, http.StatusUnprocessableEntity, errs)
}

func missingField(loc, name string) fieldError {
	return fieldError{Loc: []string{loc, name}, Msg: "Field required", Type: "missing"}
}

func invalidField(loc, name, msg string) fieldError {
	return fieldError{Loc: []string{loc, name}, Msg: msg, Type: "value_error"}
}
