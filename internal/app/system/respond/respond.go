// Package respond writes the API's three wire shapes:
//
//   - validation failures: 400 {"errors":[{"msg":"...","param":"..."}]}
//   - domain/auth/not-found messages: {"msg":"..."} with the given status
//   - unhandled failures: 500 plain-text "Server Error"
package respond

import (
	"encoding/json"
	"net/http"
)

// FieldError is one entry of a validation error list.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// JSON writes v as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Msg writes a {"msg": ...} body with the given status.
func Msg(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"msg": msg})
}

// Fields writes a 400 with the field-level error list.
func Fields(w http.ResponseWriter, errs []FieldError) {
	JSON(w, http.StatusBadRequest, map[string][]FieldError{"errors": errs})
}

// ServerError writes the generic 500 response. The cause must already
// have been logged by the caller.
func ServerError(w http.ResponseWriter) {
	http.Error(w, "Server Error", http.StatusInternalServerError)
}
