// =============================================================================
// Purchase Order Generator - Read API Responses
// =============================================================================
//
// JSON response helpers and query parameter validation.
//
// RESPONSE FORMATS:
//   Success:    the handler's payload
//   Error:      {"error": "<message>"}
//   Validation: {"error": "Validation failed", "fields": {"<param>": "<message>"}}
//
// =============================================================================

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report query parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	return v
}

// writeJSON writes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a {"error": message} response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationError writes a 422 with one message per offending field.
func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "Validation failed",
		"fields": fields,
	})
}

// queryInt reads an integer query parameter, falling back to def when absent.
// Parse failures are recorded in fields under the parameter name.
func queryInt(q url.Values, name string, def int, fields map[string]string) int {
	raw := q.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = "Must be an integer"
		return def
	}
	return v
}

// validationFields converts validator errors to parameter -> message.
func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return fields
	}
	for _, e := range ve {
		switch e.Tag() {
		case "gte":
			fields[e.Field()] = fmt.Sprintf("Must be greater than or equal to %s", e.Param())
		case "lte":
			fields[e.Field()] = fmt.Sprintf("Must be less than or equal to %s", e.Param())
		default:
			fields[e.Field()] = fmt.Sprintf("Validation failed on '%s'", e.Tag())
		}
	}
	return fields
}
