package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance shared by all handlers.
var validate = validator.New()

// maxRequestBodyBytes bounds request bodies to guard against oversized payloads.
const maxRequestBodyBytes = 1 << 20 // 1 MB

// DecodeJSON decodes the request body into dst, enforcing a size limit and
// rejecting malformed JSON with a descriptive error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return errors.New("request body must not be empty")
		case errors.As(err, &syntaxErr):
			return fmt.Errorf("request body contains malformed JSON (at position %d)", syntaxErr.Offset)
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return fmt.Errorf("request body contains an invalid value for field %q", typeErr.Field)
			}
			return fmt.Errorf("request body contains an invalid value (at position %d)", typeErr.Offset)
		default:
			return fmt.Errorf("failed to decode request body: %w", err)
		}
	}

	return nil
}

// ValidateRequest runs struct validation on a decoded request and returns a
// client-presentable error describing the first failing fields.
func ValidateRequest(dst interface{}) error {
	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed on: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
