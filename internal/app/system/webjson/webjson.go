// internal/app/system/webjson/webjson.go

// Package webjson holds the request/response plumbing every API feature
// shares: JSON body decoding with struct validation, response encoding, and
// the mapping from application error codes to HTTP statuses.
package webjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tandemhq/tandem/internal/apperror"
)

var validate = validator.New()

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Decode unmarshals the request body into v and validates its struct tags.
// Either failure comes back as a VALIDATION error ready for WriteError.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperror.Validation("request body is not valid JSON")
	}
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return apperror.Validation("field " + f.Field() + " failed validation rule " + f.Tag())
		}
		return apperror.Validation("request body failed validation")
	}
	return nil
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps err's application code to an HTTP status and encodes the
// error body. Unclassified errors render as 500 without leaking internals.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	code := apperror.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		Write(w, status, errorBody{Error: "internal error", Code: string(code)})
		return
	}

	var appErr *apperror.Error
	msg := http.StatusText(status)
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	Write(w, status, errorBody{Error: msg, Code: string(code)})
}

func statusFor(code apperror.Code) int {
	switch code {
	case apperror.CodeValidation:
		return http.StatusBadRequest
	case apperror.CodeAuthentication:
		return http.StatusUnauthorized
	case apperror.CodeAuthorization:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConflict:
		return http.StatusConflict
	case apperror.CodeNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
