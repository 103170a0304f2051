package httpx

import (
	"net/http"

	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
)

// statusForCode maps AppError codes onto HTTP status codes.
func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeValidation, apperrors.ErrCodeForeignKey:
		return http.StatusBadRequest
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// RenderError writes the JSON error response for an application error.
// Internal details are not leaked for 5xx responses.
func RenderError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)

	if status >= http.StatusInternalServerError {
		WriteError(w, ErrorParams{
			Code:    status,
			ErrCode: string(apperrors.ErrCodeInternal),
			Err:     errInternal,
		})
		return
	}

	WriteError(w, ErrorParams{Code: status, ErrCode: string(code), Err: err})
}

type internalError struct{}

func (internalError) Error() string { return "internal server error" }

var errInternal error = internalError{}
