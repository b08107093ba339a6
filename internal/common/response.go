package common

import (
	"errors"
)

// ApiResponse is the success envelope.
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ApiError is the error envelope.
type ApiError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	Errors     []any  `json:"errors"`
}

// FieldError is one failed input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewApiResponse builds a success envelope.
func NewApiResponse(statusCode int, data any, message string) ApiResponse {
	if message == "" {
		message = MsgSuccess
	}
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewApiError builds the error envelope for err. Unknown errors become a 500;
// their message is hidden when exposeInternal is false.
func NewApiError(err error, exposeInternal bool) ApiError {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		message := MsgInternalError
		if exposeInternal && err != nil {
			message = err.Error()
		}
		return ApiError{
			StatusCode: StatusInternalServerError,
			Message:    message,
			Errors:     []any{},
		}
	}

	out := ApiError{
		StatusCode: apiErr.StatusCode,
		Message:    apiErr.Message,
		Errors:     []any{},
	}
	if apiErr.StatusCode >= StatusInternalServerError && !exposeInternal && apiErr.Message == "" {
		out.Message = MsgInternalError
	}

	switch details := apiErr.Details.(type) {
	case []FieldError:
		for _, d := range details {
			out.Errors = append(out.Errors, d)
		}
	case FieldError:
		out.Errors = append(out.Errors, details)
	case string:
		out.Errors = append(out.Errors, details)
	case error:
		if exposeInternal {
			out.Errors = append(out.Errors, details.Error())
		}
	}
	return out
}
