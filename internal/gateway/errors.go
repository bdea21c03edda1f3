package gateway

import (
	"errors"
	"net/http"
)

// RequestError marks a caller mistake answered with 400.
// Legacy errors render as {"error": "msg"} instead of the nested envelope.
type RequestError struct {
	Message string
	Legacy  bool
}

func (e *RequestError) Error() string {
	return e.Message
}

func badRequest(msg string) error {
	return &RequestError{Message: msg}
}

func legacyBadRequest(msg string) error {
	return &RequestError{Message: msg, Legacy: true}
}

// ErrorBody is the nested error payload
type ErrorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// errorResponse converts an operation failure into a response envelope
func errorResponse(err error) *Response {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Legacy {
			return &Response{
				Status: http.StatusBadRequest,
				Body:   map[string]interface{}{"error": reqErr.Message},
			}
		}
		return &Response{
			Status: http.StatusBadRequest,
			Body: map[string]interface{}{
				"error": ErrorBody{Message: reqErr.Message, Status: http.StatusBadRequest},
			},
		}
	}

	return &Response{
		Status: http.StatusInternalServerError,
		Body: map[string]interface{}{
			"error": ErrorBody{Message: err.Error(), Status: http.StatusInternalServerError},
		},
	}
}

func notFoundResponse() *Response {
	return &Response{
		Status: http.StatusNotFound,
		Body:   map[string]interface{}{"error": "Route not found"},
	}
}
