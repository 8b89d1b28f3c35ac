package response

import "net/http"

// Generic response envelope
type APIResponseCode int

const (
	APIResponseCodeOK             APIResponseCode = 0
	APIResponseCodeBadRequest     APIResponseCode = 40000
	APIResponseCodeUnauthorized   APIResponseCode = 40100
	APIResponseCodeForbidden      APIResponseCode = 40300
	APIResponseCodeNotFound       APIResponseCode = 40400
	APIResponseCodeConflict       APIResponseCode = 40900
	APIResponseCodeEntityTooLarge APIResponseCode = 41300
	APIResponseCodeError          APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:             "ok",
	APIResponseCodeBadRequest:     "bad request",
	APIResponseCodeUnauthorized:   "unauthorized",
	APIResponseCodeForbidden:      "forbidden",
	APIResponseCodeNotFound:       "not found",
	APIResponseCodeConflict:       "conflict",
	APIResponseCodeEntityTooLarge: "request entity too large",
	APIResponseCodeError:          "internal server error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// CodeFromStatus maps an HTTP status onto the envelope code space.
func CodeFromStatus(status int) APIResponseCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return APIResponseCodeBadRequest
	case http.StatusUnauthorized:
		return APIResponseCodeUnauthorized
	case http.StatusForbidden:
		return APIResponseCodeForbidden
	case http.StatusNotFound:
		return APIResponseCodeNotFound
	case http.StatusConflict:
		return APIResponseCodeConflict
	case http.StatusRequestEntityTooLarge:
		return APIResponseCodeEntityTooLarge
	}
	if status >= 400 && status < 500 {
		return APIResponseCodeBadRequest
	}
	return APIResponseCodeError
}
