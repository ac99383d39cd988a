package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// CodeNetworkError is the Code of errors raised before any response arrived.
const CodeNetworkError = "NETWORK_ERROR"

var (
	// ErrNoContent is returned by Result.Decode for 204 responses.
	ErrNoContent = errors.New("response has no content")

	// ErrLocalRouteUnavailable is returned for local proxy endpoints when no
	// LocalBaseURL is configured.
	ErrLocalRouteUnavailable = errors.New("local proxy route requested but no local base URL is configured")
)

// Error is the typed error for every failed request. It is never mutated
// after construction.
type Error struct {
	Message    string
	StatusCode int            // 0 when no response was received
	Code       string         // machine-readable code, when the server sent one
	Details    map[string]any // extra details, when the server sent them

	// Err is the underlying cause of a network error.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode > 0 && e.Code != "":
		return fmt.Sprintf("API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying cause so errors.Is(err, context.Canceled)
// works for aborted requests.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether the error happened before a response arrived.
func (e *Error) IsNetwork() bool {
	return e.Code == CodeNetworkError
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *Error with the given status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == status
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// networkError wraps a transport failure. Errors that already are *Error
// pass through unchanged.
func networkError(err error) error {
	if apiErr, ok := AsError(err); ok {
		return apiErr
	}
	return &Error{
		Message: err.Error(),
		Code:    CodeNetworkError,
		Err:     err,
	}
}

// errorBody is the backend error envelope. FastAPI style backends send
// "detail", which may be a string or a validation error list.
type errorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Code    json.RawMessage `json:"code"`
	Details map[string]any  `json:"details"`
}

// httpError builds the *Error for a non-2xx response.
func httpError(resp *http.Response, body []byte) *Error {
	apiErr := &Error{
		Message:    statusText(resp),
		StatusCode: resp.StatusCode,
	}

	var parsed errorBody
	if len(body) == 0 || json.Unmarshal(body, &parsed) != nil {
		return apiErr
	}

	if msg := parsed.message(); msg != "" {
		apiErr.Message = msg
	}
	apiErr.Code = rawString(parsed.Code)
	apiErr.Details = parsed.Details

	return apiErr
}

func (b errorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	if detail := rawString(b.Detail); detail != "" {
		return detail
	}
	return b.Error
}

// rawString returns a JSON string's value, or the compact JSON text of any
// other non-null value.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// statusText returns the reason phrase of the response, falling back to the
// standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
