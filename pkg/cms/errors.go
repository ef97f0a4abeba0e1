package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-2xx response from the CMS API.
type APIError struct {
	StatusCode int    `json:"-"       yaml:"status_code"`
	Message    string `json:"message" yaml:"message"`
	Method     string `json:"-"       yaml:"method"`
	Endpoint   string `json:"-"       yaml:"endpoint"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := http.StatusText(e.StatusCode)
	if status == "" {
		status = "unknown status"
	}

	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Endpoint, e.StatusCode, status)
	}

	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Endpoint, e.StatusCode, status, e.Message)
}

// ParseAPIError builds an APIError from a CMS error body. Bodies that are not
// JSON are kept verbatim as the message.
func ParseAPIError(statusCode int, method, endpoint string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Method:     method,
		Endpoint:   endpoint,
	}

	if len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
	}

	err := json.Unmarshal(body, &payload)
	if err != nil || payload.Message == "" {
		apiErr.Message = string(body)

		return apiErr
	}

	apiErr.Message = payload.Message

	return apiErr
}

// Static errors for err113 compliance.
var (
	// ErrUnavailable is returned by detail operations when the CMS credentials
	// were not configured. It is distinct from a not-found response.
	ErrUnavailable = errors.New("content API is unavailable without configuration")

	ErrConfigRequired        = errors.New("config is required")
	ErrServiceDomainRequired = errors.New("service domain is required")
	ErrAPIKeyRequired        = errors.New("API key is required")
	ErrContentIDRequired     = errors.New("content ID is required")
	ErrInvalidServiceDomain  = errors.New("invalid service domain")
)

// IsUnavailable reports whether err signals missing configuration.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsNotFound reports whether err is a 404 response from the CMS.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 response, usually a bad API key.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 response, usually an API key
// without permission for the endpoint or draft content.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}
