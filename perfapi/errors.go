package perfapi

import "fmt"

// StatusCodeError is returned when an endpoint answers with a non-2xx status.
type StatusCodeError struct {
	StatusCode int
	URL        string
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("statusCode %v for %s", e.StatusCode, e.URL)
}
