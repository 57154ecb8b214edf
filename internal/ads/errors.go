package ads

import (
	"errors"
	"fmt"
)

// ErrAuth indicates a missing or rejected access token.
var ErrAuth = errors.New("ADS authentication error")

// ExternalError indicates the ADS API behaved unexpectedly: a failing
// HTTP status, an unparseable body, or a non-zero status in the response
// header.
type ExternalError struct {
	StatusCode int // HTTP status, when applicable
	Message    string
}

func (e *ExternalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ADS API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ADS API error: %s", e.Message)
}

// IsExternal returns true if the error came from an unexpected ADS
// response.
func IsExternal(err error) bool {
	var e *ExternalError
	return errors.As(err, &e)
}
