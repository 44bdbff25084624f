package playauto

import "fmt"

// AuthenticationError reports a failed credential exchange.
type AuthenticationError struct {
	StatusCode int
	Reason     string
}

func (e *AuthenticationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("failed to obtain token (status %d): %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("failed to obtain token (status %d)", e.StatusCode)
}

// DataFetchError reports a failed search after the re-authentication retry.
type DataFetchError struct {
	Resource   string
	StatusCode int
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("failed to get %s data (status %d)", e.Resource, e.StatusCode)
}
