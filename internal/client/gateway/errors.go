package gateway

import "fmt"

// FallbackMessage is used when the remote side provides nothing better.
const FallbackMessage = "Request failed"

// Error is the normalized failure of a gateway call. Status is the HTTP
// status code, or 0 when the request never produced a response (transport
// failure). Message carries the most specific text available: the remote
// "error" field, then "message", then the raw body, then FallbackMessage.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Reason extracts the display message from any error. Gateway errors yield
// their normalized message; other errors yield err.Error().
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if ge, ok := err.(*Error); ok {
		return ge.Message
	}
	return err.Error()
}
