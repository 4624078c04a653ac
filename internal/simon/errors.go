package simon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestFailed matches every error returned by Client.
var ErrRequestFailed = errors.New("simon request failed")

// RequestFailedError describes a failed backend call.
type RequestFailedError struct {
	Op         string // start, brainstorm, chat, ping
	StatusCode int    // 0 when no response was received
	Message    string
	Err        error
}

func (e *RequestFailedError) Error() string {
	msg := fmt.Sprintf("simon %s failed", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRequestFailed) hold for any RequestFailedError.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// retryable reports whether a failed attempt is worth repeating.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rfErr *RequestFailedError
	if errors.As(err, &rfErr) {
		if rfErr.StatusCode == 0 {
			// transport failure
			return rfErr.Err != nil && !errors.Is(rfErr.Err, context.Canceled) && !errors.Is(rfErr.Err, context.DeadlineExceeded)
		}
		return rfErr.StatusCode == http.StatusTooManyRequests || rfErr.StatusCode >= 500
	}
	return false
}
