package scoring

import (
	"errors"
	"fmt"
)

// ErrScoringFailed matches every error returned by Client.Score.
var ErrScoringFailed = errors.New("API error: scoring request failed")

// UserMessage is the text surfaces show when a score could not be obtained.
const UserMessage = "Failed to score applicant. Please check the input or API."

// Kind classifies a scoring failure.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindMalformed Kind = "malformed"
)

// Error describes why a scoring request produced no probability.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return ErrScoringFailed.Error()
	}
	msg := ErrScoringFailed.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrScoringFailed) succeed for every scoring error.
func (e *Error) Is(target error) bool {
	return target == ErrScoringFailed
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Detail: "request not completed", Err: err}
}

func statusError(code int, status string) *Error {
	return &Error{Kind: KindStatus, StatusCode: code, Detail: "unexpected status " + status}
}

func malformedError(detail string, err error) *Error {
	return &Error{Kind: KindMalformed, Detail: detail, Err: err}
}
