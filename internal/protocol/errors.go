package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when a parcel cannot be decoded.
	ErrMalformed = errors.New("malformed parcel")
	// ErrNullArgument is returned when a required string argument is null.
	ErrNullArgument = errors.New("null argument")
	// ErrInterfaceMismatch is returned when a request carries the wrong
	// interface token.
	ErrInterfaceMismatch = errors.New("interface token mismatch")
	// ErrUnknownCode is returned when decoding a code outside the
	// operation table.
	ErrUnknownCode = errors.New("unknown transaction code")
	// ErrUnhandled is returned by the client when the service did not
	// handle a transaction.
	ErrUnhandled = errors.New("transaction not handled")
)

// RemoteError is an exception reported in a reply header.
type RemoteError struct {
	Code    int32
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote %s", ExceptionName(e.Code))
	}
	return fmt.Sprintf("remote %s: %s", ExceptionName(e.Code), e.Message)
}

// exceptionCode maps a decoding error to the exception reported to the caller.
func exceptionCode(err error) int32 {
	switch {
	case errors.Is(err, ErrInterfaceMismatch):
		return ExSecurity
	case errors.Is(err, ErrNullArgument):
		return ExNullPointer
	case errors.Is(err, ErrMalformed):
		return ExIllegalArgument
	default:
		return ExIllegalState
	}
}
