package protocol

import "errors"

// ParseError is the reason a request line could not be decoded. The values
// are comparable, so errors.Is(err, ErrInvalidMethod) works on wrapped errors.
type ParseError uint8

const (
	ErrInvalidRequest ParseError = iota + 1
	ErrInvalidEncoding
	ErrInvalidProtocol
	ErrInvalidMethod
)

func (e ParseError) Error() string {
	switch e {
	case ErrInvalidRequest:
		return "Invalid Request"
	case ErrInvalidEncoding:
		return "Invalid Encoding"
	case ErrInvalidProtocol:
		return "Invalid Protocol"
	case ErrInvalidMethod:
		return "Invalid Method"
	default:
		return "Unknown Parse Error"
	}
}

// Kind is a short label for metrics.
func (e ParseError) Kind() string {
	switch e {
	case ErrInvalidRequest:
		return "request"
	case ErrInvalidEncoding:
		return "encoding"
	case ErrInvalidProtocol:
		return "protocol"
	case ErrInvalidMethod:
		return "method"
	default:
		return "unknown"
	}
}

func AsParseError(err error) (ParseError, bool) {
	var pe ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return 0, false
}
