package flow

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/wallmatch/internal/common"
)

// ErrorKind groups failures by the message shown to the user.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindTimeout      ErrorKind = "timeout"
	KindCancelled    ErrorKind = "cancelled"
	KindConnectivity ErrorKind = "connectivity"
	KindSize         ErrorKind = "size"
	KindGeneric      ErrorKind = "generic"
)

// User-facing failure messages.
const (
	MsgTimeout       = "Request timeout. Please try with a smaller image."
	MsgConnectivity  = "Cannot connect to server. Is the backend running?"
	MsgGenericPrefix = "Failed to load artworks. "
)

// Classify maps a submission error to its kind and user message.
func Classify(err error) (ErrorKind, string) {
	var (
		validationErr *common.ValidationError
		sizeErr       *common.SizeLimitError
		transportErr  *common.TransportError
	)

	switch {
	case errors.As(err, &validationErr):
		return KindValidation, capitalize(validationErr.Error())
	case errors.As(err, &sizeErr):
		return KindSize, sizeErr.Error()
	case errors.Is(err, context.Canceled):
		// Aborted requests share the timeout message.
		return KindCancelled, MsgTimeout
	case common.IsTimeout(err):
		return KindTimeout, MsgTimeout
	case errors.As(err, &transportErr):
		return KindConnectivity, MsgConnectivity
	default:
		return KindGeneric, MsgGenericPrefix + err.Error()
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
