package errors

import (
	"errors"

	"github.com/andikapratama/stockledger/constant"
)

// CustomError pairs an error kind from the taxonomy with an optional detail string.
// The detail carries per-request specifics (e.g. available vs requested quantity)
// without adding new kinds to the maps in constant.
type CustomError struct {
	errType constant.ErrorType
	detail  string
}

func (c CustomError) Error() string {
	msg := constant.ErrorTypeMessage[c.errType]
	if c.detail != "" {
		return msg + ": " + c.detail
	}
	return msg
}

func (c CustomError) ErrorType() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

func SetCustomErrorWithDetail(errorType constant.ErrorType, detail string) CustomError {
	return CustomError{
		errType: errorType,
		detail:  detail,
	}
}

// TypeOf extracts the taxonomy kind from err. Comparing kinds instead of message
// strings keeps detail-bearing errors comparable.
func TypeOf(err error) (constant.ErrorType, bool) {
	var ce CustomError
	if errors.As(err, &ce) {
		return ce.errType, true
	}
	return 0, false
}

// IsType reports whether err is a CustomError of the given kind.
func IsType(err error, errorType constant.ErrorType) bool {
	t, ok := TypeOf(err)
	return ok && t == errorType
}
