package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by stores for unknown session ids.
var ErrNotFound = errors.New("resource not found")

// Type classifies errors by who caused them.
type Type int

const (
	TypeServer     Type = iota // A fault of the service itself; the user sees a generic message.
	TypeBusiness               // A request the dashboard refuses (unknown view, missing session).
	TypeValidation             // A form or payload the user can correct.
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier mapped to an HTTP status at the edge.
type Code int

const (
	CodeInternal             Code = iota // Unspecified failure.
	CodeInvalidFormat                    // Request body is not decodable.
	CodeInvalidInput                     // Upload name, form or chat text rejected.
	CodeNotFound                         // Session or resource missing.
	CodeConflict                         // Duplicate session.
	CodeUnauthorized                     // Session header missing or malformed.
	CodeInvalidExportRequest             // Export payload cannot be serialized.
	CodeUnknownViewKey                   // Visualization key outside the known set.
)

type codeInfo struct {
	name   string
	status int
}

//nolint:gochecknoglobals // read-only lookup table
var codes = map[Code]codeInfo{
	CodeInternal:             {"ERROR_CODE_INTERNAL", http.StatusInternalServerError},
	CodeInvalidFormat:        {"ERROR_CODE_INVALID_FORMAT", http.StatusBadRequest},
	CodeInvalidInput:         {"ERROR_CODE_INVALID_INPUT", http.StatusUnprocessableEntity},
	CodeNotFound:             {"ERROR_CODE_NOT_FOUND", http.StatusNotFound},
	CodeConflict:             {"ERROR_CODE_CONFLICT", http.StatusConflict},
	CodeUnauthorized:         {"ERROR_CODE_UNAUTHORIZED", http.StatusUnauthorized},
	CodeInvalidExportRequest: {"ERROR_CODE_INVALID_EXPORT_REQUEST", http.StatusUnprocessableEntity},
	CodeUnknownViewKey:       {"ERROR_CODE_UNKNOWN_VIEW_KEY", http.StatusNotFound},
}

func (c Code) info() codeInfo {
	if info, ok := codes[c]; ok {
		return info
	}
	return codes[CodeInternal]
}

func (c Code) String() string {
	return c.info().name
}

// Error carries a user-facing message, a Type and a Code, optionally
// wrapping the error that caused it.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
}

// Error returns the wrapped error's text when there is one, so logs keep
// the root cause; Msg is what users see.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Logical business not meet with requirement"
	default:
		return "Internal error"
	}
}

// String is the verbose form used in debug logs.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %s, Code: %s, Message: %s, Underlying Error: %v",
		e.errType, e.code, e.msg, e.err)
}

func (e *Error) Msg() string   { return e.msg }
func (e *Error) Type() Type    { return e.errType }
func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to its HTTP status.
func (e *Error) StatusCode() int {
	return e.code.info().status
}

// From returns err as an *Error. Errors outside the taxonomy become server
// errors that wrap them; nil stays nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

func new(err error, msg string, et Type, code Code) error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer wraps err as an internal error with a generic message.
func NewServer(err error) error {
	return new(err, "Internal server error", TypeServer, CodeInternal)
}

// NewBusiness creates a refusal with a user-facing message.
func NewBusiness(msg string, code Code) error {
	return new(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error whose user-facing message is
// err's text, so err should be phrased for the user.
func NewInvalidInput(err error) error {
	if err == nil {
		return new(nil, "validation error", TypeValidation, CodeInvalidInput)
	}
	return new(err, err.Error(), TypeValidation, CodeInvalidInput)
}

// NewInvalidExportRequest rejects an export payload whose columns are empty
// or missing from one of its records.
func NewInvalidExportRequest(err error) error {
	if err == nil {
		return new(nil, "invalid export request", TypeValidation, CodeInvalidExportRequest)
	}
	return new(err, "invalid export request: "+err.Error(), TypeValidation, CodeInvalidExportRequest)
}

// NewUnknownViewKey rejects a visualization key outside the known views.
func NewUnknownViewKey(key string) error {
	return new(nil, fmt.Sprintf("unknown view %q", key), TypeBusiness, CodeUnknownViewKey)
}

// NewInvalidFormat rejects a request body that cannot be decoded.
func NewInvalidFormat() error {
	return new(nil, "invalid request body", TypeValidation, CodeInvalidFormat)
}
