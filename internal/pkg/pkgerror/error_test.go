package pkgerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		errType Type
		code    Code
		status  int
	}{
		{
			name:    "invalid upload name",
			err:     NewInvalidInput(errors.New("Please select a valid FASTA file (.fasta)")),
			msg:     "Please select a valid FASTA file (.fasta)",
			errType: TypeValidation,
			code:    CodeInvalidInput,
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "invalid input without cause",
			err:     NewInvalidInput(nil),
			msg:     "validation error",
			errType: TypeValidation,
			code:    CodeInvalidInput,
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "export with empty columns",
			err:     NewInvalidExportRequest(errors.New("columns must not be empty")),
			msg:     "invalid export request: columns must not be empty",
			errType: TypeValidation,
			code:    CodeInvalidExportRequest,
			status:  http.StatusUnprocessableEntity,
		},
		{
			name:    "unknown view",
			err:     NewUnknownViewKey("heatmap"),
			msg:     `unknown view "heatmap"`,
			errType: TypeBusiness,
			code:    CodeUnknownViewKey,
			status:  http.StatusNotFound,
		},
		{
			name:    "missing session header",
			err:     NewBusiness("X-Session-ID header is required", CodeUnauthorized),
			msg:     "X-Session-ID header is required",
			errType: TypeBusiness,
			code:    CodeUnauthorized,
			status:  http.StatusUnauthorized,
		},
		{
			name:    "duplicate session",
			err:     NewBusiness("session already exists", CodeConflict),
			msg:     "session already exists",
			errType: TypeBusiness,
			code:    CodeConflict,
			status:  http.StatusConflict,
		},
		{
			name:    "undecodable body",
			err:     NewInvalidFormat(),
			msg:     "invalid request body",
			errType: TypeValidation,
			code:    CodeInvalidFormat,
			status:  http.StatusBadRequest,
		},
		{
			name:    "server fault",
			err:     NewServer(errors.New("pdf writer closed")),
			msg:     "Internal server error",
			errType: TypeServer,
			code:    CodeInternal,
			status:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var perr *Error
			require.ErrorAs(t, tt.err, &perr)
			assert.Equal(t, tt.msg, perr.Msg())
			assert.Equal(t, tt.errType, perr.Type())
			assert.Equal(t, tt.code, perr.Code())
			assert.Equal(t, tt.status, perr.StatusCode())
		})
	}
}

func TestErrorTextKeepsRootCause(t *testing.T) {
	root := errors.New("pdf writer closed")
	err := NewServer(root)

	assert.ErrorIs(t, err, root)
	assert.Equal(t, "pdf writer closed", err.Error())

	export := NewInvalidExportRequest(errors.New("record 2 is missing column value"))
	assert.Equal(t, "record 2 is missing column value", export.Error())
}

func TestErrorFallbackText(t *testing.T) {
	assert.Equal(t, "Validation violation", new(nil, "", TypeValidation, CodeInvalidInput).Error())
	assert.Equal(t, "Logical business not meet with requirement", new(nil, "", TypeBusiness, CodeNotFound).Error())
	assert.Equal(t, "Internal error", new(nil, "", TypeServer, CodeInternal).Error())
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "ERROR_TYPE_VALIDATION", TypeValidation.String())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(99).String())
	assert.Equal(t, "ERROR_CODE_UNKNOWN_VIEW_KEY", CodeUnknownViewKey.String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())
	assert.Equal(t, http.StatusInternalServerError, (&Error{code: Code(99)}).StatusCode())

	verbose := NewBusiness("session not found", CodeNotFound).(*Error).String()
	assert.Contains(t, verbose, "ERROR_TYPE_BUSINESS")
	assert.Contains(t, verbose, "ERROR_CODE_NOT_FOUND")
	assert.Contains(t, verbose, "session not found")
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	view := NewUnknownViewKey("genome")
	assert.Same(t, view, error(From(fmt.Errorf("adapt: %w", view))))

	root := errors.New("disk full")
	got := From(root)
	assert.Equal(t, TypeServer, got.Type())
	assert.Equal(t, "Internal server error", got.Msg())
	assert.ErrorIs(t, got, root)
}
