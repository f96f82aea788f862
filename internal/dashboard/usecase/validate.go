package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

//nolint:gochecknoglobals // validator caches struct metadata; one instance is shared
var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates the struct tags of in. Missing fields are reported
// before malformed ones; message picks the user-facing text for a failure.
func checkInput(in any, message func(validator.FieldError) error) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return pkgerror.NewServer(err)
	}

	for _, fe := range fields {
		if fe.Tag() == "required" {
			return pkgerror.NewInvalidInput(message(fe))
		}
	}
	return pkgerror.NewInvalidInput(message(fields[0]))
}
