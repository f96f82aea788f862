package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
)

var (
	errUserDataRequired = errors.New("Please fill all required fields")
	errLatitude         = errors.New("latitude must be between -90 and 90")
	errLongitude        = errors.New("longitude must be between -180 and 180")
)

// SubmitUserData records a species sighting for the session.
func (u *Usecase) SubmitUserData(ctx context.Context, sessionID string, in UserDataInput) (entity.Contribution, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := checkInput(in, userDataMessage); err != nil {
		return entity.Contribution{}, err
	}

	c := entity.Contribution{
		ID:          u.numbers.Generate(),
		Name:        in.Name,
		Description: in.Description,
		Latitude:    *in.Latitude,
		Longitude:   *in.Longitude,
		ImageName:   in.ImageName,
		SubmittedAt: u.clock.Now(),
	}
	if err := u.store.AddContribution(ctx, sessionID, c); err != nil {
		return entity.Contribution{}, mapStoreErr(err)
	}

	slog.InfoContext(ctx, "user data submitted", "contribution_id", c.ID, "name", c.Name)

	return c, nil
}

// Contributions lists the sightings submitted in the session, oldest first.
func (u *Usecase) Contributions(ctx context.Context, sessionID string) ([]entity.Contribution, error) {
	out, err := u.store.ListContributions(ctx, sessionID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return out, nil
}

func userDataMessage(fe validator.FieldError) error {
	switch {
	case fe.Tag() == "required":
		return errUserDataRequired
	case fe.StructField() == "Latitude":
		return errLatitude
	default:
		return errLongitude
	}
}
