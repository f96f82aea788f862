package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shandysiswandi/godna/internal/dashboard/entity"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

// Greeting opens every chat transcript.
const Greeting = "Hi! How can I help you with marine biology research today?"

var (
	errLoginRequired  = errors.New("Please enter email and password")
	errSignupRequired = errors.New("Please fill all required fields")
	errInvalidEmail   = errors.New("Please enter a valid email address")
)

// Login validates the login form and opens a session. There is no account
// backend: any well-formed email and non-empty password is accepted.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (entity.Session, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := checkInput(in, formMessage(errLoginRequired)); err != nil {
		return entity.Session{}, err
	}

	return u.openSession(ctx, "", in.Email, in.Role)
}

func (u *Usecase) Signup(ctx context.Context, in SignupInput) (entity.Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := checkInput(in, formMessage(errSignupRequired)); err != nil {
		return entity.Session{}, err
	}

	return u.openSession(ctx, in.Name, in.Email, in.Role)
}

// formMessage maps a failed email rule to errInvalidEmail and anything else
// to required.
func formMessage(required error) func(validator.FieldError) error {
	return func(fe validator.FieldError) error {
		if fe.Tag() == "email" {
			return errInvalidEmail
		}
		return required
	}
}

func (u *Usecase) openSession(ctx context.Context, name, email, rawRole string) (entity.Session, error) {
	role := entity.RoleResearcher
	if strings.TrimSpace(rawRole) != "" {
		parsed, ok := entity.ParseRole(rawRole)
		if !ok {
			return entity.Session{}, pkgerror.NewInvalidInput(fmt.Errorf("unknown role %q", rawRole))
		}
		role = parsed
	}

	now := u.clock.Now()
	sess := entity.Session{
		ID:        u.id.Generate(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
	}
	if err := u.store.CreateSession(ctx, sess); err != nil {
		return entity.Session{}, normalizeErr(err)
	}

	greeting := entity.ChatMessage{
		ID:     u.numbers.Generate(),
		Text:   Greeting,
		Sender: entity.SenderBot,
		SentAt: now,
	}
	if err := u.store.AppendChat(ctx, sess.ID, greeting); err != nil {
		return entity.Session{}, mapStoreErr(err)
	}
	u.metrics.RecordChatMessage(string(entity.SenderBot))

	slog.InfoContext(ctx, "session opened", "session_id", sess.ID, "role", string(role))

	return sess, nil
}

// Session returns the session for id.
func (u *Usecase) Session(ctx context.Context, sessionID string) (entity.Session, error) {
	sess, err := u.store.GetSession(ctx, sessionID)
	if err != nil {
		return entity.Session{}, mapStoreErr(err)
	}
	return sess, nil
}
