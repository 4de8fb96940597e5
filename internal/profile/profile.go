// Package profile stores the user profile written by onboarding.
package profile

import (
	"context"
	"regexp"
	"strings"

	"github.com/agentstation/menumap/pkg/errors"
)

var (
	firstNamePattern = regexp.MustCompile(`^[A-Za-z]+$`)
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Profile is the persisted user state.
type Profile struct {
	FirstName             string `json:"firstName" yaml:"firstName"`
	Email                 string `json:"email" yaml:"email"`
	IsOnboardingCompleted bool   `json:"isOnboardingCompleted" yaml:"isOnboardingCompleted"`
}

// Initials returns the upper-cased first letter of the first name, used
// when no avatar is available.
func (p Profile) Initials() string {
	if p.FirstName == "" {
		return ""
	}
	return strings.ToUpper(p.FirstName[:1])
}

// Store persists a single profile.
type Store interface {
	// Load returns the stored profile, or a NotFoundError when none exists.
	Load(ctx context.Context) (Profile, error)

	// Save replaces the stored profile.
	Save(ctx context.Context, p Profile) error
}

// ValidateFirstName reports whether name consists of ASCII letters only.
func ValidateFirstName(name string) error {
	if !firstNamePattern.MatchString(name) {
		return errors.NewValidationError("firstName", name, "first name must contain only letters")
	}
	return nil
}

// ValidateEmail reports whether email looks like an address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.NewValidationError("email", email, "enter a valid email address")
	}
	return nil
}

// Completed reports whether onboarding has already been done.
func Completed(ctx context.Context, s Store) (bool, error) {
	p, err := s.Load(ctx)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsOnboardingCompleted, nil
}

// Onboard validates the inputs, persists them and marks onboarding as
// completed. It refuses to run again once completed unless force is set.
func Onboard(ctx context.Context, s Store, firstName, email string, force bool) (Profile, error) {
	if err := ValidateFirstName(firstName); err != nil {
		return Profile{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return Profile{}, err
	}

	if !force {
		done, err := Completed(ctx, s)
		if err != nil {
			return Profile{}, err
		}
		if done {
			return Profile{}, errors.NewValidationError("profile", nil, "onboarding already completed")
		}
	}

	p := Profile{
		FirstName:             firstName,
		Email:                 email,
		IsOnboardingCompleted: true,
	}
	if err := s.Save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
