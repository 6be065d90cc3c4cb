package repository

import (
	"errors"

	"github.com/prasetya/trackping/internal/domain/entity"
)

var (
	// ErrNotFound means no user matched the tracking id, or no pending
	// registration matched the phone number.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidPhone means the phone number was rejected at the
	// registration boundary.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrUnknownCarrier means the carrier is not one of the supported set.
	ErrUnknownCarrier = errors.New("unknown carrier")
)

// UserRegistry defines the interface for the registrant store. Users live
// for the process lifetime only; there is no deletion or expiry.
type UserRegistry interface {
	// Register stores a new user under a fresh tracking id and marks the
	// phone as awaiting carrier selection.
	Register(phone string) (*entity.User, error)

	// SetCarrier binds a carrier to the most recent pending registration
	// for the phone and clears the pending mark.
	SetCarrier(phone string, c entity.Carrier) (*entity.User, error)

	// Lookup resolves a tracking id to its user.
	Lookup(trackingID string) (*entity.User, error)
}
