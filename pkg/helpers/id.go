package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// NewTrackingID returns 4 random bytes hex-encoded (8 characters). Short
// enough to fit in an SMS, random enough for this fleet size; callers are
// expected to check for registry collisions.
func NewTrackingID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
