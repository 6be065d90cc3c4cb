package memory

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prasetya/trackping/internal/domain/entity"
	"github.com/prasetya/trackping/internal/domain/repository"
	"github.com/prasetya/trackping/pkg/helpers"
)

// Generating 8 hex chars practically never collides, but the id space is
// finite so the retry loop is bounded.
const maxIDAttempts = 8

// Registry is the in-memory user store. State is process-lifetime only and
// lost on restart. All mutation is serialized by the mutex because webhook
// requests for the same phone can arrive concurrently.
type Registry struct {
	mu      sync.RWMutex
	users   map[string]*entity.User
	pending map[string]string // phone -> tracking id awaiting carrier selection
	newID   func() (string, error)
}

func NewRegistry() *Registry {
	return &Registry{
		users:   make(map[string]*entity.User),
		pending: make(map[string]string),
		newID:   helpers.NewTrackingID,
	}
}

// Register stores a new user under a fresh tracking id. The phone is kept
// as received. The most recent registration per phone owns the next
// carrier-selection reply.
func (r *Registry) Register(phone string) (*entity.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, repository.ErrInvalidPhone
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var id string
	for attempt := 0; ; attempt++ {
		candidate, err := r.newID()
		if err != nil {
			return nil, err
		}
		if _, taken := r.users[candidate]; !taken {
			id = candidate
			break
		}
		if attempt >= maxIDAttempts {
			return nil, errors.New("tracking id collision retries exhausted")
		}
	}

	u := &entity.User{
		TrackingID: id,
		Phone:      phone,
		CreatedAt:  time.Now(),
	}
	r.users[id] = u
	r.pending[phone] = id
	return copyUser(u), nil
}

// SetCarrier binds a carrier to the most recent registration for the phone
// that is still awaiting a selection. Consuming the pending mark means a
// second reply without a new signup gets ErrNotFound.
func (r *Registry) SetCarrier(phone string, c entity.Carrier) (*entity.User, error) {
	if !c.Known() {
		return nil, repository.ErrUnknownCarrier
	}
	phone = strings.TrimSpace(phone)

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.pending[phone]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u, ok := r.users[id]
	if !ok {
		// pending pointing at a missing user cannot happen without a bug,
		// treat it as not found rather than panic
		delete(r.pending, phone)
		return nil, repository.ErrNotFound
	}
	u.Carrier = c
	delete(r.pending, phone)
	return copyUser(u), nil
}

// Lookup resolves a tracking id to its user.
func (r *Registry) Lookup(trackingID string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[trackingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(u), nil
}

// Len reports the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// copyUser keeps callers from racing with in-place carrier mutation.
func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}
