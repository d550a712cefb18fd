package confirm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// DefaultTTL is how long a pending confirmation stays valid
const DefaultTTL = 5 * time.Minute

var prompts = map[session.Entity]string{
	session.EntityResident:     "Hapus data warga ini?",
	session.EntityTransaction:  "Hapus transaksi ini?",
	session.EntityReport:       "Hapus laporan ini secara permanen?",
	session.EntityAnnouncement: "Hapus pengumuman ini?",
}

// Action is the destructive operation run once the user confirms.
// It receives the confirming session so permissions are checked again.
type Action func(ctx context.Context, sess *session.Session) error

// Pending describes an operation waiting for confirmation
type Pending struct {
	Token     string         `json:"token"`
	Entity    session.Entity `json:"entity"`
	TargetID  string         `json:"targetId"`
	Prompt    string         `json:"prompt"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

type intent struct {
	pending   Pending
	sessionID string
	action    Action
}

// Registry keeps destructive intents until they are confirmed, cancelled or expired.
// A token can be confirmed at most once and only by the session that requested it.
type Registry struct {
	mu      sync.Mutex
	intents map[string]intent
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry creates a confirmation registry
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		intents: make(map[string]intent),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Request records the intent to run action and returns the token to confirm it
func (r *Registry) Request(sess *session.Session, entity session.Entity, targetID string, action Action) (*Pending, error) {
	if sess == nil {
		return nil, errors.NewPermissionDeniedError("an active session is required")
	}

	prompt, ok := prompts[entity]
	if !ok {
		prompt = "Lanjutkan penghapusan?"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	p := Pending{
		Token:     uuid.New().String(),
		Entity:    entity,
		TargetID:  targetID,
		Prompt:    prompt,
		ExpiresAt: r.now().Add(r.ttl).UTC(),
	}
	r.intents[p.Token] = intent{pending: p, sessionID: sess.ID, action: action}
	return &p, nil
}

// Confirm runs the action behind token. The token is consumed before the action runs.
func (r *Registry) Confirm(ctx context.Context, sess *session.Session, token string) (*Pending, error) {
	in, err := r.take(sess, token)
	if err != nil {
		return nil, err
	}

	if err := in.action(ctx, sess); err != nil {
		return nil, err
	}
	return &in.pending, nil
}

// Cancel discards a pending intent. Unknown tokens are ignored.
func (r *Registry) Cancel(sess *session.Session, token string) {
	_, _ = r.take(sess, token)
}

func (r *Registry) take(sess *session.Session, token string) (intent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.intents[token]
	if !ok || sess == nil || in.sessionID != sess.ID {
		return intent{}, errors.NewNotFoundError("confirmation not found")
	}
	delete(r.intents, token)

	if r.now().After(in.pending.ExpiresAt) {
		return intent{}, errors.NewNotFoundError("confirmation has expired")
	}
	return in, nil
}

func (r *Registry) pruneLocked() {
	now := r.now()
	for token, in := range r.intents {
		if now.After(in.pending.ExpiresAt) {
			delete(r.intents, token)
		}
	}
}
