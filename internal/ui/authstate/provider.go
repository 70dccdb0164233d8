// Package authstate tracks who is signed in to the UI host. The identity
// is read from the stored access token; signatures are not checked here
// because the API verifies every request that carries it.
package authstate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/ui/storage"
)

// AccessTokenKey is the single storage key holding the bearer token.
const AccessTokenKey = "accessToken"

// State is the authentication state of one browser.
type State struct {
	Authenticated bool      `json:"authenticated"`
	UserID        string    `json:"userId,omitempty"`
	Email         string    `json:"email,omitempty"`
	Roles         []string  `json:"roles,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt,omitempty"`
}

// Anonymous is the state of a browser without a usable token.
var Anonymous = State{}

func (s State) IsInRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Notifier is told when a login or logout happened.
type Notifier interface {
	NotifyLoggedIn(ctx context.Context) error
	NotifyLoggedOut(ctx context.Context) error
}

// Provider derives State from storage and fans changes out to subscribers.
type Provider struct {
	storage storage.LocalStorage
	now     func() time.Time

	mu          sync.RWMutex
	nextID      int
	subscribers map[int]func(context.Context, State)
}

var _ Notifier = (*Provider)(nil)

func NewProvider(store storage.LocalStorage) *Provider {
	return &Provider{
		storage:     store,
		now:         time.Now,
		subscribers: make(map[int]func(context.Context, State)),
	}
}

// State reads the current state. Absent, undecodable or expired tokens
// yield Anonymous.
func (p *Provider) State(ctx context.Context) (State, error) {
	token, err := p.storage.GetItem(ctx, AccessTokenKey)
	if err != nil {
		return Anonymous, err
	}
	if token == "" {
		return Anonymous, nil
	}

	claims, err := auth.ParseUnverified(token)
	if err != nil {
		log.Debug().Err(err).Msg("Stored access token is not a JWT")
		return Anonymous, nil
	}
	if claims.Expired(p.now()) {
		return Anonymous, nil
	}

	state := State{
		Authenticated: true,
		UserID:        claims.Subject,
		Email:         claims.Email,
		Roles:         claims.Roles,
	}
	if claims.ExpiresAt != nil {
		state.ExpiresAt = claims.ExpiresAt.Time
	}
	return state, nil
}

// NotifyLoggedIn publishes the state derived from the freshly stored token.
func (p *Provider) NotifyLoggedIn(ctx context.Context) error {
	state, err := p.State(ctx)
	if err != nil {
		return err
	}
	p.publish(ctx, state)
	return nil
}

// NotifyLoggedOut forgets the token and publishes Anonymous.
func (p *Provider) NotifyLoggedOut(ctx context.Context) error {
	if err := p.storage.RemoveItem(ctx, AccessTokenKey); err != nil {
		return err
	}
	p.publish(ctx, Anonymous)
	return nil
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (p *Provider) Subscribe(fn func(context.Context, State)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *Provider) publish(ctx context.Context, state State) {
	p.mu.RLock()
	subs := make([]func(context.Context, State), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.mu.RUnlock()

	for _, fn := range subs {
		fn(ctx, state)
	}
}
