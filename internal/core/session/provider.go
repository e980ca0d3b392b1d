// Package session owns the session state observed by the access gate.
//
// A Provider is constructed per evaluation context (one per request in the
// HTTP server) and handed to whoever needs it; there is no package-level
// session. Resolution work happens elsewhere and is published into the
// Provider, which fans each new state out to its subscribers.
package session

import (
	"context"
	"sync"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// Listener receives every state published after it subscribed.
type Listener func(domain.SessionState)

// Provider holds the current session state and notifies subscribers of
// changes. The zero value is not usable; call NewProvider.
type Provider struct {
	mu        sync.Mutex
	state     domain.SessionState
	listeners map[int]Listener
	nextID    int
	changed   chan struct{}
}

// NewProvider returns a Provider in the resolving state.
func NewProvider() *Provider {
	return &Provider{
		state:     domain.SessionState{Resolution: domain.ResolutionResolving},
		listeners: make(map[int]Listener),
		changed:   make(chan struct{}),
	}
}

// State returns the most recently published state.
func (p *Provider) State() domain.SessionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers l and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (p *Provider) Subscribe(l Listener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Publish replaces the current state and notifies subscribers. Listeners run
// on the publishing goroutine, outside the lock.
func (p *Provider) Publish(s domain.SessionState) {
	p.mu.Lock()
	p.state = s
	close(p.changed)
	p.changed = make(chan struct{})
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}

// Await blocks until the state leaves resolving or ctx is done, then returns
// the current state, which is still resolving in the latter case.
func (p *Provider) Await(ctx context.Context) domain.SessionState {
	for {
		p.mu.Lock()
		state, changed := p.state, p.changed
		p.mu.Unlock()

		if state.Resolution != domain.ResolutionResolving {
			return state
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return p.State()
		}
	}
}
