package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veicsys/veicsys/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubVerifier struct {
	ident *domain.Identity
	err   error
}

func (v *stubVerifier) VerifyToken(string) (*domain.Identity, error) {
	return v.ident, v.err
}

type stubProfiles struct {
	profile *domain.Profile
	err     error
	calls   int
}

func (s *stubProfiles) FindByUserID(context.Context, string) (*domain.Profile, error) {
	s.calls++
	return s.profile, s.err
}

func newResolver(v *stubVerifier, p *stubProfiles) *Resolver {
	return NewResolver(v, p, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Provider
// ---------------------------------------------------------------------------

func TestProvider_StartsResolving(t *testing.T) {
	p := NewProvider()
	if got := p.State().Resolution; got != domain.ResolutionResolving {
		t.Fatalf("expected resolving, got %s", got)
	}
}

func TestProvider_SubscribeAndUnsubscribe(t *testing.T) {
	p := NewProvider()
	var got []domain.Resolution
	unsubscribe := p.Subscribe(func(s domain.SessionState) {
		got = append(got, s.Resolution)
	})

	p.Publish(domain.SessionState{Resolution: domain.ResolutionAbsent})
	unsubscribe()
	unsubscribe()
	p.Publish(domain.SessionState{Resolution: domain.ResolutionPresent, Identity: &domain.Identity{UserID: "u1"}})

	if len(got) != 1 || got[0] != domain.ResolutionAbsent {
		t.Fatalf("unexpected notifications: %v", got)
	}
	if p.State().Resolution != domain.ResolutionPresent {
		t.Fatal("state must follow the latest publish")
	}
}

func TestProvider_AwaitReturnsOnPublish(t *testing.T) {
	p := NewProvider()
	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Publish(domain.SessionState{Resolution: domain.ResolutionAbsent})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if got := p.Await(ctx); got.Resolution != domain.ResolutionAbsent {
		t.Fatalf("expected absent, got %s", got.Resolution)
	}
}

func TestProvider_AwaitTimesOutWhileResolving(t *testing.T) {
	p := NewProvider()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if got := p.Await(ctx); got.Resolution != domain.ResolutionResolving {
		t.Fatalf("expected resolving after timeout, got %s", got.Resolution)
	}
}

func TestProvider_ConcurrentPublishAndRead(t *testing.T) {
	p := NewProvider()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.Publish(domain.SessionState{Resolution: domain.ResolutionAbsent})
		}()
		go func() {
			defer wg.Done()
			_ = p.State()
		}()
	}
	wg.Wait()
	if p.State().Resolution != domain.ResolutionAbsent {
		t.Fatal("expected absent")
	}
}

// ---------------------------------------------------------------------------
// Resolver
// ---------------------------------------------------------------------------

func TestResolver_NoTokenIsAbsent(t *testing.T) {
	profiles := &stubProfiles{}
	p := NewProvider()
	newResolver(&stubVerifier{}, profiles).Resolve(context.Background(), p, "")

	if p.State().Resolution != domain.ResolutionAbsent {
		t.Fatalf("expected absent, got %s", p.State().Resolution)
	}
	if profiles.calls != 0 {
		t.Fatal("profile must not be fetched without a token")
	}
}

func TestResolver_InvalidTokenIsAbsent(t *testing.T) {
	p := NewProvider()
	newResolver(&stubVerifier{err: domain.ErrInvalidToken}, &stubProfiles{}).Resolve(context.Background(), p, "garbage")

	s := p.State()
	if s.Resolution != domain.ResolutionAbsent || s.Identity != nil {
		t.Fatalf("unexpected state: %+v", s)
	}
}

func TestResolver_PresentWithProfile(t *testing.T) {
	ident := &domain.Identity{UserID: "u1", Email: "a@x.com"}
	profile := &domain.Profile{UserID: "u1", Role: domain.RoleVendedor}
	p := NewProvider()

	var published int
	p.Subscribe(func(domain.SessionState) { published++ })
	newResolver(&stubVerifier{ident: ident}, &stubProfiles{profile: profile}).Resolve(context.Background(), p, "tok")

	s := p.State()
	if !s.Authenticated() || s.Role() != domain.RoleVendedor {
		t.Fatalf("unexpected state: %+v", s)
	}
	if published != 1 {
		t.Fatalf("expected exactly one publish, got %d", published)
	}
}

func TestResolver_ProfileFailureFailsClosed(t *testing.T) {
	for _, err := range []error{domain.ErrProfileNotFound, errors.New("mongo down")} {
		ident := &domain.Identity{UserID: "u1", Email: "a@x.com"}
		p := NewProvider()
		newResolver(&stubVerifier{ident: ident}, &stubProfiles{profile: &domain.Profile{Role: domain.RoleAdmin}, err: err}).
			Resolve(context.Background(), p, "tok")

		s := p.State()
		if s.Resolution != domain.ResolutionPresent || s.Identity == nil {
			t.Fatalf("err=%v: expected present session, got %+v", err, s)
		}
		if s.Profile != nil || s.Role() != domain.RoleUnknown {
			t.Fatalf("err=%v: expected unknown role, got %+v", err, s.Profile)
		}
	}
}
