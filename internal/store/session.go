package store

import (
	"context"
	"sync"

	"app/internal/client"
	"app/internal/creds"
)

// Identity は認証済みユーザーの情報。
type Identity struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

// Session holds the bearer token and derived identity. It is the lifecycle
// root for the session-scoped stores: each login/logout bumps a generation
// counter so an in-flight fetch started under an old session cannot land
// its result on the new one.
type Session struct {
	Notifier

	api       *client.Client
	credsPath string

	mu       sync.Mutex
	identity *Identity
	gen      uint64
}

func NewSession(api *client.Client, credsPath string) *Session {
	return &Session{api: api, credsPath: credsPath}
}

// Restore reestablishes a persisted session, if any. A stale or rejected
// token is discarded silently: the app just starts logged out.
func (s *Session) Restore(ctx context.Context) error {
	c, err := creds.Load(s.credsPath)
	if err != nil || c.AccessToken == "" {
		return nil
	}

	s.api.SetToken(c.AccessToken)
	me, err := s.api.Me(ctx)
	if err != nil {
		s.api.SetToken("")
		if client.ErrorKindOf(err) == client.KindUnauthorized {
			_ = creds.Clear(s.credsPath)
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.identity = &Identity{UserID: me.ID, Name: me.Name, Email: me.Email, Role: me.Role}
	s.gen++
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	//トークンだけ永続化する（保存失敗でもログイン自体は成立）
	_ = creds.Save(s.credsPath, creds.Credentials{AccessToken: resp.Token.AccessToken})

	s.mu.Lock()
	s.identity = &Identity{
		UserID: resp.User.ID,
		Name:   resp.User.Name,
		Email:  resp.User.Email,
		Role:   resp.User.Role,
	}
	s.gen++
	s.mu.Unlock()
	s.notify()
	return nil
}

// Logout tears the session down locally regardless of whether the server
// call succeeds. The server error is returned for reporting only.
func (s *Session) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)

	_ = creds.Clear(s.credsPath)

	s.mu.Lock()
	s.identity = nil
	s.gen++
	s.mu.Unlock()
	s.notify()
	return err
}

// Invalidate drops the local session without calling the server.
// Used when any request comes back 401.
func (s *Session) Invalidate() {
	s.api.SetToken("")
	_ = creds.Clear(s.credsPath)

	s.mu.Lock()
	s.identity = nil
	s.gen++
	s.mu.Unlock()
	s.notify()
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// Identity returns a copy, or nil when logged out.
func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

func (s *Session) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return 0
	}
	return s.identity.UserID
}

// Generation increments on every login/logout/invalidate.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
