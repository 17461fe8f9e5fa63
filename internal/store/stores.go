package store

import (
	"context"

	"app/internal/client"
)

// Stores bundles the process-wide singletons. The session-scoped stores
// (addresses, favorites, stats) are emptied automatically when the session
// ends; the cart survives logout.
type Stores struct {
	Session   *Session
	Cart      *Cart
	Addresses *AddressBook
	Favorites *Favorites
	Stats     *StatsStore
}

func NewStores(api *client.Client, credsPath string) *Stores {
	session := NewSession(api, credsPath)
	favorites := NewFavorites(api, session)
	s := &Stores{
		Session:   session,
		Cart:      NewCart(),
		Addresses: NewAddressBook(api, session),
		Favorites: favorites,
		Stats:     NewStatsStore(api, session, favorites),
	}

	session.Subscribe(func() {
		if !session.Authenticated() {
			s.Addresses.Clear()
			s.Favorites.Clear()
			s.Stats.Clear()
		}
	})
	return s
}

// Bootstrap loads the session-scoped stores after login or restore.
// Each load failure is returned but does not stop the others.
func (s *Stores) Bootstrap(ctx context.Context) error {
	if !s.Session.Authenticated() {
		return ErrNotAuthenticated
	}

	var firstErr error
	if err := s.Addresses.FetchAll(ctx); err != nil {
		firstErr = err
	}
	if err := s.Favorites.Refresh(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.Stats.Refresh(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
