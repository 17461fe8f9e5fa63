package store

import (
	"context"
	"sync"

	"app/internal/client"
)

// Stats are the dashboard counters. Derived, never persisted.
type Stats struct {
	PendingReviewsCount int
	ActiveOrdersCount   int
	WishlistCount       int
}

// PendingReviews counts (product, order) pairs in delivered orders that the
// user has not reviewed yet. One review is owed per pair: a product bought
// in two delivered orders needs two reviews.
func PendingReviews(userID int64, delivered []client.Order) int {
	count := 0
	for _, order := range delivered {
		for _, item := range order.Items {
			if item.Product == nil {
				count++
				continue
			}
			reviewed := false
			for _, r := range item.Product.Reviews {
				if r.UserID == userID && r.OrderID == order.ID {
					reviewed = true
					break
				}
			}
			if !reviewed {
				count++
			}
		}
	}
	return count
}

// ComputeStats is a pure reduction over already-fetched collections.
func ComputeStats(userID int64, delivered []client.Order, pendingTotal, processingTotal int64, wishlist int) Stats {
	return Stats{
		PendingReviewsCount: PendingReviews(userID, delivered),
		ActiveOrdersCount:   int(pendingTotal + processingTotal),
		WishlistCount:       wishlist,
	}
}

// 配達済み注文は先頭ページ分だけ見る（ダッシュボード用の概算で十分）
const deliveredPageSize = 50

// StatsStore caches the computed counters. Refresh re-fetches the source
// collections and recomputes from scratch; there is no incremental path.
// Refresh is triggered by discrete user actions (review submitted, order
// placed, favorite toggled), not by a timer.
type StatsStore struct {
	Notifier

	api       *client.Client
	session   *Session
	favorites *Favorites

	mu    sync.Mutex
	stats Stats
}

func NewStatsStore(api *client.Client, session *Session, favorites *Favorites) *StatsStore {
	return &StatsStore{api: api, session: session, favorites: favorites}
}

func (s *StatsStore) Current() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Refresh fans out the source fetches and feeds ComputeStats.
func (s *StatsStore) Refresh(ctx context.Context) error {
	ident := s.session.Identity()
	if ident == nil {
		return ErrNotAuthenticated
	}
	gen := s.session.Generation()

	delivered, err := s.api.ListOrders(ctx, client.OrderQuery{Status: "delivered", Limit: deliveredPageSize})
	if err != nil {
		s.handleAuthFailure(err)
		return err
	}
	//件数だけ欲しいのでtotalを読む
	pending, err := s.api.ListOrders(ctx, client.OrderQuery{Status: "pending", Limit: 1})
	if err != nil {
		s.handleAuthFailure(err)
		return err
	}
	processing, err := s.api.ListOrders(ctx, client.OrderQuery{Status: "processing", Limit: 1})
	if err != nil {
		s.handleAuthFailure(err)
		return err
	}

	stats := ComputeStats(ident.UserID, delivered.Items, pending.Total, processing.Total, s.favorites.Count())

	s.mu.Lock()
	if s.session.Generation() != gen {
		s.mu.Unlock()
		return nil
	}
	s.stats = stats
	s.mu.Unlock()
	s.notify()
	return nil
}

// Clear resets the counters on logout.
func (s *StatsStore) Clear() {
	s.mu.Lock()
	s.stats = Stats{}
	s.mu.Unlock()
	s.notify()
}

func (s *StatsStore) handleAuthFailure(err error) {
	if client.ErrorKindOf(err) == client.KindUnauthorized {
		s.session.Invalidate()
	}
}
