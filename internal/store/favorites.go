package store

import (
	"context"
	"sync"

	"app/internal/client"
)

// Favorites tracks the authenticated user's favorite product set with
// optimistic toggling. Add/Remove mutate the local set before the request
// resolves; a server rejection restores the prior state.
//
// Toggles on the same product id are serialized: a second toggle waits for
// the in-flight one to commit or revert instead of racing it. Toggles on
// different ids proceed independently.
type Favorites struct {
	Notifier

	api     *client.Client
	session *Session

	mu sync.Mutex
	// productID -> favorite record id。楽観追加直後はまだ採番前なので0。
	byProduct map[int64]int64

	lockMu  sync.Mutex
	byIDOps map[int64]*sync.Mutex
}

func NewFavorites(api *client.Client, session *Session) *Favorites {
	return &Favorites{
		api:       api,
		session:   session,
		byProduct: make(map[int64]int64),
		byIDOps:   make(map[int64]*sync.Mutex),
	}
}

// IsFavorite is a pure local membership check. Always false when logged out.
func (f *Favorites) IsFavorite(productID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byProduct[productID]
	return ok
}

// Count is the wishlist size.
func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byProduct)
}

// ProductIDs returns the current member set as a fresh slice.
func (f *Favorites) ProductIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.byProduct))
	for id := range f.byProduct {
		ids = append(ids, id)
	}
	return ids
}

// Add favorites the product optimistically, then confirms with the server.
// On rejection the product is removed again and the error returned.
// Adding an existing favorite is a no-op.
func (f *Favorites) Add(ctx context.Context, productID int64) error {
	if !f.session.Authenticated() {
		return ErrNotAuthenticated
	}
	unlock := f.lockProduct(productID)
	defer unlock()

	gen := f.session.Generation()

	f.mu.Lock()
	if _, ok := f.byProduct[productID]; ok {
		f.mu.Unlock()
		return nil
	}
	//楽観追加（record idは採番待ちの0）
	f.byProduct[productID] = 0
	f.mu.Unlock()
	f.notify()

	created, err := f.api.AddFavorite(ctx, productID)

	f.mu.Lock()
	if f.session.Generation() != gen {
		//セッションが切り替わった。今のsetはもう別物なので触らない。
		f.mu.Unlock()
		f.handleAuthFailure(err)
		return err
	}
	if err != nil {
		//ロールバック：追加前の状態（未登録）へ戻す
		delete(f.byProduct, productID)
		f.mu.Unlock()
		f.notify()
		f.handleAuthFailure(err)
		return err
	}
	//コミット：採番されたrecord idを控える
	if _, ok := f.byProduct[productID]; ok {
		f.byProduct[productID] = created.ID
	}
	f.mu.Unlock()
	return nil
}

// Remove unfavorites the product optimistically. The backend stores
// favorites as records with their own ids, so removal may need a list
// lookup to resolve the record id first; the lookup result is applied only
// if the product is still absent from the local set, so a product the user
// re-favorited in the meantime is never deleted by a stale lookup.
func (f *Favorites) Remove(ctx context.Context, productID int64) error {
	if !f.session.Authenticated() {
		return ErrNotAuthenticated
	}
	unlock := f.lockProduct(productID)
	defer unlock()

	gen := f.session.Generation()

	f.mu.Lock()
	recordID, ok := f.byProduct[productID]
	if !ok {
		f.mu.Unlock()
		return nil
	}
	//楽観削除
	delete(f.byProduct, productID)
	f.mu.Unlock()
	f.notify()

	if recordID == 0 {
		//採番前に外した（addの応答前にremoveが走るのは同一idの直列化で
		//防いでいるので、ここに来るのはrefresh漏れ等の異常系のみ）。
		//record idをサーバの一覧から引き直す。
		list, err := f.api.ListFavorites(ctx)
		if err != nil {
			f.rollbackRemove(ctx, gen, productID, 0, err)
			return err
		}
		for _, fav := range list {
			if fav.ProductID == productID {
				recordID = fav.ID
				break
			}
		}
		//lookup中にユーザーが再登録していたら、そのレコードを消してはいけない
		f.mu.Lock()
		_, reAdded := f.byProduct[productID]
		f.mu.Unlock()
		if reAdded || recordID == 0 {
			return nil
		}
	}

	err := f.api.RemoveFavorite(ctx, recordID)
	if err != nil && client.ErrorKindOf(err) != client.KindNotFound {
		f.rollbackRemove(ctx, gen, productID, recordID, err)
		return err
	}
	return nil
}

// Refresh replaces the local set with the server's. Used after login and
// after any reconciliation ambiguity.
func (f *Favorites) Refresh(ctx context.Context) error {
	if !f.session.Authenticated() {
		return ErrNotAuthenticated
	}
	gen := f.session.Generation()

	list, err := f.api.ListFavorites(ctx)
	if err != nil {
		f.handleAuthFailure(err)
		return err
	}

	next := make(map[int64]int64, len(list))
	for _, fav := range list {
		next[fav.ProductID] = fav.ID
	}

	f.mu.Lock()
	if f.session.Generation() != gen {
		f.mu.Unlock()
		return nil
	}
	f.byProduct = next
	f.mu.Unlock()
	f.notify()
	return nil
}

// Clear empties the set on logout.
func (f *Favorites) Clear() {
	f.mu.Lock()
	f.byProduct = make(map[int64]int64)
	f.mu.Unlock()
	f.notify()
}

func (f *Favorites) rollbackRemove(ctx context.Context, gen uint64, productID, recordID int64, cause error) {
	f.mu.Lock()
	if f.session.Generation() != gen {
		f.mu.Unlock()
		f.handleAuthFailure(cause)
		return
	}
	if _, ok := f.byProduct[productID]; !ok {
		f.byProduct[productID] = recordID
	}
	f.mu.Unlock()
	f.notify()
	f.handleAuthFailure(cause)
}

// lockProduct serializes toggles per product id.
func (f *Favorites) lockProduct(productID int64) func() {
	f.lockMu.Lock()
	m, ok := f.byIDOps[productID]
	if !ok {
		m = &sync.Mutex{}
		f.byIDOps[productID] = m
	}
	f.lockMu.Unlock()

	m.Lock()
	return m.Unlock
}

func (f *Favorites) handleAuthFailure(err error) {
	if client.ErrorKindOf(err) == client.KindUnauthorized {
		f.session.Invalidate()
	}
}
