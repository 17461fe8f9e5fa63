package store

import (
	"context"
	"sync"

	"app/internal/client"
)

// AddressBook mirrors the server-held address list. CRUD is non-optimistic:
// local state changes only after the server confirms, so a failure leaves
// nothing to roll back.
//
// Invariant: at most one address has IsDefault at any observable instant.
// The server does the authoritative sibling clearing; the mirror applies
// the same clearing as one slice replacement, never as per-row updates a
// concurrent reader could see half-applied.
type AddressBook struct {
	Notifier

	api     *client.Client
	session *Session

	mu         sync.Mutex
	addresses  []client.Address
	selectedID int64 // 0 = none; SelectedはIDから都度引く（弱参照）
}

func NewAddressBook(api *client.Client, session *Session) *AddressBook {
	return &AddressBook{api: api, session: session}
}

// FetchAll replaces the mirror with the server's list. If the current
// selection is unset or its id no longer exists, selection falls back to
// the server-flagged default, else none.
func (b *AddressBook) FetchAll(ctx context.Context) error {
	if !b.session.Authenticated() {
		return ErrNotAuthenticated
	}
	gen := b.session.Generation()

	list, err := b.api.ListAddresses(ctx)
	if err != nil {
		b.handleAuthFailure(err)
		return err
	}

	b.mu.Lock()
	if b.session.Generation() != gen {
		//ログアウト/再ログイン後に届いた古い応答は捨てる
		b.mu.Unlock()
		return nil
	}
	b.addresses = list
	if b.lookupLocked(b.selectedID) == nil {
		b.selectedID = defaultIDOf(list)
	}
	b.mu.Unlock()
	b.notify()
	return nil
}

// Create sends the address to the server and inserts the confirmed row.
// A created default clears every sibling flag in the same transition and
// becomes the selection.
func (b *AddressBook) Create(ctx context.Context, in client.AddressInput) (*client.Address, error) {
	if !b.session.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	gen := b.session.Generation()

	created, err := b.api.CreateAddress(ctx, in)
	if err != nil {
		b.handleAuthFailure(err)
		return nil, err
	}

	b.mu.Lock()
	if b.session.Generation() != gen {
		b.mu.Unlock()
		return created, nil
	}
	next := make([]client.Address, 0, len(b.addresses)+1)
	for _, a := range b.addresses {
		if created.IsDefault {
			a.IsDefault = false
		}
		next = append(next, a)
	}
	next = append(next, *created)
	b.addresses = next
	if created.IsDefault || b.selectedID == 0 {
		b.selectedID = created.ID
	}
	b.mu.Unlock()
	b.notify()
	return created, nil
}

// Update applies the same default-propagation rule as Create. Selection is
// a lookup key, so an edited selected address is observed fresh
// automatically.
func (b *AddressBook) Update(ctx context.Context, id int64, in client.AddressInput) (*client.Address, error) {
	if !b.session.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	gen := b.session.Generation()

	updated, err := b.api.UpdateAddress(ctx, id, in)
	if err != nil {
		b.handleAuthFailure(err)
		return nil, err
	}

	b.mu.Lock()
	if b.session.Generation() != gen {
		b.mu.Unlock()
		return updated, nil
	}
	b.applyUpdateLocked(*updated)
	b.mu.Unlock()
	b.notify()
	return updated, nil
}

// Delete removes locally only after server confirmation: the server can
// reject with a referential conflict (address used by an order) that the
// client cannot predict. When the deleted address was selected, selection
// falls back to the remaining default, else none.
func (b *AddressBook) Delete(ctx context.Context, id int64) error {
	if !b.session.Authenticated() {
		return ErrNotAuthenticated
	}
	gen := b.session.Generation()

	if err := b.api.DeleteAddress(ctx, id); err != nil {
		b.handleAuthFailure(err)
		return err
	}

	b.mu.Lock()
	if b.session.Generation() != gen {
		b.mu.Unlock()
		return nil
	}
	next := make([]client.Address, 0, len(b.addresses))
	for _, a := range b.addresses {
		if a.ID != id {
			next = append(next, a)
		}
	}
	b.addresses = next
	if b.selectedID == id {
		b.selectedID = defaultIDOf(next)
	}
	b.mu.Unlock()
	b.notify()
	return nil
}

// SetDefault marks the address as default, keeping its other fields.
func (b *AddressBook) SetDefault(ctx context.Context, id int64) error {
	if !b.session.Authenticated() {
		return ErrNotAuthenticated
	}
	gen := b.session.Generation()

	updated, err := b.api.SetDefaultAddress(ctx, id)
	if err != nil {
		b.handleAuthFailure(err)
		return err
	}

	b.mu.Lock()
	if b.session.Generation() != gen {
		b.mu.Unlock()
		return nil
	}
	b.applyUpdateLocked(*updated)
	b.mu.Unlock()
	b.notify()
	return nil
}

// Select points the checkout selection at an address already in the
// mirror. Unknown ids are ignored.
func (b *AddressBook) Select(id int64) {
	b.mu.Lock()
	if b.lookupLocked(id) == nil || b.selectedID == id {
		b.mu.Unlock()
		return
	}
	b.selectedID = id
	b.mu.Unlock()
	b.notify()
}

// Selected resolves the selection against the current mirror, so callers
// never observe stale address fields.
func (b *AddressBook) Selected() *client.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.lookupLocked(b.selectedID)
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

// Addresses returns the current snapshot slice.
func (b *AddressBook) Addresses() []client.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addresses
}

// Clear empties the mirror on logout.
func (b *AddressBook) Clear() {
	b.mu.Lock()
	b.addresses = nil
	b.selectedID = 0
	b.mu.Unlock()
	b.notify()
}

func (b *AddressBook) applyUpdateLocked(updated client.Address) {
	next := make([]client.Address, 0, len(b.addresses))
	for _, a := range b.addresses {
		switch {
		case a.ID == updated.ID:
			next = append(next, updated)
		case updated.IsDefault:
			a.IsDefault = false
			next = append(next, a)
		default:
			next = append(next, a)
		}
	}
	b.addresses = next
}

func (b *AddressBook) lookupLocked(id int64) *client.Address {
	if id == 0 {
		return nil
	}
	for i := range b.addresses {
		if b.addresses[i].ID == id {
			return &b.addresses[i]
		}
	}
	return nil
}

func (b *AddressBook) handleAuthFailure(err error) {
	if client.ErrorKindOf(err) == client.KindUnauthorized {
		b.session.Invalidate()
	}
}

func defaultIDOf(list []client.Address) int64 {
	for _, a := range list {
		if a.IsDefault {
			return a.ID
		}
	}
	return 0
}
