// Package session stores the single active user record. No session means guest.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imrishuroy/quickstore/internal/orders"
	"github.com/imrishuroy/quickstore/internal/store"
)

// ErrUnauthenticated is returned when an operation needs a session and none exists.
var ErrUnauthenticated = errors.New("not logged in")

// RoleCustomer is the role every login receives.
const RoleCustomer = "customer"

// User is the persisted session record.
type User struct {
	ID      string          `json:"id" validate:"required"`
	Mobile  string          `json:"mobile" validate:"required"`
	Email   string          `json:"email"`
	Name    string          `json:"name"`
	Role    string          `json:"role" validate:"required"`
	Address *orders.Address `json:"address,omitempty"`
}

// Patch holds the profile fields UpdateProfile may change.
type Patch struct {
	Name    *string
	Email   *string
	Address *orders.Address
}

// Repository owns the current-session record.
type Repository struct {
	store *store.Store
	newID store.IDFunc
}

// NewRepository creates a session Repository. newID nil uses store.NewID.
func NewRepository(s *store.Store, newID store.IDFunc) *Repository {
	if newID == nil {
		newID = store.NewID
	}
	return &Repository{store: s, newID: newID}
}

// Current returns the logged-in user, or nil for a guest.
func (r *Repository) Current(ctx context.Context) (*User, error) {
	return store.ReadRecord[User](ctx, r.store, store.Session)
}

// Require returns the logged-in user or ErrUnauthenticated.
func (r *Repository) Require(ctx context.Context) (User, error) {
	u, err := r.Current(ctx)
	if err != nil {
		return User{}, err
	}
	if u == nil {
		return User{}, ErrUnauthenticated
	}
	return *u, nil
}

// Login replaces any existing session with a fresh user for mobile.
// name defaults to "User <last four digits>".
func (r *Repository) Login(ctx context.Context, mobile, name, email string) (User, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return User{}, fmt.Errorf("%w: mobile is required", store.ErrInvalid)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User " + lastDigits(mobile, 4)
	}
	u := User{
		ID:     r.newID("U"),
		Mobile: mobile,
		Email:  strings.TrimSpace(email),
		Name:   name,
		Role:   RoleCustomer,
	}
	if err := store.WriteRecord(ctx, r.store, store.Session, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdateProfile merges patch into the current user.
func (r *Repository) UpdateProfile(ctx context.Context, patch Patch) (User, error) {
	u, err := r.Require(ctx)
	if err != nil {
		return User{}, err
	}
	if patch.Name != nil {
		u.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		u.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Address != nil {
		addr := *patch.Address
		u.Address = &addr
	}
	if err := r.store.Validate(u); err != nil {
		return User{}, fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}
	if err := store.WriteRecord(ctx, r.store, store.Session, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Logout clears the session.
func (r *Repository) Logout(ctx context.Context) error {
	return r.store.ClearRecord(ctx, store.Session)
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
