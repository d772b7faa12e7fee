package admin

import (
	"context"
)

// Store persists admin accounts. Email uniqueness is enforced at write time
// by every implementation; lookups by email are case-insensitive.
type Store interface {
	// Create inserts a new admin. Returns sentinel.ErrAlreadyUsed (wrapped)
	// when the email is taken.
	Create(ctx context.Context, a Admin) error
	FindByID(ctx context.Context, id string) (Admin, error)
	FindByEmail(ctx context.Context, email string) (Admin, error)
	// Update overwrites an existing admin. Returns sentinel.ErrNotFound when
	// the id is unknown.
	Update(ctx context.Context, a Admin) error
	List(ctx context.Context) ([]Admin, error)
}
