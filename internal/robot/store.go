package robot

import "context"

// Store persists robots. Writes are atomic at single-record granularity;
// concurrent writers are last-writer-wins, no version token exists.
type Store interface {
	Create(ctx context.Context, r Robot) error
	FindByID(ctx context.Context, id string) (Robot, error)
	List(ctx context.Context) ([]Robot, error)
	ListByAdmin(ctx context.Context, adminID string) ([]Robot, error)
	// Update overwrites an existing robot. Returns sentinel.ErrNotFound when
	// the id is unknown.
	Update(ctx context.Context, r Robot) error
	// Delete removes a robot; deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
}
