package waste

import "context"

// Store persists waste records. Writes are atomic per record; concurrent
// writers are last-writer-wins.
type Store interface {
	Create(ctx context.Context, rec Record) error
	FindByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByRobot(ctx context.Context, robotID string) ([]Record, error)
	// Update overwrites an existing record. Returns sentinel.ErrNotFound when
	// the id is unknown.
	Update(ctx context.Context, rec Record) error
	// Delete removes a record; deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
	// Counts aggregates totals by status.
	Counts(ctx context.Context) (Stats, error)
}
