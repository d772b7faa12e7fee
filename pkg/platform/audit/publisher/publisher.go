package publisher

import (
	"context"
	"sync"
	"time"

	audit "wastebot/pkg/platform/audit"
)

// Publisher delivers audit events to a store, either synchronously or through
// a buffered channel drained by a background goroutine. Emission is
// best-effort; a full buffer drops the event rather than blocking the caller.
type Publisher struct {
	store audit.Store

	inbox  chan audit.Event
	done   chan struct{}
	closed sync.Once
	wg     sync.WaitGroup
}

type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous delivery with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.inbox {
		// Detached from the request context: the request may already be done.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = p.store.Append(ctx, event)
		cancel()
	}
}

// Emit records an event. In async mode a full buffer drops the event; in
// sync mode store errors are returned to the caller, who should log and
// continue rather than fail the request.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.inbox != nil {
		select {
		case p.inbox <- event:
		default:
			// Buffer full: drop. Audit must not apply backpressure.
		}
		return nil
	}
	return p.store.Append(ctx, event)
}

// List exposes the underlying store's subject query.
func (p *Publisher) List(ctx context.Context, subject string) ([]audit.Event, error) {
	return p.store.ListBySubject(ctx, subject)
}

// Close drains any buffered events and stops the background goroutine.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
		close(p.done)
	})
}
