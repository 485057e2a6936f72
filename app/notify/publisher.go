package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/sitrep/app/news"
)

type Publisher interface {
	ID() string
	Publish(ctx context.Context, evt Event) error
}

// Dispatcher sends snapshot events to every configured publisher. Delivery
// failures are logged and never reach the caller.
type Dispatcher struct {
	publishers []Publisher
	timeout    time.Duration
}

func NewDispatcher(publishers []Publisher) *Dispatcher {
	return &Dispatcher{publishers: publishers, timeout: 30 * time.Second}
}

// BuildPublishers creates a publisher for every enabled config.
func BuildPublishers(ctx context.Context, configs []PublisherConfig) ([]Publisher, error) {
	var publishers []Publisher
	for _, cfg := range Enabled(configs) {
		var (
			publisher Publisher
			err       error
		)

		switch cfg.Type {
		case TypeHTTP:
			publisher = newWebhookPublisher(cfg.ID, cfg.HTTP)
		case TypeQueue:
			publisher, err = newQueuePublisher(ctx, cfg)
		default:
			err = fmt.Errorf("type %q not supported", cfg.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to build publisher %q: %w", cfg.ID, err)
		}

		publishers = append(publishers, publisher)
	}
	return publishers, nil
}

func (d *Dispatcher) SnapshotPublished(ctx context.Context, snap news.Snapshot, archiveDate string) {
	if d == nil || len(d.publishers) == 0 {
		return
	}
	d.Publish(ctx, NewSnapshotEvent(snap, archiveDate))
}

// Publish delivers evt to all publishers concurrently and reports how many
// deliveries failed.
func (d *Dispatcher) Publish(ctx context.Context, evt Event) int {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	errs := make([]error, len(d.publishers))

	var wg sync.WaitGroup
	for i, publisher := range d.publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = publisher.Publish(ctx, evt)
		}()
	}
	wg.Wait()

	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			slog.Warn("Notification failed", "publisher", d.publishers[i].ID(), "event", evt.ID, "error", err)
		} else {
			slog.Debug("Notification delivered", "publisher", d.publishers[i].ID(), "event", evt.ID)
		}
	}
	return failed
}
