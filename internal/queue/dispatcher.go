package queue

import (
    "context"
    "log"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// EventSource supplies pending outbox events and records which ones
// were delivered. Implemented by repository.OutboxRepo.
type EventSource interface {
    Pending(ctx context.Context, limit int) ([]model.OutboxEvent, error)
    MarkPublished(ctx context.Context, ids []uint64) error
}

// EventPublisher delivers one event to the broadcast channel.
// Implemented by Publisher.
type EventPublisher interface {
    Publish(ctx context.Context, event string) error
}

// Dispatcher drains the transactional outbox into the broker. It polls
// on a fixed interval, publishes each pending event and marks the
// delivered ones. Publish failures leave the event pending for the next
// tick, so delivery is at-least-once and retry/backoff policy lives
// here, outside the mutating transactions.
type Dispatcher struct {
    src      EventSource
    pub      EventPublisher
    interval time.Duration
    batch    int
}

// NewDispatcher constructs a Dispatcher. Interval and batch fall back
// to sane defaults when non-positive.
func NewDispatcher(src EventSource, pub EventPublisher, interval time.Duration, batch int) *Dispatcher {
    if src == nil || pub == nil {
        panic("nil dependency passed to NewDispatcher")
    }
    if interval <= 0 {
        interval = time.Second
    }
    if batch <= 0 {
        batch = 50
    }
    return &Dispatcher{src: src, pub: pub, interval: interval, batch: batch}
}

// Run polls until the context is cancelled. It is meant to run in its
// own goroutine alongside the HTTP server.
func (d *Dispatcher) Run(ctx context.Context) {
    ticker := time.NewTicker(d.interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if err := d.Drain(ctx); err != nil {
                log.Printf("outbox-dispatcher: drain failed: %v", err)
            }
        }
    }
}

// Drain publishes one batch of pending events and marks the delivered
// ones. Events that fail to publish stay pending; already-delivered
// events in the same batch are still marked, so a partial broker
// failure results in re-delivery of the failed events only.
func (d *Dispatcher) Drain(ctx context.Context) error {
    events, err := d.src.Pending(ctx, d.batch)
    if err != nil {
        return err
    }
    delivered := make([]uint64, 0, len(events))
    for _, ev := range events {
        if err := d.pub.Publish(ctx, ev.Event); err != nil {
            log.Printf("outbox-dispatcher: publish %q (id=%d) failed: %v", ev.Event, ev.ID, err)
            break
        }
        delivered = append(delivered, ev.ID)
    }
    return d.src.MarkPublished(ctx, delivered)
}
