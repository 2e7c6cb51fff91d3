package queue

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/Khkimov/restaurant-table-ms/internal/model"
)

// --- Fakes ---

type fakeSource struct {
    pending []model.OutboxEvent
    marked  []uint64
}

func (f *fakeSource) Pending(_ context.Context, limit int) ([]model.OutboxEvent, error) {
    if len(f.pending) > limit {
        return f.pending[:limit], nil
    }
    return f.pending, nil
}

func (f *fakeSource) MarkPublished(_ context.Context, ids []uint64) error {
    f.marked = append(f.marked, ids...)
    return nil
}

type fakePublisher struct {
    published []string
    failOn    string
}

func (f *fakePublisher) Publish(_ context.Context, event string) error {
    if event == f.failOn {
        return errors.New("broker down")
    }
    f.published = append(f.published, event)
    return nil
}

func pendingEvents(n int) []model.OutboxEvent {
    events := make([]model.OutboxEvent, 0, n)
    for i := 0; i < n; i++ {
        name := model.EventTableUpdated
        if i%2 == 1 {
            name = model.EventReservationUpdated
        }
        events = append(events, model.OutboxEvent{
            ID:        uint64(i + 1),
            Event:     name,
            CreatedAt: time.Now().UTC(),
        })
    }
    return events
}

// --- Tests ---

func TestDrain_PublishesAndMarksAll(t *testing.T) {
    src := &fakeSource{pending: pendingEvents(3)}
    pub := &fakePublisher{}
    d := NewDispatcher(src, pub, time.Second, 50)

    if err := d.Drain(context.Background()); err != nil {
        t.Fatalf("Drain() error = %v", err)
    }
    if len(pub.published) != 3 {
        t.Errorf("published %d events, want 3", len(pub.published))
    }
    if len(src.marked) != 3 {
        t.Fatalf("marked %d events, want 3", len(src.marked))
    }
    for i, id := range src.marked {
        if id != uint64(i+1) {
            t.Errorf("marked[%d] = %d, want %d", i, id, i+1)
        }
    }
}

func TestDrain_PartialFailureKeepsFailedPending(t *testing.T) {
    src := &fakeSource{pending: pendingEvents(4)}
    // events 2 and 4 are reservation-updated; the publisher rejects them
    pub := &fakePublisher{failOn: model.EventReservationUpdated}
    d := NewDispatcher(src, pub, time.Second, 50)

    if err := d.Drain(context.Background()); err != nil {
        t.Fatalf("Drain() error = %v", err)
    }
    // event 1 succeeded before the failure on event 2 stopped the batch
    if len(src.marked) != 1 || src.marked[0] != 1 {
        t.Errorf("marked = %v, want [1]", src.marked)
    }
    if len(pub.published) != 1 {
        t.Errorf("published = %v, want one event", pub.published)
    }
}

func TestDrain_EmptyOutbox(t *testing.T) {
    src := &fakeSource{}
    pub := &fakePublisher{}
    d := NewDispatcher(src, pub, time.Second, 50)

    if err := d.Drain(context.Background()); err != nil {
        t.Fatalf("Drain() error = %v", err)
    }
    if len(pub.published) != 0 || len(src.marked) != 0 {
        t.Errorf("published = %v, marked = %v, want none", pub.published, src.marked)
    }
}

func TestDrain_RespectsBatchLimit(t *testing.T) {
    src := &fakeSource{pending: pendingEvents(10)}
    pub := &fakePublisher{}
    d := NewDispatcher(src, pub, time.Second, 4)

    if err := d.Drain(context.Background()); err != nil {
        t.Fatalf("Drain() error = %v", err)
    }
    if len(pub.published) != 4 {
        t.Errorf("published %d events, want 4", len(pub.published))
    }
}

func TestRun_StopsOnContextCancel(t *testing.T) {
    src := &fakeSource{}
    pub := &fakePublisher{}
    d := NewDispatcher(src, pub, time.Millisecond, 50)

    ctx, cancel := context.WithCancel(context.Background())
    done := make(chan struct{})
    go func() {
        d.Run(ctx)
        close(done)
    }()
    cancel()
    select {
    case <-done:
    case <-time.After(time.Second):
        t.Fatal("Run did not stop after context cancel")
    }
}
