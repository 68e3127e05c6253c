//go:build unit

package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/queries"
	"store-pickup/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

type fakeFetcher struct {
	views map[uuid.UUID]*queries.OrderView
	err   error
}

func (f *fakeFetcher) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.views[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	return v, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*queries.OrderView
	resyncs   int
}

func (p *fakePublisher) Publish(v *queries.OrderView) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, v)
	return 1
}

func (p *fakePublisher) Resync() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resyncs++
}

func (p *fakePublisher) resyncCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resyncs
}

func TestHandle_PublishesFullRecord(t *testing.T) {
	view := builder.NewOrderViewBuilder().Build()
	pub := &fakePublisher{}
	l := NewListenerWithDial(nil, config.RealtimeConfig{Channel: "order_changes"},
		&fakeFetcher{views: map[uuid.UUID]*queries.OrderView{view.ID: view}}, pub)

	l.handle(context.Background(), view.ID.String())

	assert.Equal(t, []*queries.OrderView{view}, pub.published)
	assert.Zero(t, pub.resyncs)
}

func TestHandle_IgnoresMalformedPayload(t *testing.T) {
	pub := &fakePublisher{}
	l := NewListenerWithDial(nil, config.RealtimeConfig{}, &fakeFetcher{}, pub)

	l.handle(context.Background(), "not-a-uuid")

	assert.Empty(t, pub.published)
	assert.Zero(t, pub.resyncs)
}

func TestHandle_FetchFailureForcesResync(t *testing.T) {
	pub := &fakePublisher{}
	l := NewListenerWithDial(nil, config.RealtimeConfig{}, &fakeFetcher{err: errors.New("db down")}, pub)

	l.handle(context.Background(), uuid.NewString())

	assert.Empty(t, pub.published)
	assert.Equal(t, 1, pub.resyncs)
}

func TestRun_RetriesUntilCancelled(t *testing.T) {
	var (
		mu    sync.Mutex
		dials int
	)
	ctx, cancel := context.WithCancel(context.Background())
	dial := func(context.Context) (*pgx.Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		dials++
		if dials == 3 {
			cancel()
		}
		return nil, errors.New("connection refused")
	}
	pub := &fakePublisher{}
	l := NewListenerWithDial(dial, config.RealtimeConfig{ReconnectMaxGap: 200 * time.Millisecond}, &fakeFetcher{}, pub)

	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, dials)
	assert.Zero(t, pub.resyncCount(), "never connected, nothing to resync")
}
