package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"store-pickup/internal/pkg/config"
	"store-pickup/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const minReconnectDelay = 100 * time.Millisecond

type OrderFetcher interface {
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.OrderView, error)
}

type Publisher interface {
	Publish(v *queries.OrderView) int
	Resync()
}

type DialFunc func(ctx context.Context) (*pgx.Conn, error)

// Listener turns Postgres NOTIFY events on the order channel into full order
// records on the hub. It is the only publisher, so every delivery reflects a
// committed write.
type Listener struct {
	dial    DialFunc
	channel string
	maxGap  time.Duration
	orders  OrderFetcher
	hub     Publisher

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewListener(dbCfg config.DBConfig, cfg config.RealtimeConfig, orders OrderFetcher, hub Publisher) *Listener {
	dsn := dbCfg.BuildDSN()
	return NewListenerWithDial(func(ctx context.Context) (*pgx.Conn, error) {
		return pgx.Connect(ctx, dsn)
	}, cfg, orders, hub)
}

func NewListenerWithDial(dial DialFunc, cfg config.RealtimeConfig, orders OrderFetcher, hub Publisher) *Listener {
	maxGap := cfg.ReconnectMaxGap
	if maxGap < minReconnectDelay {
		maxGap = minReconnectDelay
	}
	return &Listener{
		dial:    dial,
		channel: cfg.Channel,
		maxGap:  maxGap,
		orders:  orders,
		hub:     hub,
	}
}

func (l *Listener) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.Run(ctx)
	}()
	return nil
}

func (l *Listener) Stop(ctx context.Context) error {
	if l.cancel != nil {
		l.cancel()
	}
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run listens until ctx ends, reconnecting with capped exponential backoff.
// Every successful reconnect triggers a hub resync because notifications sent
// while disconnected are lost.
func (l *Listener) Run(ctx context.Context) {
	delay := minReconnectDelay
	connected := false

	for {
		err := l.listen(ctx, func() {
			if connected {
				slog.Info("order change feed reconnected, resyncing subscribers")
				l.hub.Resync()
			}
			connected = true
			delay = minReconnectDelay
		})
		if ctx.Err() != nil {
			return
		}

		slog.Warn("order change feed disconnected",
			"error", errString(err),
			"retry_in_ms", delay.Milliseconds())

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, l.maxGap)
	}
}

func (l *Listener) listen(ctx context.Context, onListening func()) error {
	conn, err := l.dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return err
	}
	slog.Info("listening for order changes", "channel", l.channel)
	onListening()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.handle(ctx, n.Payload)
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	id, err := uuid.Parse(payload)
	if err != nil {
		slog.Warn("ignoring malformed order notification", "payload", payload)
		return
	}

	view, err := l.orders.GetByIDSystem(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// the change is lost for current subscribers; make them re-fetch
		slog.Error("failed to load changed order, resyncing subscribers",
			"order_id", id.String(),
			"error", err.Error())
		l.hub.Resync()
		return
	}

	delivered := l.hub.Publish(view)
	slog.Debug("order change published",
		"order_id", id.String(),
		"status", view.Status.String(),
		"deliveries", delivered)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
