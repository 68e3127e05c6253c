package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/handler/httperr"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/realtime"

	"github.com/gin-gonic/gin"
)

const (
	eventSnapshot = "snapshot"
	eventOrder    = "order"
	eventRemove   = "remove"
)

// StreamHandler pushes order records over server-sent events. Every
// connection first receives a snapshot, then live records. When the hub
// drops the subscription (lagged consumer, lost change feed) the handler
// subscribes again and sends a fresh snapshot.
type StreamHandler struct {
	hub       *realtime.Hub
	q         queries.OrderQueries
	heartbeat time.Duration
}

func NewStreamHandler(hub *realtime.Hub, q queries.OrderQueries, cfg config.RealtimeConfig) *StreamHandler {
	heartbeat := cfg.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &StreamHandler{hub: hub, q: q, heartbeat: heartbeat}
}

// @Summary Stream one order
// @Tags orders
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse "snapshot, order and remove events"
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/stream [get]
func (h *StreamHandler) StreamOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if _, err := h.q.GetByID(c.Request.Context(), actor, id); err != nil {
		abortOrderError(c, err)
		return
	}

	fetch := func(ctx context.Context) ([]*queries.OrderView, error) {
		v, err := h.q.GetByID(ctx, actor, id)
		if err != nil {
			return nil, err
		}
		return []*queries.OrderView{v}, nil
	}
	// a completed order never changes again
	h.serve(c, realtime.ForOrder(id), fetch, func(v *queries.OrderView) bool {
		return v.Status.IsTerminal()
	})
}

// @Summary Stream my orders
// @Tags orders
// @Produce text/event-stream
// @Security BearerAuth
// @Param status query string false "active to follow only orders still in progress"
// @Success 200 {array} resdto.OrderResponse "snapshot, order and remove events"
// @Router /orders/stream [get]
func (h *StreamHandler) StreamMyOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter, activeOnly, ok := streamFilter(c)
	if !ok {
		return
	}

	h.serve(c, realtime.ForUser(actor.UserID, activeOnly), func(ctx context.Context) ([]*queries.OrderView, error) {
		views, _, err := h.q.ListByUser(ctx, actor, filter, nil, queries.MaxListLimit)
		return views, err
	}, nil)
}

// @Summary Stream a store's orders
// @Tags orders
// @Produce text/event-stream
// @Security BearerAuth
// @Param storeId path string true "Store ID"
// @Param status query string false "active to follow only orders still in progress"
// @Success 200 {array} resdto.OrderResponse "snapshot, order and remove events"
// @Failure 403 {object} httperr.Response
// @Router /stores/{storeId}/orders/stream [get]
func (h *StreamHandler) StreamStoreOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	storeID, ok := pathUUID(c, "storeId")
	if !ok {
		return
	}
	if !actor.CanOperateStore(storeID) {
		httperr.AbortWithError(c, http.StatusForbidden, errs.ErrOrderAccess, "Insufficient permissions", nil)
		return
	}
	filter, activeOnly, ok := streamFilter(c)
	if !ok {
		return
	}

	h.serve(c, realtime.ForStore(storeID, activeOnly), func(ctx context.Context) ([]*queries.OrderView, error) {
		views, _, err := h.q.ListByStore(ctx, actor, storeID, filter, nil, queries.MaxListLimit)
		return views, err
	}, nil)
}

// streamFilter accepts "" or "active"; a stream cannot follow a single status.
func streamFilter(c *gin.Context) (queries.OrderFilter, bool, bool) {
	status := c.Query("status")
	if status != "" && status != queries.StatusFilterActive {
		httperr.AbortWithError(c, http.StatusBadRequest, queries.ErrInvalidStatusFilter, "Invalid status filter", nil)
		return queries.OrderFilter{}, false, false
	}
	filter, err := queries.ParseOrderFilter(status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status filter", nil)
		return queries.OrderFilter{}, false, false
	}
	return filter, status == queries.StatusFilterActive, true
}

// serve streams until the client leaves or finished, when set, reports true
// for a record that was sent.
func (h *StreamHandler) serve(c *gin.Context, filter realtime.Filter, fetch realtime.FetchFunc, finished func(*queries.OrderView) bool) {
	ctx := c.Request.Context()
	obs := realtime.NewObserver(filter)
	started := false

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		// subscribe before fetching so nothing committed in between is missed
		sub, err := h.hub.Subscribe(filter)
		if err != nil {
			if !started {
				httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Realtime updates unavailable", nil)
			}
			return
		}

		if err := obs.Resync(ctx, fetch); err != nil {
			sub.Close()
			if !started {
				abortOrderError(c, err)
				return
			}
			slog.WarnContext(ctx, "stream resync failed, closing", "error", err.Error())
			return
		}

		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
			started = true
		}
		snapshot := obs.Snapshot()
		c.SSEvent(eventSnapshot, resdto.FromOrderViews(snapshot))
		c.Writer.Flush()
		if finished != nil && len(snapshot) > 0 && allFinished(snapshot, finished) {
			sub.Close()
			return
		}

		err = h.pump(c, sub, obs, heartbeat.C, finished)
		sub.Close()
		if errors.Is(err, realtime.ErrSubscriberLagged) || errors.Is(err, realtime.ErrResyncRequired) {
			slog.InfoContext(ctx, "stream resubscribing", "reason", err.Error())
			continue
		}
		return
	}
}

// pump forwards records until the subscription ends or the client leaves.
func (h *StreamHandler) pump(
	c *gin.Context,
	sub *realtime.Subscription,
	obs *realtime.Observer,
	heartbeat <-chan time.Time,
	finished func(*queries.OrderView) bool,
) error {
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-heartbeat:
			if _, err := io.WriteString(c.Writer, ": heartbeat\n\n"); err != nil {
				return err
			}
			c.Writer.Flush()
		case v, ok := <-sub.C():
			if !ok {
				return sub.Err()
			}
			switch obs.Apply(v) {
			case realtime.ChangeUpsert:
				c.SSEvent(eventOrder, resdto.FromOrderView(v))
			case realtime.ChangeRemove:
				c.SSEvent(eventRemove, gin.H{"id": v.ID})
			default:
				continue
			}
			c.Writer.Flush()
			if finished != nil && finished(v) {
				return nil
			}
		}
	}
}

func allFinished(vs []*queries.OrderView, finished func(*queries.OrderView) bool) bool {
	for _, v := range vs {
		if !finished(v) {
			return false
		}
	}
	return true
}
