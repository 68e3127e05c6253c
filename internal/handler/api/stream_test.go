//go:build unit

package api_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"store-pickup/internal/domain/order"
	"store-pickup/internal/domain/user"
	"store-pickup/internal/handler/api"
	resdto "store-pickup/internal/handler/dto/response"
	"store-pickup/internal/pkg/config"
	"store-pickup/internal/pkg/errs"
	"store-pickup/internal/usecase/queries"
	"store-pickup/internal/usecase/realtime"
	"store-pickup/tests/common/builder"
	"store-pickup/tests/common/httptest"
	queriesmock "store-pickup/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type StreamHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOrderQueries
	hub         *realtime.Hub
	actor       user.Actor
}

func (s *StreamHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.hub = realtime.NewHub(config.RealtimeConfig{BufferSize: 8})
	handler := api.NewStreamHandler(s.hub, s.mockQueries, config.RealtimeConfig{Heartbeat: time.Minute})
	s.actor = customer()

	g := s.router.Group("", fakeAuth(&s.actor))
	g.GET("/orders/stream", handler.StreamMyOrders)
	g.GET("/orders/:id/stream", handler.StreamOrder)
	g.GET("/stores/:storeId/orders/stream", handler.StreamStoreOrders)
}

func (s *StreamHandlerTestSuite) TearDownTest() {
	s.hub.Close()
	s.mockCtrl.Finish()
}

func TestStreamHandlerSuite(t *testing.T) {
	suite.Run(t, new(StreamHandlerTestSuite))
}

type sseEvent struct {
	name string
	data string
}

type sseClient struct {
	cancel  context.CancelFunc
	resp    *http.Response
	scanner *bufio.Scanner
}

func (s *StreamHandlerTestSuite) open(path string) (*sseClient, func()) {
	srv := nethttptest.NewServer(s.router)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path, nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("text/event-stream", resp.Header.Get("Content-Type"))

	c := &sseClient{cancel: cancel, resp: resp, scanner: bufio.NewScanner(resp.Body)}
	return c, func() {
		cancel()
		resp.Body.Close()
		srv.Close()
	}
}

// next skips heartbeats and returns the following named event.
func (s *StreamHandlerTestSuite) next(c *sseClient) sseEvent {
	var ev sseEvent
	for c.scanner.Scan() {
		line := c.scanner.Text()
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, "event:"):
			ev.name = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			ev.data = strings.TrimPrefix(line, "data:")
		}
	}
	s.FailNow("stream ended", "error: %v", c.scanner.Err())
	return sseEvent{}
}

func (s *StreamHandlerTestSuite) decodeSnapshot(ev sseEvent) []resdto.OrderResponse {
	s.Require().Equal("snapshot", ev.name)
	var out []resdto.OrderResponse
	s.Require().NoError(json.Unmarshal([]byte(ev.data), &out))
	return out
}

func (s *StreamHandlerTestSuite) TestStreamOrder() {
	s.Run("snapshot then live status change", func() {
		placed := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).Build()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, placed.ID).Return(placed, nil).Times(2)

		client, closeFn := s.open("/orders/" + placed.ID.String() + "/stream")
		defer closeFn()

		snap := s.decodeSnapshot(s.next(client))
		s.Require().Len(snap, 1)
		s.Equal("placed", snap[0].Status)
		s.Require().NotNil(snap[0].NextStatus)
		s.Equal("preparing", *snap[0].NextStatus)

		preparing := *placed
		preparing.Status = order.StatusPreparing
		preparing.UpdatedAt = placed.UpdatedAt.Add(time.Minute)
		s.Equal(1, s.hub.Publish(&preparing))

		ev := s.next(client)
		s.Equal("order", ev.name)
		s.Contains(ev.data, `"status":"preparing"`)
	})

	s.Run("resync sends a fresh snapshot", func() {
		placed := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).Build()
		ready := *placed
		ready.Status = order.StatusReady
		ready.UpdatedAt = placed.UpdatedAt.Add(time.Hour)
		gomock.InOrder(
			s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, placed.ID).Return(placed, nil).Times(2),
			s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, placed.ID).Return(&ready, nil),
		)

		client, closeFn := s.open("/orders/" + placed.ID.String() + "/stream")
		defer closeFn()

		s.Equal("placed", s.decodeSnapshot(s.next(client))[0].Status)

		s.hub.Resync()

		snap := s.decodeSnapshot(s.next(client))
		s.Require().Len(snap, 1)
		s.Equal("ready", snap[0].Status)
	})

	s.Run("completion ends the stream", func() {
		ready := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).WithStatus(order.StatusReady).Build()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, ready.ID).Return(ready, nil).Times(2)

		client, closeFn := s.open("/orders/" + ready.ID.String() + "/stream")
		defer closeFn()

		s.Equal("ready", s.decodeSnapshot(s.next(client))[0].Status)

		completed := *ready
		completed.Status = order.StatusCompleted
		completed.UpdatedAt = ready.UpdatedAt.Add(time.Minute)
		s.Equal(1, s.hub.Publish(&completed))

		ev := s.next(client)
		s.Equal("order", ev.name)
		s.Contains(ev.data, `"status":"completed"`)
		s.NotContains(ev.data, "nextStatus")
		s.False(client.scanner.Scan(), "stream stays open after completion")
	})

	s.Run("already completed order: snapshot only", func() {
		done := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).WithStatus(order.StatusCompleted).Build()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, done.ID).Return(done, nil).Times(2)

		client, closeFn := s.open("/orders/" + done.ID.String() + "/stream")
		defer closeFn()

		snap := s.decodeSnapshot(s.next(client))
		s.Require().Len(snap, 1)
		s.Nil(snap[0].NextStatus)
		s.False(client.scanner.Scan(), "stream stays open for a completed order")
	})

	s.Run("invisible order: 404 before streaming", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, id).Return(nil, errs.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String()+"/stream", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

func (s *StreamHandlerTestSuite) TestStreamStoreOrders() {
	storeID := uuid.New()

	s.Run("active-only stream drops completed orders", func() {
		s.actor = operatorOf(storeID)
		ready := builder.NewOrderViewBuilder().WithStore(storeID).WithStatus(order.StatusReady).Build()
		s.mockQueries.EXPECT().
			ListByStore(gomock.Any(), s.actor, storeID,
				queries.OrderFilter{Statuses: order.ActiveStatuses()}, nil, queries.MaxListLimit).
			Return([]*queries.OrderView{ready}, nil, nil)

		client, closeFn := s.open("/stores/" + storeID.String() + "/orders/stream?status=active")
		defer closeFn()

		s.Len(s.decodeSnapshot(s.next(client)), 1)

		// other stores never reach this stream
		s.Equal(0, s.hub.Publish(builder.NewOrderViewBuilder().WithStatus(order.StatusPlaced).Build()))

		completed := *ready
		completed.Status = order.StatusCompleted
		completed.UpdatedAt = ready.UpdatedAt.Add(time.Minute)
		s.hub.Publish(&completed)

		ev := s.next(client)
		s.Equal("remove", ev.name)
		s.Contains(ev.data, ready.ID.String())
	})

	s.Run("operator of another store: 403", func() {
		s.actor = operatorOf(uuid.New())

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/stores/"+storeID.String()+"/orders/stream", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("single status filter is rejected", func() {
		s.actor = operatorOf(storeID)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/stores/"+storeID.String()+"/orders/stream?status=ready", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid status filter")
	})
}

func (s *StreamHandlerTestSuite) TestStreamMyOrders() {
	mine := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).Build()
	s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actor, queries.OrderFilter{}, nil, queries.MaxListLimit).
		Return([]*queries.OrderView{mine}, nil, nil)

	client, closeFn := s.open("/orders/stream")
	defer closeFn()

	s.Len(s.decodeSnapshot(s.next(client)), 1)

	fresh := builder.NewOrderViewBuilder().WithUser(s.actor.UserID).Build()
	s.hub.Publish(fresh)

	ev := s.next(client)
	s.Equal("order", ev.name)
	s.Contains(ev.data, fresh.ID.String())
}
