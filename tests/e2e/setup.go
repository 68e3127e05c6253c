//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"store-pickup/cmd/bootstrap"
	"store-pickup/cmd/bootstrap/components"
	"store-pickup/internal/pkg/config"
	"store-pickup/tests/common/authtest"
	"store-pickup/tests/common/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Fake payment provider
// ------------------------------------------------------------

// PaymentProvider answers capture calls and refuses methods passed to DeclineMethod.
type PaymentProvider struct {
	mu       sync.Mutex
	declined map[string]bool
	captures atomic.Int32
	server   *httptest.Server
}

func newPaymentProvider() *PaymentProvider {
	p := &PaymentProvider{declined: map[string]bool{}}
	p.server = httptest.NewServer(http.HandlerFunc(p.handle))
	return p
}

func (p *PaymentProvider) handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	p.mu.Lock()
	declined := p.declined[req.PaymentMethod]
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if declined {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "declined", "decline_reason": "insufficient_funds"})
		return
	}
	n := p.captures.Add(1)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": fmt.Sprintf("cap_%d", n), "status": "succeeded"})
}

func (p *PaymentProvider) DeclineMethod(ref string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.declined[ref] = true
}

func (p *PaymentProvider) Captures() int {
	return int(p.captures.Load())
}

// ------------------------------------------------------------
// Application
// ------------------------------------------------------------

type environment struct {
	pool     *pgxpool.Pool
	router   *gin.Engine
	cfg      config.Config
	payments *PaymentProvider
}

func setupE2EEnvironment(t *testing.T) environment {
	gin.SetMode(gin.TestMode)

	pool, dbCfg := dbtest.NewDatabase(t)

	redisServer := miniredis.RunT(t)

	payments := newPaymentProvider()
	t.Cleanup(payments.server.Close)

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.DB.RunMigrations = false
	cfg.Redis.Addr = redisServer.Addr()
	cfg.Payment.BaseURL = payments.server.URL

	router, app := buildE2EApp(cfg)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return environment{pool: pool, router: router, cfg: cfg, payments: payments}
}

func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		bootstrap.RedisModule,
		bootstrap.JWTModule,
		bootstrap.RealtimeModule,
		components.PersistenceModule,
		components.AdapterModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}

	return router, app
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------

type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	DB       *pgxpool.Pool
	Config   config.Config
	Payments *PaymentProvider
	JWT      *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	env := setupE2EEnvironment(s.T())
	s.DB = env.pool
	s.Router = env.router
	s.Config = env.cfg
	s.Payments = env.payments
	s.JWT = authtest.NewJWTHelper(env.cfg.JWT)
	require.NotNil(s.T(), s.Router, "router setup failed")
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}
