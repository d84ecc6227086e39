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
	"testing"
	"time"

	"doctor-booking/cmd/bootstrap"
	"doctor-booking/cmd/bootstrap/components"
	"doctor-booking/internal/domain/event"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/tests/common/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// EventSink records events delivered to one receiver.
type EventSink struct {
	mu     sync.Mutex
	events []event.Event
	server *httptest.Server
}

func newEventSink(t *testing.T) *EventSink {
	s := &EventSink{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev event.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.events = append(s.events, ev)
		s.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *EventSink) URL() string {
	return s.server.URL
}

// Types returns the delivered event types in arrival order.
func (s *EventSink) Types() []event.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Type, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

func (s *EventSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// ------------------------------------------------------------
// builds the booking API against a fresh database, an in-memory
// Redis and two recording event receivers
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config, *miniredis.Miniredis, *EventSink, *EventSink) {
	gin.SetMode(gin.TestMode)

	pool, dbConfig := dbtest.NewDatabase(t)
	redisServer := miniredis.RunT(t)
	notifications := newEventSink(t)
	audits := newEventSink(t)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Redis = config.RedisConfig{
		Addr:         redisServer.Addr(),
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	cfg.Events.NotificationURL = notifications.URL()
	cfg.Events.AuditURL = audits.URL()

	router, app := buildE2EApp(pool, cfg)
	require.NotNil(t, router, "failed to build router")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return pool, router, cfg, redisServer, notifications, audits
}

func buildE2EApp(pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(
			func() config.Config { return cfg },
			func() config.RedisConfig { return cfg.Redis },
			func() config.LogConfig { return cfg.Log },
			func() config.JWTConfig { return cfg.JWT },
			func() *pgxpool.Pool { return pool },
		),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.RedisModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.EventsModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	return router, app
}

// ------------------------------------------------------------
// shared setup for the E2E suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router        *gin.Engine
	DB            *pgxpool.Pool
	Config        config.Config
	Redis         *miniredis.Miniredis
	Notifications *EventSink
	Audits        *EventSink
}

func (s *SharedSuite) SetupSuite() {
	s.DB, s.Router, s.Config, s.Redis, s.Notifications, s.Audits = setupE2EEnvironment(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
	s.Redis.FlushAll()
	s.Notifications.Reset()
	s.Audits.Reset()
}
