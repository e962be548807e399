package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pos2025/pos-backend/internal/calendar"
	"github.com/pos2025/pos-backend/internal/catalog"
	"github.com/pos2025/pos-backend/internal/checkout"
	"github.com/pos2025/pos-backend/internal/register"
	"github.com/pos2025/pos-backend/pkg/config"
	"github.com/pos2025/pos-backend/pkg/db/models"
	"github.com/pos2025/pos-backend/pkg/enums"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/pagination"
	pkgredis "github.com/pos2025/pos-backend/pkg/redis"
	"github.com/pos2025/pos-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubOrdersService struct {
	creates atomic.Int32
}

func (s *stubOrdersService) Create(_ context.Context, req checkout.Request) (*checkout.Result, error) {
	s.creates.Add(1)
	total := decimal.Zero
	for _, item := range req.LineItems {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return &checkout.Result{
		OrderID:         uuid.New(),
		Number:          1,
		Status:          req.SaleType.OrderStatus(),
		Total:           total,
		CalendarRefetch: req.SaleType.RequiresSchedule(),
	}, nil
}

func (s *stubOrdersService) GetByID(context.Context, uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: uuid.New(), Status: enums.OrderStatusProcessing, SaleType: enums.SaleTypeDirect}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) Search(context.Context, string, pagination.Params) (pagination.Page[catalog.ProductDTO], error) {
	return pagination.Page[catalog.ProductDTO]{Items: []catalog.ProductDTO{}}, nil
}

type stubCustomersService struct{}

func (stubCustomersService) Search(context.Context, string, pagination.Params) (pagination.Page[types.CustomerRef], error) {
	return pagination.Page[types.CustomerRef]{Items: []types.CustomerRef{}}, nil
}

func (stubCustomersService) GetRef(_ context.Context, id int64) (*types.CustomerRef, error) {
	return &types.CustomerRef{ID: id, DisplayName: "Test Customer"}, nil
}

type stubGatewaysService struct{}

func (stubGatewaysService) ListEnabled(context.Context) ([]types.PaymentMethod, error) {
	return []types.PaymentMethod{{ID: "cod", Title: "Cash on delivery"}}, nil
}

func (stubGatewaysService) Resolve(_ context.Context, id string) (*types.PaymentMethod, error) {
	return &types.PaymentMethod{ID: id, Title: "Cash on delivery"}, nil
}

type stubCalendarService struct{}

func (stubCalendarService) List(context.Context, time.Time, time.Time) ([]calendar.Event, error) {
	return []calendar.Event{}, nil
}

func (stubCalendarService) CreateCustom(_ context.Context, in calendar.CreateEventInput) (*calendar.Event, error) {
	return &calendar.Event{ID: "custom_x", Title: in.Title, Date: in.Date}, nil
}

func (stubCalendarService) DeleteCustom(_ context.Context, id string) (string, error) {
	return id, nil
}

type memIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{data: map[string]string{}}
}

func (s *memIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *memIdempotencyStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = fmt.Sprint(value)
	return nil
}

func (s *memIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false, nil
	}
	s.data[key] = fmt.Sprint(value)
	return true, nil
}

func (s *memIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "test:idempotency:" + scope + ":" + id
}

func (s *memIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	router, _ := newTestRouterWithStore(t, nil)
	return router
}

func newTestRouterWithStore(t *testing.T, idemStore pkgredis.IdempotencyStore) (http.Handler, *stubOrdersService) {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Register.SessionTTL = time.Hour
	cfg.Register.IdempotencyTTL = time.Hour
	cfg.Catalog.CurrencyDecimals = 2

	ordersSvc := &stubOrdersService{}
	store, err := register.NewStore(ordersSvc, nil, logg, cfg.Register, 2)
	require.NoError(t, err)

	router := NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		idemStore,
		store,
		stubCatalogService{},
		stubCustomersService{},
		stubGatewaysService{},
		stubCalendarService{},
		ordersSvc,
	)
	return router, ordersSvc
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "test", resp.Header().Get("X-POS-Env"))
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRegisterFlowThroughRouter(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pos/sessions", nil))
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		Data register.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	sessionID := created.Data.ID
	require.NotEmpty(t, sessionID)

	base := "/api/v1/pos/sessions/" + sessionID

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, base+"/cart/items",
		strings.NewReader(`{"productId":3,"name":"Filter","price":"4.25","quantity":4}`)))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, base+"/payment-method",
		strings.NewReader(`{"paymentMethodId":"cod"}`)))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, base+"/checkout", nil))
	require.Equal(t, http.StatusCreated, resp.Code)

	var done struct {
		Data struct {
			Total   string        `json:"total"`
			Session register.View `json:"session"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &done))
	require.Equal(t, "17.00", done.Data.Total)
	require.Empty(t, done.Data.Session.Items)
}

func TestUnknownSessionIs404(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pos/sessions/nope", nil))
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCalendarRoutesWired(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/pos/calendar/events?start=2025-08-01&end=2025-09-01", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pos/calendar/events",
		strings.NewReader(`{"title":"Stocktake","date":"2025-08-20"}`)))
	require.Equal(t, http.StatusCreated, resp.Code)
}

func sessionReadyForCheckout(t *testing.T, router http.Handler) string {
	t.Helper()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/pos/sessions", nil))
	require.Equal(t, http.StatusCreated, resp.Code)

	var created struct {
		Data register.View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	base := "/api/v1/pos/sessions/" + created.Data.ID

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, base+"/cart/items",
		strings.NewReader(`{"productId":3,"name":"Filter","price":"4.25","quantity":4}`)))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPut, base+"/payment-method",
		strings.NewReader(`{"paymentMethodId":"cod"}`)))
	require.Equal(t, http.StatusOK, resp.Code)

	return base
}

func TestCheckoutRequiresIdempotencyKey(t *testing.T) {
	router, ordersSvc := newTestRouterWithStore(t, newMemIdempotencyStore())
	base := sessionReadyForCheckout(t, router)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, base+"/checkout", nil))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, int32(0), ordersSvc.creates.Load())
}

func TestCheckoutReplaysThroughRouter(t *testing.T) {
	router, ordersSvc := newTestRouterWithStore(t, newMemIdempotencyStore())
	base := sessionReadyForCheckout(t, router)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, base+"/checkout", nil)
	req.Header.Set("Idempotency-Key", "k-1")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, int32(1), ordersSvc.creates.Load())

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, base+"/checkout", nil)
	req.Header.Set("Idempotency-Key", "k-1")
	router.ServeHTTP(second, req)
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, int32(1), ordersSvc.creates.Load())
}

func TestCheckoutRejectsKeyReuseWithChangedBody(t *testing.T) {
	router, ordersSvc := newTestRouterWithStore(t, newMemIdempotencyStore())
	base := sessionReadyForCheckout(t, router)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, base+"/checkout", nil)
	req.Header.Set("Idempotency-Key", "k-2")
	router.ServeHTTP(first, req)
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, base+"/checkout", strings.NewReader(`{"extra":1}`))
	req.Header.Set("Idempotency-Key", "k-2")
	router.ServeHTTP(second, req)
	require.Equal(t, http.StatusConflict, second.Code)
	require.Equal(t, int32(1), ordersSvc.creates.Load())
}
