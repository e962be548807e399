package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/pos2025/pos-backend/internal/calendar"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
)

type stubCalendarService struct {
	listFn   func(ctx context.Context, start, end time.Time) ([]calendar.Event, error)
	createFn func(ctx context.Context, in calendar.CreateEventInput) (*calendar.Event, error)
	deleteFn func(ctx context.Context, id string) (string, error)
}

func (s *stubCalendarService) List(ctx context.Context, start, end time.Time) ([]calendar.Event, error) {
	if s.listFn != nil {
		return s.listFn(ctx, start, end)
	}
	return nil, nil
}

func (s *stubCalendarService) CreateCustom(ctx context.Context, in calendar.CreateEventInput) (*calendar.Event, error) {
	if s.createFn != nil {
		return s.createFn(ctx, in)
	}
	return &calendar.Event{}, nil
}

func (s *stubCalendarService) DeleteCustom(ctx context.Context, id string) (string, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return id, nil
}

func TestCalendarListPassesRange(t *testing.T) {
	var gotStart, gotEnd time.Time
	svc := &stubCalendarService{
		listFn: func(_ context.Context, start, end time.Time) ([]calendar.Event, error) {
			gotStart, gotEnd = start, end
			return []calendar.Event{{ID: "custom_a", Title: "Stocktake"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pos/calendar/events?start=2025-08-01&end=2025-09-01", nil)
	resp := httptest.NewRecorder()
	CalendarList(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), gotStart)
	require.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), gotEnd)

	var envelope struct {
		Data []calendar.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
}

func TestCalendarListRequiresDates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pos/calendar/events?start=2025-08-01", nil)
	resp := httptest.NewRecorder()
	CalendarList(&stubCalendarService{}, testLogger())(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCalendarCreateValidatesBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pos/calendar/events",
		strings.NewReader(`{"title":"Delivery","date":"not-a-date"}`))
	resp := httptest.NewRecorder()
	CalendarCreate(&stubCalendarService{}, testLogger())(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCalendarCreateReturnsEvent(t *testing.T) {
	svc := &stubCalendarService{
		createFn: func(_ context.Context, in calendar.CreateEventInput) (*calendar.Event, error) {
			require.Equal(t, "Delivery", in.Title)
			return &calendar.Event{ID: "custom_abc", Title: in.Title, Date: in.Date}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pos/calendar/events",
		strings.NewReader(`{"title":"Delivery","date":"2025-08-15"}`))
	resp := httptest.NewRecorder()
	CalendarCreate(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	var envelope struct {
		Data calendar.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Equal(t, "custom_abc", envelope.Data.ID)
}

func TestCalendarDeleteOrderSourced(t *testing.T) {
	svc := &stubCalendarService{
		deleteFn: func(_ context.Context, id string) (string, error) {
			return "", pkgerrors.New(pkgerrors.CodeStateConflict, "order events cannot be deleted")
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/pos/calendar/events/order_abc", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("eventID", "order_abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	resp := httptest.NewRecorder()
	CalendarDelete(svc, testLogger())(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
