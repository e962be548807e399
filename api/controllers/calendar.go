package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pos2025/pos-backend/api/responses"
	"github.com/pos2025/pos-backend/api/validators"
	"github.com/pos2025/pos-backend/internal/calendar"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
)

// CalendarList returns custom and order-derived events inside [start, end).
func CalendarList(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calendar service unavailable"))
			return
		}

		start, err := validators.ParseQueryDate(r, "start")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		end, err := validators.ParseQueryDate(r, "end")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		events, err := svc.List(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, events)
	}
}

type createEventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color,omitempty"`
	AllDay      *bool   `json:"allDay,omitempty"`
}

// CalendarCreate stores a custom event.
func CalendarCreate(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calendar service unavailable"))
			return
		}

		var payload createEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		event, err := svc.CreateCustom(r.Context(), calendar.CreateEventInput{
			Title:       payload.Title,
			Date:        payload.Date,
			Description: payload.Description,
			Color:       payload.Color,
			AllDay:      payload.AllDay,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

// CalendarDelete removes a custom event. Order-derived events are refused.
func CalendarDelete(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "calendar service unavailable"))
			return
		}

		id, err := svc.DeleteCustom(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": id, "status": "deleted"})
	}
}
