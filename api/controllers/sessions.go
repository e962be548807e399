package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pos2025/pos-backend/api/responses"
	"github.com/pos2025/pos-backend/api/validators"
	"github.com/pos2025/pos-backend/internal/cart"
	"github.com/pos2025/pos-backend/internal/checkout"
	"github.com/pos2025/pos-backend/internal/customers"
	"github.com/pos2025/pos-backend/internal/gateways"
	"github.com/pos2025/pos-backend/internal/register"
	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/types"
)

// SessionCreate opens a fresh register session.
func SessionCreate(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register store unavailable"))
			return
		}

		session, err := store.Create()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session.View())
	}
}

func SessionGet(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session.View())
	}
}

func SessionDelete(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register store unavailable"))
			return
		}

		if err := store.Delete(chi.URLParam(r, "sessionID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type addItemRequest struct {
	ProductID      int64  `json:"productId" validate:"required,min=1"`
	VariationID    int64  `json:"variationId,omitempty"`
	Name           string `json:"name" validate:"required"`
	VariationLabel string `json:"variationLabel,omitempty"`
	Price          string `json:"price"`
	Quantity       int    `json:"quantity,omitempty"`
	SKU            string `json:"sku,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// CartItemAdd appends or merges a line on the session cart.
func CartItemAdd(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := session.AddItem(cart.ItemEntry{
			ProductID:      payload.ProductID,
			VariationID:    payload.VariationID,
			Name:           payload.Name,
			VariationLabel: payload.VariationLabel,
			Price:          payload.Price,
			Quantity:       payload.Quantity,
			SKU:            payload.SKU,
			ImageURL:       payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type updateItemRequest struct {
	Quantity   *int    `json:"quantity,omitempty"`
	Price      *string `json:"price,omitempty"`
	ResetPrice bool    `json:"resetPrice,omitempty"`
}

// CartItemUpdate patches quantity or price on one cart line. Quantity below
// one removes the line.
func CartItemUpdate(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil && payload.Price == nil && !payload.ResetPrice {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity, price or resetPrice required"))
			return
		}

		itemID := chi.URLParam(r, "itemID")
		view := session.View()

		if payload.Quantity != nil {
			view = session.SetQuantity(itemID, *payload.Quantity)
		}
		if payload.ResetPrice {
			view, err = session.ResetPrice(itemID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if payload.Price != nil {
			view, err = session.SetPrice(itemID, *payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, view)
	}
}

func CartItemDelete(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session.RemoveItem(chi.URLParam(r, "itemID")))
	}
}

type attachCustomerRequest struct {
	CustomerID int64 `json:"customerId" validate:"required,min=1"`
}

// SessionCustomerPut attaches a known customer to the session.
func SessionCustomerPut(store *register.Store, customerSvc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customerSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload attachCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ref, err := customerSvc.GetRef(r.Context(), payload.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := session.SetCustomer(*ref)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func SessionCustomerDelete(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session.ClearCustomer())
	}
}

type saleTypeRequest struct {
	SaleType string           `json:"saleType" validate:"required"`
	Schedule *scheduleRequest `json:"schedule,omitempty"`
}

type scheduleRequest struct {
	Title     string `json:"title,omitempty"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Color     string `json:"color,omitempty"`
}

// SessionSaleTypePut switches the active sale type, carrying schedule fields
// for subscription sales.
func SessionSaleTypePut(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload saleTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saleType, err := enums.ParseSaleType(payload.SaleType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown sale type"))
			return
		}

		var schedule types.Schedule
		if payload.Schedule != nil {
			schedule = types.Schedule{
				Title:     payload.Schedule.Title,
				StartDate: payload.Schedule.StartDate,
				Color:     payload.Schedule.Color,
			}
		}

		view, err := session.SetSaleType(saleType, schedule)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type paymentMethodRequest struct {
	PaymentMethodID string `json:"paymentMethodId" validate:"required"`
}

// SessionPaymentMethodPut selects a payment gateway for the session.
func SessionPaymentMethodPut(store *register.Store, gatewaySvc gateways.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gatewaySvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gateway service unavailable"))
			return
		}

		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := gatewaySvc.Resolve(r.Context(), payload.PaymentMethodID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := session.SetPaymentMethod(*method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

type noteRequest struct {
	Note string `json:"note"`
}

func SessionNotePut(store *register.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload noteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session.SetNote(payload.Note))
	}
}

type checkoutResponse struct {
	OrderID         string                 `json:"orderId"`
	Number          int64                  `json:"number"`
	Status          string                 `json:"status"`
	Total           string                 `json:"total"`
	SkippedItems    []checkout.SkippedItem `json:"skippedItems,omitempty"`
	CalendarRefetch bool                   `json:"calendarRefetch"`
	Session         register.View          `json:"session"`
}

// SessionCheckout submits the session's cart as an order.
func SessionCheckout(store *register.Store, decimals int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(store, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithSessionID(ctx, session.ID())
		}

		result, err := session.Checkout(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp := checkoutResponse{
			OrderID:         result.OrderID.String(),
			Number:          result.Number,
			Status:          result.Status.String(),
			Total:           types.FormatAmount(result.Total, decimals),
			CalendarRefetch: result.CalendarRefetch,
			Session:         session.View(),
		}
		if len(result.SkippedItems) > 0 {
			resp.SkippedItems = result.SkippedItems
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

func sessionFromRequest(store *register.Store, r *http.Request) (*register.Session, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "register store unavailable")
	}
	return store.Get(chi.URLParam(r, "sessionID"))
}
