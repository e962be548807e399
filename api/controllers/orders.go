package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pos2025/pos-backend/api/responses"
	"github.com/pos2025/pos-backend/internal/orders"
	"github.com/pos2025/pos-backend/pkg/db/models"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/types"
)

type orderLineItemResponse struct {
	ProductID   int64  `json:"productId"`
	VariationID int64  `json:"variationId,omitempty"`
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	SKU         string `json:"sku,omitempty"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type orderResponse struct {
	ID                 string                  `json:"id"`
	Number             int64                   `json:"number"`
	Status             string                  `json:"status"`
	SaleType           string                  `json:"saleType"`
	CustomerID         int64                   `json:"customerId"`
	PaymentMethodID    string                  `json:"paymentMethodId"`
	PaymentMethodTitle string                  `json:"paymentMethodTitle"`
	CustomerNote       string                  `json:"customerNote,omitempty"`
	Total              string                  `json:"total"`
	ScheduleTitle      *string                 `json:"scheduleTitle,omitempty"`
	ScheduleDate       *string                 `json:"scheduleDate,omitempty"`
	ScheduleColor      *string                 `json:"scheduleColor,omitempty"`
	Items              []orderLineItemResponse `json:"items"`
	CreatedAt          time.Time               `json:"createdAt"`
}

// OrderGet returns one completed order with its line items.
func OrderGet(svc orders.Service, decimals int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "order id must be a uuid"))
			return
		}

		order, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order, decimals))
	}
}

func newOrderResponse(order *models.Order, decimals int) orderResponse {
	if order == nil {
		return orderResponse{}
	}
	items := make([]orderLineItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderLineItemResponse{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Name:        item.Name,
			Label:       item.Label,
			SKU:         item.SKU,
			UnitPrice:   types.FormatAmount(item.UnitPrice, decimals),
			Quantity:    item.Quantity,
			Subtotal:    types.FormatAmount(item.Subtotal, decimals),
		})
	}

	resp := orderResponse{
		ID:                 order.ID.String(),
		Number:             order.Number,
		Status:             order.Status.String(),
		SaleType:           order.SaleType.String(),
		CustomerID:         order.CustomerID,
		PaymentMethodID:    order.PaymentMethodID,
		PaymentMethodTitle: order.PaymentMethodTitle,
		CustomerNote:       order.CustomerNote,
		Total:              types.FormatAmount(order.Total, decimals),
		ScheduleTitle:      order.ScheduleTitle,
		ScheduleColor:      order.ScheduleColor,
		Items:              items,
		CreatedAt:          order.CreatedAt,
	}
	if order.ScheduleDate != nil {
		date := order.ScheduleDate.Format("2006-01-02")
		resp.ScheduleDate = &date
	}
	return resp
}
