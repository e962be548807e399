package controllers

import (
	"net/http"

	"github.com/pos2025/pos-backend/api/responses"
	"github.com/pos2025/pos-backend/internal/gateways"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
)

// PaymentGatewayList returns the enabled gateways the register can offer.
func PaymentGatewayList(svc gateways.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "gateway service unavailable"))
			return
		}

		methods, err := svc.ListEnabled(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, methods)
	}
}
