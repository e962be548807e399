package controllers

import (
	"net/http"
	"strings"

	"github.com/pos2025/pos-backend/api/responses"
	"github.com/pos2025/pos-backend/api/validators"
	"github.com/pos2025/pos-backend/internal/catalog"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
)

// ProductSearch serves the register's product selection surface.
func ProductSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("search"))
		page, err := svc.Search(r.Context(), query, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
