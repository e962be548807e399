package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pos2025/pos-backend/api/controllers"
	"github.com/pos2025/pos-backend/api/middleware"
	"github.com/pos2025/pos-backend/internal/calendar"
	"github.com/pos2025/pos-backend/internal/catalog"
	"github.com/pos2025/pos-backend/internal/customers"
	"github.com/pos2025/pos-backend/internal/gateways"
	"github.com/pos2025/pos-backend/internal/orders"
	"github.com/pos2025/pos-backend/internal/register"
	"github.com/pos2025/pos-backend/pkg/config"
	"github.com/pos2025/pos-backend/pkg/logger"
	pkgredis "github.com/pos2025/pos-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	idemStore pkgredis.IdempotencyStore,
	registerStore *register.Store,
	catalogSvc catalog.Service,
	customerSvc customers.Service,
	gatewaySvc gateways.Service,
	calendarSvc calendar.Service,
	orderSvc orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisP,
		}))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Inline middleware runs after route matching, so the guard sees the
	// resolved checkout pattern and the sessionID parameter.
	checkoutGuard := middleware.Idempotency(idemStore, cfg.Register.IdempotencyTTL, logg)

	r.Route("/api/v1/pos", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", controllers.SessionCreate(registerStore, logg))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", controllers.SessionGet(registerStore, logg))
				r.Delete("/", controllers.SessionDelete(registerStore, logg))

				r.Post("/cart/items", controllers.CartItemAdd(registerStore, logg))
				r.Patch("/cart/items/{itemID}", controllers.CartItemUpdate(registerStore, logg))
				r.Delete("/cart/items/{itemID}", controllers.CartItemDelete(registerStore, logg))

				r.Put("/customer", controllers.SessionCustomerPut(registerStore, customerSvc, logg))
				r.Delete("/customer", controllers.SessionCustomerDelete(registerStore, logg))

				r.Put("/sale-type", controllers.SessionSaleTypePut(registerStore, logg))
				r.Put("/payment-method", controllers.SessionPaymentMethodPut(registerStore, gatewaySvc, logg))
				r.Put("/note", controllers.SessionNotePut(registerStore, logg))

				r.With(checkoutGuard).Post("/checkout", controllers.SessionCheckout(registerStore, cfg.Catalog.CurrencyDecimals, logg))
			})
		})

		r.Get("/products", controllers.ProductSearch(catalogSvc, logg))
		r.Get("/customers", controllers.CustomerSearch(customerSvc, logg))
		r.Get("/payment-gateways", controllers.PaymentGatewayList(gatewaySvc, logg))

		r.Route("/calendar/events", func(r chi.Router) {
			r.Get("/", controllers.CalendarList(calendarSvc, logg))
			r.Post("/", controllers.CalendarCreate(calendarSvc, logg))
			r.Delete("/{eventID}", controllers.CalendarDelete(calendarSvc, logg))
		})

		r.Get("/orders/{orderID}", controllers.OrderGet(orderSvc, cfg.Catalog.CurrencyDecimals, logg))
	})

	return r
}
