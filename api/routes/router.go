package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beemsaisuoy/my-salon-app/api/controllers"
	"github.com/beemsaisuoy/my-salon-app/api/middleware"
	"github.com/beemsaisuoy/my-salon-app/internal/bookings"
	"github.com/beemsaisuoy/my-salon-app/internal/cart"
	"github.com/beemsaisuoy/my-salon-app/internal/catalog"
	checkoutsvc "github.com/beemsaisuoy/my-salon-app/internal/checkout"
	"github.com/beemsaisuoy/my-salon-app/internal/notifications"
	"github.com/beemsaisuoy/my-salon-app/internal/orders"
	"github.com/beemsaisuoy/my-salon-app/internal/settings"
	"github.com/beemsaisuoy/my-salon-app/pkg/config"
	"github.com/beemsaisuoy/my-salon-app/pkg/db"
	"github.com/beemsaisuoy/my-salon-app/pkg/logger"
	"github.com/beemsaisuoy/my-salon-app/pkg/redis"
)

type Services struct {
	Catalog       catalog.Service
	Cart          cart.Service
	Checkout      checkoutsvc.Service
	Orders        orders.Service
	Bookings      bookings.Service
	Notifications notifications.Service
	Settings      settings.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger db.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public storefront surface: browsing and pricing need no session.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(svcs.Catalog, logg, false))
		r.Get("/products/{productId}", controllers.GetProduct(svcs.Catalog, logg))
		r.Get("/services", controllers.ListSalonServices(svcs.Catalog, logg, false))
		r.Get("/services/{serviceId}", controllers.GetSalonService(svcs.Catalog, logg))
		r.Get("/bookings/availability", controllers.BookingAvailability(svcs.Bookings, logg))
		r.Post("/cart/quote", controllers.CartQuote(svcs.Cart, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(redisClient, logg))

			r.With(middleware.CheckoutRateLimit(cfg.Checkout, redisClient, logg)).
				Post("/checkout", controllers.Checkout(svcs.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(svcs.Orders, logg))
				r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
				r.Post("/{orderId}/cancel", controllers.CancelOrder(svcs.Orders, logg))
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", controllers.CreateBooking(svcs.Bookings, logg))
				r.Get("/", controllers.ListBookings(svcs.Bookings, logg))
				r.Get("/{bookingId}", controllers.BookingDetail(svcs.Bookings, logg))
				r.Post("/{bookingId}/cancel", controllers.CancelBooking(svcs.Bookings, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg, true))
			r.Post("/", controllers.CreateProduct(svcs.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(svcs.Catalog, logg))
			r.Put("/{productId}", controllers.UpdateProduct(svcs.Catalog, logg))
			r.Put("/{productId}/stock", controllers.SetProductStock(svcs.Catalog, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(svcs.Catalog, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ListSalonServices(svcs.Catalog, logg, true))
			r.Post("/", controllers.CreateSalonService(svcs.Catalog, logg))
			r.Get("/{serviceId}", controllers.GetSalonService(svcs.Catalog, logg))
			r.Put("/{serviceId}", controllers.UpdateSalonService(svcs.Catalog, logg))
			r.Delete("/{serviceId}", controllers.DeleteSalonService(svcs.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.UpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", controllers.ListBookings(svcs.Bookings, logg))
			r.Get("/{bookingId}", controllers.BookingDetail(svcs.Bookings, logg))
			r.Patch("/{bookingId}/status", controllers.UpdateBookingStatus(svcs.Bookings, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(svcs.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(svcs.Notifications, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(svcs.Settings, logg))
			r.Put("/", controllers.UpdateSettings(svcs.Settings, logg))
		})
	})

	return r
}
