package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"maeled/pkg/auth"
	"maeled/pkg/cart"
	"maeled/pkg/catalog"
	"maeled/pkg/config"
	"maeled/pkg/inventory"
	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/order"
	"maeled/pkg/otel"
	"maeled/pkg/report"
	"maeled/pkg/reservation"
	"maeled/pkg/seed"
	"maeled/pkg/staff"
	"maeled/pkg/storage"
	filestore "maeled/pkg/storage/file"
	redisstore "maeled/pkg/storage/redis"
)

var (
	log        *logger.Logger
	tracer     trace.Tracer
	sessions   auth.SessionStore
	feed       *notify.Feed
	menuSvc    *catalog.Service
	ledger     *order.Ledger
	cartSvc    *cart.Service
	bookings   *reservation.Service
	roster     *staff.Service
	stock      *inventory.Service
	reports    *report.Service
	serviceFee float64
)

// @title Maeled API
// @version 2.0
// @description Restaurant back-office API
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.Load()
	log = logger.New(os.Stdout, logger.LevelInfo, "maeled", otel.GetTraceID)
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "maeled", Host: cfg.OtelHost, Probability: 1.0})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		return
	}
	defer shutdown(context.Background())
	tracer = tp.Tracer("maeled")

	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		sessions = auth.NewRedisStore(redisClient)
	} else {
		sessions = auth.NewMemoryStore()
	}

	var backend storage.Backend
	switch cfg.Storage {
	case "redis":
		if redisClient == nil {
			log.Error(context.Background(), "redis storage requires MAELED_REDIS_ADDR")
			os.Exit(1)
		}
		backend = redisstore.New(redisClient)
	default:
		fb, err := filestore.New(cfg.DataDir)
		if err != nil {
			log.Error(context.Background(), "open data dir", "error", err)
			os.Exit(1)
		}
		backend = fb
	}

	opts := []storage.Option{storage.WithLogger(log)}
	if cfg.StrictDecode {
		opts = append(opts, storage.WithStrictDecode())
	}
	store := storage.New(backend, opts...)

	serviceFee = cfg.ServiceFee
	feed = notify.New(store, log)
	menuSvc = catalog.NewService(store, feed, log)
	ledger = order.NewLedger(store, feed, log, serviceFee)
	cartSvc = cart.NewService(store, ledger, log, serviceFee)
	bookings = reservation.NewService(store, feed, log)
	roster = staff.NewService(store, feed, log)
	stock = inventory.NewService(store, feed, log)
	reports = report.NewService(store)

	if cfg.Seed {
		if err := seed.Run(context.Background(), store, log); err != nil {
			log.Error(context.Background(), "seed", "error", err)
			os.Exit(1)
		}
	}

	r := mux.NewRouter()
	r.Use(traceMiddleware)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.HandleFunc("/login", loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/logout", logoutHandler).Methods(http.MethodPost)
	r.HandleFunc("/menu", publicMenuHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("/cart", cartItemsHandler).Methods(http.MethodGet)
	api.HandleFunc("/cart", cartAddHandler).Methods(http.MethodPost)
	api.HandleFunc("/cart", cartClearHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cart/{id}", cartQuantityHandler).Methods(http.MethodPut)
	api.HandleFunc("/cart/{id}", cartRemoveHandler).Methods(http.MethodDelete)
	api.HandleFunc("/cart/checkout", cartCheckoutHandler).Methods(http.MethodPost)

	api.HandleFunc("/notifications", listNotificationsHandler).Methods(http.MethodGet)
	api.HandleFunc("/notifications/read", markNotificationsReadHandler).Methods(http.MethodPost)

	admin := api.PathPrefix("").Subrouter()
	admin.Use(requireRole(auth.RoleAdmin))

	admin.HandleFunc("/menu", listMenuHandler).Methods(http.MethodGet)
	admin.HandleFunc("/menu", createMenuItemHandler).Methods(http.MethodPost)
	admin.HandleFunc("/menu/{id}", getMenuItemHandler).Methods(http.MethodGet)
	admin.HandleFunc("/menu/{id}", updateMenuItemHandler).Methods(http.MethodPut)
	admin.HandleFunc("/menu/{id}", deleteMenuItemHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/menu/{id}/availability", menuAvailabilityHandler).Methods(http.MethodPut)

	admin.HandleFunc("/orders", listOrdersHandler).Methods(http.MethodGet)
	admin.HandleFunc("/orders", createOrderHandler).Methods(http.MethodPost)
	admin.HandleFunc("/orders/stats", orderStatsHandler).Methods(http.MethodGet)
	admin.HandleFunc("/orders/report", dailyReportHandler).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", getOrderHandler).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}", updateOrderHandler).Methods(http.MethodPut)
	admin.HandleFunc("/orders/{id}", deleteOrderHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{id}/status", orderStatusHandler).Methods(http.MethodPut)

	admin.HandleFunc("/reservations", listReservationsHandler).Methods(http.MethodGet)
	admin.HandleFunc("/reservations", createReservationHandler).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id}", updateReservationHandler).Methods(http.MethodPut)
	admin.HandleFunc("/reservations/{id}", deleteReservationHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/reservations/{id}/confirm", confirmReservationHandler).Methods(http.MethodPost)
	admin.HandleFunc("/reservations/{id}/cancel", cancelReservationHandler).Methods(http.MethodPost)

	admin.HandleFunc("/staff", listStaffHandler).Methods(http.MethodGet)
	admin.HandleFunc("/staff", createStaffHandler).Methods(http.MethodPost)
	admin.HandleFunc("/staff/stats", staffStatsHandler).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", getStaffHandler).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{id}", updateStaffHandler).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{id}", deleteStaffHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/staff/{id}/status", staffStatusHandler).Methods(http.MethodPut)

	admin.HandleFunc("/inventory", listInventoryHandler).Methods(http.MethodGet)
	admin.HandleFunc("/inventory", createInventoryHandler).Methods(http.MethodPost)
	admin.HandleFunc("/inventory/low", lowStockHandler).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/reorder", reorderHandler).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/{id}", getInventoryHandler).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/{id}", updateInventoryHandler).Methods(http.MethodPut)
	admin.HandleFunc("/inventory/{id}", deleteInventoryHandler).Methods(http.MethodDelete)
	admin.HandleFunc("/inventory/{id}/adjust", adjustInventoryHandler).Methods(http.MethodPost)

	admin.HandleFunc("/dashboard", dashboardHandler).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/revenue", revenueHandler).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/dishes", popularDishesHandler).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard/margins", topMarginsHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	log.Info(context.Background(), "listening", "addr", cfg.Addr, "storage", cfg.Storage)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Error(context.Background(), "server closed", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
