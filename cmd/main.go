package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	getAvailableDatesHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/get_available_slots"
	getOrderHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/get_order"
	getSettingsHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/get_settings"
	getUserOrdersHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/get_user_orders"
	listOrdersByDateHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/list_orders_by_date"
	placeOrderHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/place_order"
	toggleBlockedDateHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/toggle_blocked_date"
	updateMaxOrdersHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/update_max_orders"
	updatePaymentStatusHandler "github.com/m04kA/SMC-CafeOrderService/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-CafeOrderService/internal/api/middleware"
	"github.com/m04kA/SMC-CafeOrderService/internal/config"
	"github.com/m04kA/SMC-CafeOrderService/internal/infra/cache"
	"github.com/m04kA/SMC-CafeOrderService/internal/service/access"
	ordersService "github.com/m04kA/SMC-CafeOrderService/internal/service/orders"
	settingsService "github.com/m04kA/SMC-CafeOrderService/internal/service/settings"
	getAvailableDatesUC "github.com/m04kA/SMC-CafeOrderService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-CafeOrderService/internal/usecase/get_available_slots"
	placeOrderUC "github.com/m04kA/SMC-CafeOrderService/internal/usecase/place_order"
	"github.com/m04kA/SMC-CafeOrderService/pkg/logger"
	"github.com/m04kA/SMC-CafeOrderService/pkg/metrics"
)

const rateLimitCleanupInterval = time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CafeOrderService...")
	log.Info("Configuration loaded from config.toml (storage=%s, timezone=%s)",
		cfg.Storage.Driver, cfg.Business.Timezone)

	// Часовой пояс кафе уже проверен в config.Validate
	loc, _ := cfg.Business.Location()

	// Метрики пишутся всегда; при выключенных метриках реестр просто не публикуется
	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, registry)

	// Подключаем хранилище
	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStorage(startCtx, cfg, metricsCollector, log)
	cancelStart()
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Кэш настроек (опционально)
	var settingsCache settingsService.SettingsCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Без кэша сервис работает, настройки читаются из хранилища
			log.Warn("Redis is unavailable at %s: %v", cfg.Redis.Addr, err)
		}
		settingsCache = cache.NewSettingsCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, metricsCollector)
		log.Info("Settings cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	admins := access.NewAdmins(cfg.Admin.UserIDs)
	if len(cfg.Admin.UserIDs) == 0 {
		log.Warn("No admin user IDs configured: admin endpoints will always return 403")
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(store.settings, settingsCache, admins, log.With("settings"))
	ordersSvc := ordersService.NewService(store.bookings, admins, log.With("orders"))

	// Инициализируем use cases
	placeOrderUseCase := placeOrderUC.NewUseCase(
		store.settings,
		store.bookings,
		store.txManager,
		metricsCollector,
		loc,
		time.Duration(cfg.Booking.Timeout)*time.Second,
		log.With("place_order"),
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(settingsSvc, store.bookings, loc, log)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(settingsSvc, loc, log)

	// Инициализируем handlers
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateMaxOrders := updateMaxOrdersHandler.NewHandler(settingsSvc, log)
	toggleBlockedDate := toggleBlockedDateHandler.NewHandler(settingsSvc, log)
	placeOrder := placeOrderHandler.NewHandler(placeOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(ordersSvc, log)
	listOrdersByDate := listOrdersByDateHandler.NewHandler(ordersSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(ordersSvc, log)

	// Ограничения на оформление заказа
	rateLimiter := middleware.NewRateLimiter(cfg.Booking.RatePerMinute, cfg.Booking.RateBurst)
	stopCleanup := make(chan struct{})
	rateLimiter.RunCleanup(rateLimitCleanupInterval, stopCleanup)
	inFlight := middleware.NewInFlight()

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/dates", getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	protected.Handle("/orders",
		rateLimiter.Limit(inFlight.Guard(http.HandlerFunc(placeOrder.Handle)))).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(admins))

	admin.HandleFunc("/settings/max-orders", updateMaxOrders.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/settings/blocked-dates/{date}/toggle", toggleBlockedDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/orders", listOrdersByDate.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}/payment-status", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// CORS для витрины
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserEmail},
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
