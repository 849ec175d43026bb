package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	addAvailabilityHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/add_availability"
	cancelBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_booking"
	createCheckoutHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/create_checkout_session"
	deleteAvailabilityHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/delete_availability"
	getAllBookingsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_all_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_booking"
	getOrdersHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_orders"
	getUserBookingsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/get_user_bookings"
	listAvailabilityHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_availability"
	listEventsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_events"
	listProductsHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/list_products"
	stripeWebhookHandler "github.com/m04kA/SMC-StudioService/internal/api/handlers/stripe_webhook"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	bookingSlotRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/bookingslot"
	eventRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/event"
	orderRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/order"
	productRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/product"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/integrations/authservice"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
	availabilityService "github.com/m04kA/SMC-StudioService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-StudioService/internal/service/bookings"
	eventsService "github.com/m04kA/SMC-StudioService/internal/service/events"
	ordersService "github.com/m04kA/SMC-StudioService/internal/service/orders"
	productsService "github.com/m04kA/SMC-StudioService/internal/service/products"
	"github.com/m04kA/SMC-StudioService/internal/timeslot"
	createBookingUC "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
	createCheckoutUC "github.com/m04kA/SMC-StudioService/internal/usecase/create_checkout_session"
	getAvailabilityUC "github.com/m04kA/SMC-StudioService/internal/usecase/get_availability"
	processCheckoutUC "github.com/m04kA/SMC-StudioService/internal/usecase/process_checkout"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

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

	log.Info("Starting SMC-StudioService...")

	// Метрики (если включены). nil коллектор безопасен для use cases
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка работает и без метрик: транзакции идут через неё в обоих режимах
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Часы бизнеса
	clock, err := timeslot.NewClock(cfg.Business.Timezone, nil)
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}

	// Интеграционные клиенты
	authClient := authservice.NewClient(
		cfg.Auth.ServiceURL,
		cfg.Auth.ServiceRoleKey,
		time.Duration(cfg.Auth.Timeout)*time.Second,
		log,
	)
	paymentsClient := payments.NewClient(
		cfg.Stripe.SecretKey,
		cfg.Stripe.WebhookSecret,
		time.Duration(cfg.Stripe.WebhookToleranceSeconds)*time.Second,
	)
	log.Info("Integration clients initialized (AuthService=%s timeout=%ds)", cfg.Auth.ServiceURL, cfg.Auth.Timeout)

	// Репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	bookingSlotRepository := bookingSlotRepo.NewRepository(wrappedDB)
	productRepository := productRepo.NewRepository(wrappedDB)
	eventRepository := eventRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingSlotRepository,
		profileRepository,
		txMgr,
		clock,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		bookingSlotRepository,
		clock,
		log,
	)
	orderSvc := ordersService.NewService(orderRepository, profileRepository, log)
	productSvc := productsService.NewService(productRepository, log)
	eventSvc := eventsService.NewService(eventRepository, clock, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		availabilityRepository,
		bookingSlotRepository,
		clock,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		getAvailabilityUseCase,
		bookingRepository,
		bookingSlotRepository,
		clock,
		metricsCollector,
		log,
	)
	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		authClient,
		productRepository,
		paymentsClient,
		createCheckoutUC.Config{
			Currency:         cfg.Stripe.Currency,
			FrontendURL:      cfg.Stripe.FrontendURL,
			AllowedCountries: cfg.Stripe.AllowedCountries,
			MaxItemQuantity:  cfg.Stripe.MaxItemQuantity,
		},
		metricsCollector,
		log,
	)
	processCheckoutUseCase := processCheckoutUC.NewUseCase(
		paymentsClient,
		orderRepository,
		productRepository,
		txMgr,
		log,
	)

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	addAvailability := addAvailabilityHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	listProducts := listProductsHandler.NewHandler(productSvc, log)
	listEvents := listEventsHandler.NewHandler(eventSvc, log)
	getOrders := getOrdersHandler.NewHandler(orderSvc, log)
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(paymentsClient, processCheckoutUseCase, metricsCollector, log)

	// Rate limiter (если включен Redis)
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s: %v (fail_open=%t)", cfg.Redis.Addr, err, cfg.Redis.FailOpen)
		}
		cancelPing()

		limiter := middleware.NewRateLimiter(
			rdb,
			cfg.Redis.RateLimit,
			time.Duration(cfg.Redis.RateWindowSeconds)*time.Second,
			cfg.Metrics.ServiceName,
			cfg.Redis.FailOpen,
			log,
		)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
		log.Info("Rate limiting enabled: %d requests per %ds", cfg.Redis.RateLimit, cfg.Redis.RateWindowSeconds)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты по дням
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Каталог товаров
	api.HandleFunc("/products", listProducts.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Афиша мероприятий
	api.HandleFunc("/events", listEvents.Handle).Methods(http.MethodGet, http.MethodOptions)

	// Создание checkout сессии Stripe
	api.Handle("/create-checkout-session", limit(createCheckout.Handle)).Methods(http.MethodPost, http.MethodOptions)

	// Webhook Stripe (подпись проверяется в handler)
	api.HandleFunc("/stripe-webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	verifier := middleware.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, log))

	// --- Бронирования ---
	protected.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/me/bookings", getUserBookings.Handle).Methods(http.MethodGet, http.MethodOptions)

	// --- Заказы ---
	protected.HandleFunc("/me/orders", getOrders.HandleMine).Methods(http.MethodGet, http.MethodOptions)

	// ============================================================
	// ADMIN ROUTES (Bearer токен + роль admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(verifier, log))
	admin.Use(middleware.RequireAdmin(profileRepository, log))

	admin.HandleFunc("/bookings", getAllBookings.Handle).Methods(http.MethodGet, http.MethodOptions)
	admin.HandleFunc("/availability", listAvailability.Handle).Methods(http.MethodGet, http.MethodOptions)
	admin.HandleFunc("/availability", addAvailability.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/availability/{slotId}", deleteAvailability.Handle).Methods(http.MethodDelete, http.MethodOptions)
	admin.HandleFunc("/orders", getOrders.HandleAll).Methods(http.MethodGet, http.MethodOptions)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики пула
	close(stopMetricsCh)

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
