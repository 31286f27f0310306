package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingsHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/get_available_slots"
	healthHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/health"
	marketplaceHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/marketplace"
	messagesHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/messages"
	paymentsHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/payments"
	profilesHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/profiles"
	reviewsHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/reviews"
	schoolsHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/schools"
	venuesHandler "github.com/m04kA/SMC-SoundInkube/internal/api/handlers/venues"
	"github.com/m04kA/SMC-SoundInkube/internal/api/middleware"
	"github.com/m04kA/SMC-SoundInkube/internal/config"
	"github.com/m04kA/SMC-SoundInkube/internal/domain"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/events"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/queue/settlement"
	"github.com/m04kA/SMC-SoundInkube/internal/infra/scheduler"
	bookingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/booking"
	enrollmentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/enrollment"
	listingRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/listing"
	messageRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/message"
	orderRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/order"
	paymentRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/payment"
	profileRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/profile"
	reviewRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/review"
	schoolRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/school"
	targetsRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/targets"
	userRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/user"
	venueRepo "github.com/m04kA/SMC-SoundInkube/internal/infra/storage/venue"
	"github.com/m04kA/SMC-SoundInkube/internal/integrations/gateway"
	bookingsService "github.com/m04kA/SMC-SoundInkube/internal/service/bookings"
	marketplaceService "github.com/m04kA/SMC-SoundInkube/internal/service/marketplace"
	messagesService "github.com/m04kA/SMC-SoundInkube/internal/service/messages"
	paymentsService "github.com/m04kA/SMC-SoundInkube/internal/service/payments"
	profilesService "github.com/m04kA/SMC-SoundInkube/internal/service/profiles"
	reviewsService "github.com/m04kA/SMC-SoundInkube/internal/service/reviews"
	schoolsService "github.com/m04kA/SMC-SoundInkube/internal/service/schools"
	venuesService "github.com/m04kA/SMC-SoundInkube/internal/service/venues"
	createBookingUC "github.com/m04kA/SMC-SoundInkube/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SoundInkube/internal/usecase/get_available_slots"
	settlePaymentUC "github.com/m04kA/SMC-SoundInkube/internal/usecase/settle_payment"
	updateBookingUC "github.com/m04kA/SMC-SoundInkube/internal/usecase/update_booking"
	"github.com/m04kA/SMC-SoundInkube/pkg/dbmetrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/logger"
	"github.com/m04kA/SMC-SoundInkube/pkg/metrics"
	"github.com/m04kA/SMC-SoundInkube/pkg/txmanager"
)

// eventPublisher Kafka или заглушка
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close() error
}

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

	log.Info("Starting SMC-SoundInkube...")
	log.Info("Configuration loaded from config.toml (settlement=%s)", cfg.Settlement.Mode)

	// Инициализируем метрики (если включены)
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка ничего не собирает, пул не опрашивается
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Доменные события
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			log.Fatal("Failed to initialize kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
		log.Info("Kafka events enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	venueRepository := venueRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)
	schoolRepository := schoolRepo.NewRepository(wrappedDB)
	enrollmentRepository := enrollmentRepo.NewRepository(wrappedDB)
	listingRepository := listingRepo.NewRepository(wrappedDB)
	orderRepository := orderRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	messageRepository := messageRepo.NewRepository(wrappedDB)
	targetRepository := targetsRepo.NewRepository(wrappedDB)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		txMgr,
		publisher,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		venueRepository,
		log,
	)
	settlePaymentUseCase := settlePaymentUC.NewUseCase(
		paymentRepository,
		targetRepository,
		gateway.NewSimulated(),
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Очередь проведения платежей (только в режиме queue)
	var settlementQueue paymentsService.SettlementQueue
	var consumer *settlement.Consumer
	if cfg.Settlement.Mode == config.SettlementQueue {
		settlementPublisher := settlement.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.SettlementQueue, log)
		defer settlementPublisher.Close()
		settlementQueue = settlementPublisher

		consumer = settlement.NewConsumer(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.SettlementQueue,
			cfg.RabbitMQ.Prefetch,
			func(ctx context.Context, paymentID int64) error {
				_, err := settlePaymentUseCase.Execute(ctx, paymentID)
				return err
			},
			log,
			settlePaymentUC.ErrPaymentNotFound,
		)
		log.Info("Settlement queue enabled (queue=%s)", cfg.RabbitMQ.SettlementQueue)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	venueSvc := venuesService.NewService(venueRepository, log)
	schoolSvc := schoolsService.NewService(schoolRepository, enrollmentRepository, log)
	marketplaceSvc := marketplaceService.NewService(listingRepository, orderRepository, log)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		targetRepository,
		settlePaymentUseCase,
		settlementQueue,
		txMgr,
		log,
	)
	reviewSvc := reviewsService.NewService(
		reviewRepository,
		targetRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	profileSvc := profilesService.NewService(profileRepository, userRepository, log)
	messageSvc := messagesService.NewService(messageRepository, userRepository, log)

	// Фоновые задачи
	var jobs *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobs, err = scheduler.New(log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		interval := time.Duration(cfg.Scheduler.BookingCompletionInterval) * time.Second
		if err := jobs.AddBookingCompletion(interval, bookingSvc); err != nil {
			log.Fatal("Failed to schedule booking completion: %v", err)
		}
		jobs.Start()
		log.Info("Booking completion job scheduled every %s", interval)
	}

	// Кэш публичных каталогов
	cache := func(next http.Handler) http.Handler { return next }
	invalidateCache := cache
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable (%s), responses will not be cached: %v", cfg.Redis.Addr, err)
		}
		cancel()

		cache = middleware.Cache(rdb, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)
		invalidateCache = middleware.InvalidateCache(rdb, log)
		log.Info("Public read cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Инициализируем handlers
	bookings := bookingsHandler.NewHandler(createBookingUseCase, updateBookingUseCase, bookingSvc, log)
	studios := venuesHandler.NewHandler(domain.VenueStudio, venueSvc, log)
	jamPads := venuesHandler.NewHandler(domain.VenueJamPad, venueSvc, log)
	studioSlots := getAvailableSlotsHandler.NewHandler(domain.VenueStudio, getAvailableSlotsUseCase, log)
	jamPadSlots := getAvailableSlotsHandler.NewHandler(domain.VenueJamPad, getAvailableSlotsUseCase, log)
	schools := schoolsHandler.NewHandler(schoolSvc, log)
	marketplace := marketplaceHandler.NewHandler(marketplaceSvc, log)
	payments := paymentsHandler.NewHandler(paymentSvc, log)
	reviews := reviewsHandler.NewHandler(reviewSvc, log)
	profiles := profilesHandler.NewHandler(profileSvc, log)
	messages := messagesHandler.NewHandler(messageSvc, log)
	health := healthHandler.NewHandler(db, log)
	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, log)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание меняется с каждым бронированием, поэтому не кэшируется
	api.HandleFunc("/studios/{venueId}/availability", studioSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/jampads/{venueId}/availability", jamPadSlots.Handle).Methods(http.MethodGet)

	// Каталоги кэшируются в Redis

	public := api.PathPrefix("").Subrouter()
	public.Use(cache)

	// --- Студии и джем-пады ---
	public.HandleFunc("/studios", studios.List).Methods(http.MethodGet)
	public.HandleFunc("/studios/{venueId}", studios.Get).Methods(http.MethodGet)
	public.HandleFunc("/jampads", jamPads.List).Methods(http.MethodGet)
	public.HandleFunc("/jampads/{venueId}", jamPads.Get).Methods(http.MethodGet)

	// --- Музыкальные школы ---
	public.HandleFunc("/schools", schools.List).Methods(http.MethodGet)
	public.HandleFunc("/schools/{schoolId}", schools.Get).Methods(http.MethodGet)

	// --- Маркетплейс ---
	// search регистрируется до {listingId}
	public.HandleFunc("/marketplace/search", marketplace.Search).Methods(http.MethodGet)
	public.HandleFunc("/marketplace", marketplace.ListListings).Methods(http.MethodGet)
	public.HandleFunc("/marketplace/{listingId}", marketplace.GetListing).Methods(http.MethodGet)

	// --- Отзывы ---
	public.HandleFunc("/reviews", reviews.List).Methods(http.MethodGet)
	public.HandleFunc("/reviews/{reviewId}", reviews.Get).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)
	protected.Use(invalidateCache)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", bookings.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", bookings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", bookings.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", bookings.Delete).Methods(http.MethodDelete)

	// --- Студии и джем-пады (роль проверяет сервис) ---
	protected.HandleFunc("/studios", studios.Create).Methods(http.MethodPost)
	protected.HandleFunc("/studios/{venueId}", studios.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/studios/{venueId}", studios.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/jampads", jamPads.Create).Methods(http.MethodPost)
	protected.HandleFunc("/jampads/{venueId}", jamPads.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/jampads/{venueId}", jamPads.Delete).Methods(http.MethodDelete)

	// --- Школы и записи на курсы ---
	protected.HandleFunc("/schools", schools.Create).Methods(http.MethodPost)
	protected.HandleFunc("/schools/{schoolId}/enrollments", schools.Enroll).Methods(http.MethodPost)
	protected.HandleFunc("/enrollments", schools.MyEnrollments).Methods(http.MethodGet)
	protected.HandleFunc("/enrollments/{enrollmentId}", schools.UpdateEnrollmentStatus).Methods(http.MethodPatch)

	// --- Маркетплейс ---
	protected.HandleFunc("/marketplace", marketplace.CreateListing).Methods(http.MethodPost)
	protected.HandleFunc("/marketplace/{listingId}", marketplace.UpdateListing).Methods(http.MethodPatch)
	protected.HandleFunc("/marketplace/{listingId}", marketplace.DeleteListing).Methods(http.MethodDelete)
	protected.HandleFunc("/marketplace/{listingId}/orders", marketplace.CreateOrder).Methods(http.MethodPost)
	protected.HandleFunc("/orders", marketplace.ListMyOrders).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}", marketplace.GetOrder).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}", marketplace.UpdateOrderStatus).Methods(http.MethodPatch)

	// --- Платежи ---
	protected.HandleFunc("/payments", payments.Create).Methods(http.MethodPost)
	protected.Handle("/payments", adminOnly(http.HandlerFunc(payments.ListAll))).Methods(http.MethodGet)
	protected.HandleFunc("/payments/user", payments.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}", payments.Get).Methods(http.MethodGet)
	protected.Handle("/payments/{paymentId}", adminOnly(http.HandlerFunc(payments.UpdateStatus))).Methods(http.MethodPatch)

	// --- Отзывы ---
	protected.HandleFunc("/reviews", reviews.Create).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{reviewId}", reviews.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/reviews/{reviewId}", reviews.Delete).Methods(http.MethodDelete)

	// --- Профили ---
	protected.HandleFunc("/profiles/me", profiles.GetMine).Methods(http.MethodGet)
	protected.HandleFunc("/profiles/me", profiles.PutMine).Methods(http.MethodPut)
	protected.HandleFunc("/profiles/{userId}", profiles.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profiles/{userId}", profiles.Patch).Methods(http.MethodPatch)

	// --- Сообщения ---
	protected.HandleFunc("/messages", messages.Send).Methods(http.MethodPost)
	protected.HandleFunc("/messages/conversations", messages.Conversations).Methods(http.MethodGet)
	protected.HandleFunc("/messages/conversation/{userId}", messages.Thread).Methods(http.MethodGet)
	protected.HandleFunc("/messages/{messageId}/read", messages.MarkRead).Methods(http.MethodPatch)
	protected.HandleFunc("/messages/{messageId}", messages.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Консьюмер очереди проведения платежей
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	var workers sync.WaitGroup
	if consumer != nil {
		workers.Add(1)
		go func() {
			defer workers.Done()
			consumer.Run(workersCtx)
		}()
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if jobs != nil {
		if err := jobs.Shutdown(); err != nil {
			log.Error("Scheduler shutdown failed: %v", err)
		}
		log.Info("Scheduler stopped")
	}

	stopWorkers()
	workers.Wait()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
