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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/OfficeBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/OfficeBookingService/internal/api/handlers/create_reservation"
	getOfficeAvailabilityHandler "github.com/m04kA/OfficeBookingService/internal/api/handlers/get_office_availability"
	getReservationHandler "github.com/m04kA/OfficeBookingService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/OfficeBookingService/internal/api/handlers/list_reservations"
	"github.com/m04kA/OfficeBookingService/internal/api/middleware"
	"github.com/m04kA/OfficeBookingService/internal/config"
	"github.com/m04kA/OfficeBookingService/internal/domain"
	"github.com/m04kA/OfficeBookingService/internal/infra/lock"
	officeRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/office"
	reservationRepo "github.com/m04kA/OfficeBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/OfficeBookingService/internal/integrations/notifications"
	userServiceClient "github.com/m04kA/OfficeBookingService/internal/integrations/userservice"
	reservationsService "github.com/m04kA/OfficeBookingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/OfficeBookingService/internal/usecase/create_reservation"
	getOfficeAvailabilityUC "github.com/m04kA/OfficeBookingService/internal/usecase/get_office_availability"
	"github.com/m04kA/OfficeBookingService/pkg/dbmetrics"
	"github.com/m04kA/OfficeBookingService/pkg/logger"
	"github.com/m04kA/OfficeBookingService/pkg/metrics"
	"github.com/m04kA/OfficeBookingService/pkg/txmanager"
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

	log.Info("Starting OfficeBookingService...")

	location, err := cfg.Reservation.Location()
	if err != nil {
		log.Fatal("Invalid reservation timezone: %v", err)
	}

	// Метрики считаются всегда, наружу отдаются только если включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
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

	stopMetricsCh := make(chan struct{})
	var recorder dbmetrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metricsCollector
	}
	wrappedDB := dbmetrics.WrapWithDefault(db, recorder, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка на офис
	var locker createReservationUC.Locker
	switch cfg.Lock.Driver {
	case config.LockDriverRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = lock.NewRedisLocker(redisClient, cfg.Redis.KeyPrefix, cfg.Lock.RetryInterval())
		log.Info("Redis lock manager initialized (addr=%s)", cfg.Redis.Addr)
	case config.LockDriverMemory:
		locker = lock.NewMemoryLocker(cfg.Lock.RetryInterval())
		log.Warn("In-process lock manager is used, run a single replica only")
	}

	// Уведомления
	var publisher notifications.Publisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := notifications.Connect(cfg.NATS.URL, cfg.NATS.ClientName)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		log.Info("Notifications are published to NATS (%s)", cfg.NATS.URL)
	} else {
		publisher = notifications.NewLogPublisher(log)
		log.Warn("NATS url is empty, notifications are only logged")
	}
	dispatcher := notifications.NewDispatcher(publisher, cfg.NATS.SubjectPrefix, log)

	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	officeRepository := officeRepo.NewRepository(wrappedDB)

	// Сервисы и use cases
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		officeRepository,
		dispatcher,
		location,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		officeRepository,
		locker,
		dispatcher,
		txMgr,
		metricsCollector,
		log,
		createReservationUC.Options{
			LockTTL:  cfg.Lock.TTL(),
			LockWait: cfg.Lock.Wait(),
			Location: location,
		},
	)

	getOfficeAvailabilityUseCase := getOfficeAvailabilityUC.NewUseCase(
		reservationRepository,
		officeRepository,
		txMgr,
		location,
		log,
	)

	// Handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, cfg.Reservation.RetryAfter, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	listVisitorReservations := listReservationsHandler.NewHandler(reservationSvc, listReservationsHandler.VisitorView, log)
	listHostReservations := listReservationsHandler.NewHandler(reservationSvc, listReservationsHandler.HostView, log)
	getOfficeAvailability := getOfficeAvailabilityHandler.NewHandler(getOfficeAvailabilityUseCase, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/offices/{officeId}/occupied-dates", getOfficeAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	requireIndex := middleware.RequirePermission(userClient, domain.PermissionReservationIndex, log)
	requireStore := middleware.RequirePermission(userClient, domain.PermissionReservationStore, log)
	requireCancel := middleware.RequirePermission(userClient, domain.PermissionReservationCancel, log)

	// Создание бронирования
	protected.Handle("/reservations", requireStore(http.HandlerFunc(createReservation.Handle))).Methods(http.MethodPost)

	// Бронирования пользователя
	protected.Handle("/reservations", requireIndex(http.HandlerFunc(listVisitorReservations.Handle))).Methods(http.MethodGet)

	// Бронирование по ID (гость или владелец офиса)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.Handle("/reservations/{reservationId}", requireCancel(http.HandlerFunc(cancelReservation.Handle))).Methods(http.MethodDelete)

	// Бронирования по офисам владельца
	protected.Handle("/host/reservations", requireIndex(http.HandlerFunc(listHostReservations.Handle))).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
