package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	createPropertyHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_property"
	createReviewHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_review"
	deletePropertyHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_property"
	deleteUserHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_user"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getPropertyHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_property"
	getPropertyBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_property_bookings"
	getPropertyReviewsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_property_reviews"
	getUserHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user"
	getUserBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_bookings"
	getUserPropertiesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_properties"
	registerUserHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/register_user"
	setBookingStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/set_booking_status"
	updateUserHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_user"
	"github.com/m04kA/SMC-RentalService/internal/config"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	propertyRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/property"
	reviewRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/review"
	userRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/user"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	"github.com/m04kA/SMC-RentalService/internal/service/pricing"
	propertiesService "github.com/m04kA/SMC-RentalService/internal/service/properties"
	reviewsService "github.com/m04kA/SMC-RentalService/internal/service/reviews"
	usersService "github.com/m04kA/SMC-RentalService/internal/service/users"
	createBookingUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_booking"
	deleteUserUC "github.com/m04kA/SMC-RentalService/internal/usecase/delete_user"
	setBookingStatusUC "github.com/m04kA/SMC-RentalService/internal/usecase/set_booking_status"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

func runServe(ctx context.Context, configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// С nil метриками обёртка работает как обычный *sql.DB
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	txManager := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithRetry(cfg.Tx.MaxRetries, cfg.Tx.InitialInterval(), cfg.Tx.MaxInterval()),
		txmanager.WithLogger(log),
	)

	// Инициализируем репозитории
	users := userRepo.NewRepository(wrappedDB)
	properties := propertyRepo.NewRepository(wrappedDB)
	bookings := bookingRepo.NewRepository(wrappedDB)
	reviews := reviewRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	recorder := metrics.NewRecorder(metricsCollector)
	calculator := pricing.NewCalculator()

	userSvc := usersService.NewService(users, usersService.NewHMACHasher(), log)
	propertySvc := propertiesService.NewService(properties, bookings, reviews, txManager, log)
	bookingSvc := bookingsService.NewService(bookings, properties, log)
	reviewSvc := reviewsService.NewService(reviews, properties, txManager, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(bookings, properties, calculator, txManager, recorder, log)
	setBookingStatusUseCase := setBookingStatusUC.NewUseCase(bookings, txManager, recorder, log)
	deleteUserUseCase := deleteUserUC.NewUseCase(users, properties, bookings, reviews, txManager, recorder, log)

	// Инициализируем handlers
	router := newRouter(routes{
		registerUser: registerUserHandler.NewHandler(userSvc, log).Handle,
		getUser:      getUserHandler.NewHandler(userSvc, log).Handle,
		updateUser:   updateUserHandler.NewHandler(userSvc, log).Handle,
		deleteUser:   deleteUserHandler.NewHandler(deleteUserUseCase, log).Handle,

		createProperty:      createPropertyHandler.NewHandler(propertySvc, log).Handle,
		getProperty:         getPropertyHandler.NewHandler(propertySvc, log).Handle,
		getUserProperties:   getUserPropertiesHandler.NewHandler(propertySvc, log).Handle,
		deleteProperty:      deletePropertyHandler.NewHandler(propertySvc, log).Handle,
		getPropertyBookings: getPropertyBookingsHandler.NewHandler(bookingSvc, log).Handle,

		createBooking:    createBookingHandler.NewHandler(createBookingUseCase, log).Handle,
		getBooking:       getBookingHandler.NewHandler(bookingSvc, log).Handle,
		setBookingStatus: setBookingStatusHandler.NewHandler(setBookingStatusUseCase, log).Handle,
		getUserBookings:  getUserBookingsHandler.NewHandler(bookingSvc, log).Handle,

		createReview:       createReviewHandler.NewHandler(reviewSvc, log).Handle,
		getPropertyReviews: getPropertyReviewsHandler.NewHandler(reviewSvc, log).Handle,
	}, routerOptions{
		requestTimeout: cfg.Server.RequestTimeoutDuration(),
		metrics:        metricsCollector,
		metricsPath:    cfg.Metrics.Path,
		logger:         log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Ожидаем сигнал завершения
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
