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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/anireserve/booking-service/internal/api/handlers/cancel_reservation"
	createBlockedPeriodHandler "github.com/anireserve/booking-service/internal/api/handlers/create_blocked_period"
	createReservationHandler "github.com/anireserve/booking-service/internal/api/handlers/create_reservation"
	deleteBlockedPeriodHandler "github.com/anireserve/booking-service/internal/api/handlers/delete_blocked_period"
	getAvailableSlotsHandler "github.com/anireserve/booking-service/internal/api/handlers/get_available_slots"
	getBlockedPeriodsHandler "github.com/anireserve/booking-service/internal/api/handlers/get_blocked_periods"
	getClientReservationsHandler "github.com/anireserve/booking-service/internal/api/handlers/get_client_reservations"
	getProfessionalReservationsHandler "github.com/anireserve/booking-service/internal/api/handlers/get_professional_reservations"
	getReservationHandler "github.com/anireserve/booking-service/internal/api/handlers/get_reservation"
	getScheduleHandler "github.com/anireserve/booking-service/internal/api/handlers/get_schedule"
	getSlotSettingsHandler "github.com/anireserve/booking-service/internal/api/handlers/get_slot_settings"
	updateReservationStatusHandler "github.com/anireserve/booking-service/internal/api/handlers/update_reservation_status"
	updateScheduleHandler "github.com/anireserve/booking-service/internal/api/handlers/update_schedule"
	updateSlotSettingsHandler "github.com/anireserve/booking-service/internal/api/handlers/update_slot_settings"
	"github.com/anireserve/booking-service/internal/api/middleware"
	"github.com/anireserve/booking-service/internal/config"
	reservationRepo "github.com/anireserve/booking-service/internal/infra/storage/reservation"
	scheduleRepo "github.com/anireserve/booking-service/internal/infra/storage/schedule"
	settingsRepo "github.com/anireserve/booking-service/internal/infra/storage/settings"
	notifierClient "github.com/anireserve/booking-service/internal/integrations/notifier"
	proServiceClient "github.com/anireserve/booking-service/internal/integrations/proservice"
	reservationsService "github.com/anireserve/booking-service/internal/service/reservations"
	scheduleService "github.com/anireserve/booking-service/internal/service/schedule"
	settingsService "github.com/anireserve/booking-service/internal/service/settings"
	createReservationUC "github.com/anireserve/booking-service/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/anireserve/booking-service/internal/usecase/get_available_slots"
	"github.com/anireserve/booking-service/pkg/dbmetrics"
	"github.com/anireserve/booking-service/pkg/logger"
	"github.com/anireserve/booking-service/pkg/metrics"
	"github.com/anireserve/booking-service/pkg/simpletxmanager"
	"github.com/anireserve/booking-service/pkg/txmanager"
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

	log.Info("Starting AniReserve booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	proClient := proServiceClient.NewClient(
		cfg.ProService.URL,
		time.Duration(cfg.ProService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifierClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.ProService.URL, cfg.ProService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		reservationRepository = reservationRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		notifyClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		settingsRepository,
		proClient,
		notifyClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		settingsRepository,
		proClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationsSvc, log)
	getProfessionalReservations := getProfessionalReservationsHandler.NewHandler(reservationsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	getBlockedPeriods := getBlockedPeriodsHandler.NewHandler(scheduleSvc, log)
	createBlockedPeriod := createBlockedPeriodHandler.NewHandler(scheduleSvc, log)
	deleteBlockedPeriod := deleteBlockedPeriodHandler.NewHandler(scheduleSvc, log)
	getSlotSettings := getSlotSettingsHandler.NewHandler(settingsSvc, log)
	updateSlotSettings := updateSlotSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для бронирования
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение еженедельного расписания профессионала
	api.HandleFunc("/professionals/{professionalId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Перевод бронирования в новый статус (подтверждение, отклонение, завершение)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Кабинет профессионала ---
	// Бронирования профессионала с фильтрацией
	protected.HandleFunc("/professionals/{professionalId}/reservations",
		getProfessionalReservations.Handle).Methods(http.MethodGet)

	// Обновление еженедельного расписания
	protected.HandleFunc("/professionals/{professionalId}/schedule",
		updateSchedule.Handle).Methods(http.MethodPut)

	// Периоды недоступности (отпуска)
	protected.HandleFunc("/professionals/{professionalId}/blocked-periods",
		getBlockedPeriods.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/blocked-periods",
		createBlockedPeriod.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/blocked-periods/{periodId}",
		deleteBlockedPeriod.Handle).Methods(http.MethodDelete)

	// Настройки генерации слотов
	protected.HandleFunc("/professionals/{professionalId}/slot-settings",
		getSlotSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/slot-settings",
		updateSlotSettings.Handle).Methods(http.MethodPut)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
