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

	cancelAppointmentHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/cancel_appointment"
	changeStatusHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/change_status"
	createAppointmentHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/get_available_slots"
	getCompanyAppointmentsHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/get_company_appointments"
	getScheduleConfigHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/get_schedule_config"
	moveAppointmentHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/move_appointment"
	updateScheduleConfigHandler "github.com/dkmsk/DCS-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/dkmsk/DCS-SchedulingService/internal/api/middleware"
	"github.com/dkmsk/DCS-SchedulingService/internal/config"
	appointmentRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/appointment"
	configRepo "github.com/dkmsk/DCS-SchedulingService/internal/infra/storage/scheduleconfig"
	companyServiceClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/companyservice"
	notifyServiceClient "github.com/dkmsk/DCS-SchedulingService/internal/integrations/notifyservice"
	appointmentsService "github.com/dkmsk/DCS-SchedulingService/internal/service/appointments"
	configService "github.com/dkmsk/DCS-SchedulingService/internal/service/config"
	changeStatusUC "github.com/dkmsk/DCS-SchedulingService/internal/usecase/change_status"
	createAppointmentUC "github.com/dkmsk/DCS-SchedulingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/dkmsk/DCS-SchedulingService/internal/usecase/get_available_slots"
	moveAppointmentUC "github.com/dkmsk/DCS-SchedulingService/internal/usecase/move_appointment"
	"github.com/dkmsk/DCS-SchedulingService/pkg/dbmetrics"
	"github.com/dkmsk/DCS-SchedulingService/pkg/logger"
	"github.com/dkmsk/DCS-SchedulingService/pkg/metrics"
	"github.com/dkmsk/DCS-SchedulingService/pkg/simpletxmanager"
	"github.com/dkmsk/DCS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting DCS-SchedulingService...")
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
	companyClient := companyServiceClient.NewClient(
		cfg.CompanyService.URL,
		time.Duration(cfg.CompanyService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CompanyService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.CompanyService.URL, cfg.CompanyService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		configRepository      *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		companyClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		companyClient,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		configRepository,
		companyClient,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		companyClient,
		txMgr,
		log,
	)
	moveAppointmentUseCase := moveAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		companyClient,
		txMgr,
		log,
	)
	changeStatusUseCase := changeStatusUC.NewUseCase(
		appointmentRepository,
		companyClient,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	moveAppointment := moveAppointmentHandler.NewHandler(moveAppointmentUseCase, log)
	changeStatus := changeStatusHandler.NewHandler(changeStatusUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(changeStatusUseCase, log)
	getCompanyAppointments := getCompanyAppointmentsHandler.NewHandler(appointmentSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(configSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу присваивается идентификатор для трассировки
	r.Use(middleware.RequestID)

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

	// Расчёт открытых слотов для записи
	api.HandleFunc("/companies/{companyId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение конфигурации расписания компании
	api.HandleFunc("/companies/{companyId}/schedule-config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи
	protected.HandleFunc("/appointments/{appointmentId}/move", moveAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", changeStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление компанией (для менеджеров) ---
	// Список записей компании
	protected.HandleFunc("/companies/{companyId}/appointments", getCompanyAppointments.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расписания
	protected.HandleFunc("/companies/{companyId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

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
