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

	blockDateHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/block_date"
	bookSlotHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/book_slot"
	removeSlotHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/remove_slot"
	resolveAvailabilityHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/resolve_availability"
	resolveRangeHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/resolve_range"
	searchAvailabilityHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/search_availability"
	setRecurringHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/set_recurring_schedule"
	setSingleHandler "github.com/m04kA/HMS-ScheduleService/internal/api/handlers/set_single_schedule"
	"github.com/m04kA/HMS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/HMS-ScheduleService/internal/config"
	availabilityRepo "github.com/m04kA/HMS-ScheduleService/internal/infra/storage/availability"
	appointmentServiceClient "github.com/m04kA/HMS-ScheduleService/internal/integrations/appointmentservice"
	auditServiceClient "github.com/m04kA/HMS-ScheduleService/internal/integrations/auditservice"
	doctorServiceClient "github.com/m04kA/HMS-ScheduleService/internal/integrations/doctorservice"
	availabilityService "github.com/m04kA/HMS-ScheduleService/internal/service/availability"
	scheduleService "github.com/m04kA/HMS-ScheduleService/internal/service/schedule"
	bookSlotUC "github.com/m04kA/HMS-ScheduleService/internal/usecase/book_slot"
	searchDoctorsUC "github.com/m04kA/HMS-ScheduleService/internal/usecase/search_doctors"
	"github.com/m04kA/HMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ScheduleService/pkg/logger"
	"github.com/m04kA/HMS-ScheduleService/pkg/metrics"
	"github.com/m04kA/HMS-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-ScheduleService/pkg/txmanager"
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

	log.Info("Starting HMS-ScheduleService...")
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
	doctorClient := doctorServiceClient.NewClient(
		cfg.DoctorService.URL,
		time.Duration(cfg.DoctorService.Timeout)*time.Second,
		log,
	)
	appointmentClient := appointmentServiceClient.NewClient(
		cfg.AppointmentService.URL,
		time.Duration(cfg.AppointmentService.Timeout)*time.Second,
		log,
	)
	auditClient := auditServiceClient.NewClient(
		cfg.AuditService.URL,
		time.Duration(cfg.AuditService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DoctorService=%s, AppointmentService=%s, AuditService=%s)",
		cfg.DoctorService.URL, cfg.AppointmentService.URL, cfg.AuditService.URL)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и транзакционный менеджер (с метриками или без)
	var (
		repository *availabilityRepo.Repository
		txMgr      TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		repository = availabilityRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		repository = availabilityRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(repository, log)
	scheduleSvc := scheduleService.NewService(repository, txMgr, auditClient, log)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		repository,
		appointmentClient,
		auditClient,
		txMgr,
		log,
	)
	searchDoctorsUseCase := searchDoctorsUC.NewUseCase(
		repository,
		doctorClient,
		log,
	)

	// Инициализируем handlers
	resolveAvailability := resolveAvailabilityHandler.NewHandler(availabilitySvc, log)
	resolveRange := resolveRangeHandler.NewHandler(availabilitySvc, log)
	searchAvailability := searchAvailabilityHandler.NewHandler(searchDoctorsUseCase, log)
	setSingle := setSingleHandler.NewHandler(scheduleSvc, log)
	setRecurring := setRecurringHandler.NewHandler(scheduleSvc, log)
	blockDate := blockDateHandler.NewHandler(scheduleSvc, log)
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	removeSlot := removeSlotHandler.NewHandler(scheduleSvc, log)

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

	// Эффективное расписание врача на дату
	api.HandleFunc("/doctors/{doctorId}/availability",
		resolveAvailability.Handle).Methods(http.MethodGet)

	// Эффективное расписание врача на диапазон дат
	api.HandleFunc("/doctors/{doctorId}/availability/range",
		resolveRange.Handle).Methods(http.MethodGet)

	// Поиск врачей по дате и имени
	api.HandleFunc("/availability/search",
		searchAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Управление расписанием ---
	// Разовое расписание на дату
	protected.HandleFunc("/doctors/{doctorId}/schedule/single", setSingle.Handle).Methods(http.MethodPost)

	// Еженедельный шаблон
	protected.HandleFunc("/doctors/{doctorId}/schedule/recurring", setRecurring.Handle).Methods(http.MethodPost)

	// Блокировка даты
	protected.HandleFunc("/doctors/{doctorId}/schedule/block", blockDate.Handle).Methods(http.MethodPost)

	// Удаление слота из записи
	protected.HandleFunc("/schedule/records/{recordId}/slots/{slotIndex}", removeSlot.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	// Бронирование слота
	protected.HandleFunc("/bookings", bookSlot.Handle).Methods(http.MethodPost)

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
