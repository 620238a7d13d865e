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

	closeModalHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/close_modal"
	confirmAllocationHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/confirm_allocation"
	createSessionHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/create_session"
	deleteSessionHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/delete_session"
	getSessionHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/get_session"
	listAllocationsHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/list_allocations"
	pickEmployeeHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/pick_employee"
	refreshSessionHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/refresh_session"
	requestAllocationHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/request_allocation"
	selectAppointmentHandler "github.com/m04kA/SMC-AllocationService/internal/api/handlers/select_appointment"
	"github.com/m04kA/SMC-AllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-AllocationService/internal/config"
	"github.com/m04kA/SMC-AllocationService/internal/domain"
	allocationRepo "github.com/m04kA/SMC-AllocationService/internal/infra/storage/allocation"
	appointmentServiceClient "github.com/m04kA/SMC-AllocationService/internal/integrations/appointmentservice"
	sessionsService "github.com/m04kA/SMC-AllocationService/internal/service/sessions"
	allocationWorkflow "github.com/m04kA/SMC-AllocationService/internal/usecase/allocation_workflow"
	"github.com/m04kA/SMC-AllocationService/pkg/logger"
	"github.com/m04kA/SMC-AllocationService/pkg/metrics"
)

const sessionJanitorInterval = time.Minute

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

	log.Info("Starting SMC-AllocationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); методы nil-коллектора ничего не делают
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Журнал распределений (если включен)
	var (
		journal           allocationWorkflow.AllocationJournal
		allocationJournal *allocationRepo.Repository
	)
	if cfg.Journal.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		allocationJournal = allocationRepo.NewRepository(db)
		journal = allocationJournal
	} else {
		log.Info("Allocation journal disabled")
	}

	// Клиент бэкенда записей; токен берётся из входящего запроса
	appointmentClient := appointmentServiceClient.NewClient(
		cfg.AppointmentService.URL,
		time.Duration(cfg.AppointmentService.Timeout)*time.Second,
		appointmentServiceClient.TokenFunc(middleware.BearerToken),
		metricsCollector,
		log,
	)
	log.Info("Integration client initialized (AppointmentService=%s timeout=%ds)",
		cfg.AppointmentService.URL, cfg.AppointmentService.Timeout)

	settings := allocationWorkflow.Settings{
		ApprovedStatus:              domain.AppointmentStatus(cfg.Allocation.ApprovedStatus),
		UpdateStatusAfterAllocation: cfg.Allocation.UpdateStatusAfterAllocation,
		InProgressNote:              cfg.Allocation.InProgressNote,
	}

	// Реестр сессий распределения
	sessionSvc := sessionsService.NewService(
		func() *allocationWorkflow.Controller {
			return allocationWorkflow.NewController(appointmentClient, journal, metricsCollector, settings, log)
		},
		time.Duration(cfg.Allocation.SessionIdleTTL)*time.Second,
		metricsCollector,
		log,
	)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go sessionSvc.Run(janitorCtx, sessionJanitorInterval)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	refreshSession := refreshSessionHandler.NewHandler(sessionSvc, log)
	selectAppointment := selectAppointmentHandler.NewHandler(sessionSvc, log)
	requestAllocation := requestAllocationHandler.NewHandler(sessionSvc, log)
	pickEmployee := pickEmployeeHandler.NewHandler(sessionSvc, log)
	confirmAllocation := confirmAllocationHandler.NewHandler(sessionSvc, log)
	closeModal := closeModalHandler.NewHandler(sessionSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.HTTPMetrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют Authorization: Bearer
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(log))

	// --- Сессии распределения ---
	api.HandleFunc("/allocation-sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/allocation-sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/allocation-sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/allocation-sessions/{sessionId}/refresh", refreshSession.Handle).Methods(http.MethodPost)

	// --- Карточка записи и выбор исполнителя ---
	api.HandleFunc("/allocation-sessions/{sessionId}/appointments/{appointmentId}/select",
		selectAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/allocation-sessions/{sessionId}/allocation-request",
		requestAllocation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/allocation-sessions/{sessionId}/employees/{employeeId}",
		pickEmployee.Handle).Methods(http.MethodPut)
	api.HandleFunc("/allocation-sessions/{sessionId}/allocation-confirm",
		confirmAllocation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/allocation-sessions/{sessionId}/modals/{modal}/close",
		closeModal.Handle).Methods(http.MethodPost)

	// --- Журнал распределений ---
	if allocationJournal != nil {
		listAllocations := listAllocationsHandler.NewHandler(allocationJournal, log)
		api.HandleFunc("/allocations", listAllocations.Handle).Methods(http.MethodGet)
	}

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

	stopJanitor()
	log.Info("Session janitor stopped (open sessions=%d)", sessionSvc.Len())

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
