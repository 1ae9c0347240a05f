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

	cancelReservationHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/create_reservation"
	decideReservationHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/decide_reservation"
	eventsHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/events"
	exportReservationsHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/export_reservations"
	getAvailabilityHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/get_availability"
	getPendingApprovalsHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/get_pending_approvals"
	getReservationHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/get_user_reservations"
	notificationsHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/notifications"
	resourcesHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/resources"
	spacesHandler "github.com/lxo898/reservas-inacap/internal/api/handlers/spaces"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	"github.com/lxo898/reservas-inacap/internal/config"
	"github.com/lxo898/reservas-inacap/internal/domain"
	"github.com/lxo898/reservas-inacap/internal/infra/mailer"
	approvalRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/approval"
	eventRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/event"
	notificationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/notification"
	reservationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/reservation"
	resourceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/resource"
	spaceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/space"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/internal/notifier"
	eventsService "github.com/lxo898/reservas-inacap/internal/service/events"
	notificationsService "github.com/lxo898/reservas-inacap/internal/service/notifications"
	reportsService "github.com/lxo898/reservas-inacap/internal/service/reports"
	reservationsService "github.com/lxo898/reservas-inacap/internal/service/reservations"
	spacesService "github.com/lxo898/reservas-inacap/internal/service/spaces"
	cancelReservationUC "github.com/lxo898/reservas-inacap/internal/usecase/cancel_reservation"
	createReservationUC "github.com/lxo898/reservas-inacap/internal/usecase/create_reservation"
	decideReservationUC "github.com/lxo898/reservas-inacap/internal/usecase/decide_reservation"
	"github.com/lxo898/reservas-inacap/pkg/dbmetrics"
	"github.com/lxo898/reservas-inacap/pkg/logger"
	"github.com/lxo898/reservas-inacap/pkg/metrics"
	"github.com/lxo898/reservas-inacap/pkg/simpletxmanager"
	"github.com/lxo898/reservas-inacap/pkg/txmanager"
)

func main() {
	// Cargamos la configuración
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Inicializamos el logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting reservas-inacap...")
	log.Info("Configuration loaded from config.toml")

	// Inicializamos métricas (si están habilitadas)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Conectamos a la base de datos
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configuramos el connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Verificamos la conexión
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Zona horaria institucional y grilla de bloques
	location, err := time.LoadLocation(cfg.Reservas.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Reservas.Timezone, err)
	}
	grid, err := domain.NewSlotGrid(cfg.Reservas.SlotIntervalMin, cfg.Reservas.DayStart, cfg.Reservas.DayEnd)
	if err != nil {
		log.Fatal("Failed to build slot grid: %v", err)
	}
	log.Info("Slot grid: %d min slots between %s and %s (%s)",
		cfg.Reservas.SlotIntervalMin, cfg.Reservas.DayStart, cfg.Reservas.DayEnd, cfg.Reservas.Timezone)

	// Transporte de correo (best-effort, puede estar deshabilitado)
	smtpMailer, err := mailer.New(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}
	if cfg.SMTP.Enabled {
		log.Info("SMTP mailer enabled (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Info("SMTP mailer disabled, notifications are in-app only")
	}

	// Inicializamos repositorios (con métricas o sin)
	var (
		reservations  *reservationRepo.Repository
		spaces        *spaceRepo.Repository
		resources     *resourceRepo.Repository
		approvals     *approvalRepo.Repository
		notifications *notificationRepo.Repository
		users         *userRepo.Repository
		events        *eventRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservations = reservationRepo.NewRepository(wrappedDB)
		spaces = spaceRepo.NewRepository(wrappedDB)
		resources = resourceRepo.NewRepository(wrappedDB)
		approvals = approvalRepo.NewRepository(wrappedDB)
		notifications = notificationRepo.NewRepository(wrappedDB)
		users = userRepo.NewRepository(wrappedDB)
		events = eventRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservations = reservationRepo.NewRepository(db)
		spaces = spaceRepo.NewRepository(db)
		resources = resourceRepo.NewRepository(db)
		approvals = approvalRepo.NewRepository(db)
		notifications = notificationRepo.NewRepository(db)
		users = userRepo.NewRepository(db)
		events = eventRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Despachador de notificaciones (persistencia + correo best-effort)
	dispatcher := notifier.NewDispatcher(users, notifications, smtpMailer, log,
		cfg.Reservas.InstitutionEmailDomains, cfg.Reservas.SendEmailToCleaning)

	// Inicializamos los servicios
	reservationsSvc := reservationsService.NewService(reservations, approvals, users, log)
	spacesSvc := spacesService.NewService(spaces, resources, users, log)
	notificationsSvc := notificationsService.NewService(notifications, log)
	reportsSvc := reportsService.NewService(reservations, resources, approvals, users, location, log)
	eventsSvc := eventsService.NewService(events, reservations, spaces, users, dispatcher, txMgr, log)

	// Inicializamos los use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservations,
		spaces,
		resources,
		users,
		dispatcher,
		txMgr,
		grid,
		location,
		log,
	)
	decideReservationUseCase := decideReservationUC.NewUseCase(
		reservations,
		approvals,
		users,
		dispatcher,
		txMgr,
		cfg.Reservas.CleaningGroup,
		log,
	)
	cancelReservationUseCase := cancelReservationUC.NewUseCase(
		reservations,
		users,
		dispatcher,
		txMgr,
		cfg.Reservas.MinCancelWindowHours,
		cfg.Reservas.CleaningGroup,
		log,
	)

	// Inicializamos los handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(cancelReservationUseCase, log)
	decideReservation := decideReservationHandler.NewHandler(decideReservationUseCase, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getPendingApprovals := getPendingApprovalsHandler.NewHandler(reservationsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(reservationsSvc, log)
	exportReservations := exportReservationsHandler.NewHandler(reportsSvc, log)
	notificationsH := notificationsHandler.NewHandler(notificationsSvc, log)
	spacesH := spacesHandler.NewHandler(spacesSvc, log)
	resourcesH := resourcesHandler.NewHandler(spacesSvc, log)
	eventsH := eventsHandler.NewHandler(eventsSvc, log)

	// Configuramos el router
	r := mux.NewRouter()

	// Metrics middleware (si las métricas están habilitadas)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Endpoint de métricas (público, sin autenticación)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// RUTAS PÚBLICAS (sin autenticación)
	// ============================================================

	// Disponibilidad de un espacio en formato calendario
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Catálogo de espacios y recursos
	api.HandleFunc("/espacios", spacesH.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/espacios/{spaceId}", spacesH.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/recursos", resourcesH.HandleList).Methods(http.MethodGet)

	// ============================================================
	// RUTAS PROTEGIDAS (requieren header X-User-ID)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Reservas ---
	protected.HandleFunc("/reservas", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservas/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservas/{reservationId}/cancelar", cancelReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/usuarios/{userId}/reservas", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Aprobaciones (staff) ---
	protected.HandleFunc("/aprobaciones", getPendingApprovals.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/aprobaciones/{reservationId}/decidir", decideReservation.Handle).Methods(http.MethodPost)

	// --- Reportes (staff) ---
	protected.HandleFunc("/reportes/reservas.csv", exportReservations.Handle).Methods(http.MethodGet)

	// --- Notificaciones ---
	protected.HandleFunc("/notificaciones", notificationsH.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/notificaciones/leidas", notificationsH.HandleMarkAllRead).Methods(http.MethodPost)

	// --- Administración del catálogo (staff) ---
	protected.HandleFunc("/espacios", spacesH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/espacios/{spaceId}", spacesH.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/espacios/{spaceId}", spacesH.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/recursos", resourcesH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/recursos/{resourceId}", resourcesH.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/recursos/{resourceId}", resourcesH.HandleDelete).Methods(http.MethodDelete)

	// --- Eventos institucionales ---
	protected.HandleFunc("/eventos", eventsH.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/eventos", eventsH.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/eventos/{eventId}", eventsH.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/eventos/{eventId}/decidir", eventsH.HandleDecide).Methods(http.MethodPost)
	protected.HandleFunc("/eventos/{eventId}/publicar", eventsH.HandlePublish).Methods(http.MethodPost)
	protected.HandleFunc("/eventos/{eventId}/aprobaciones", eventsH.HandleApprovals).Methods(http.MethodGet)
	protected.HandleFunc("/eventos/{eventId}/servicios", eventsH.HandleServiceRequest).Methods(http.MethodPost)

	// Creamos el servidor HTTP
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

	// Esperamos la señal de término
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Detenemos la recolección de métricas del connection pool
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
