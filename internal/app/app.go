package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "chargerelay/libs/db"
	libredis "chargerelay/libs/redis"

	"chargerelay/internal/cache"
	"chargerelay/internal/config"
	httpserver "chargerelay/internal/http"
	"chargerelay/internal/http/handlers"
	"chargerelay/internal/http/middleware"
	"chargerelay/internal/password"
	"chargerelay/internal/repository"
	"chargerelay/internal/service"
	"chargerelay/internal/ws"
)

// App wires the server's dependency graph.
type App struct {
	server      *httpserver.Server
	hub         *ws.Hub
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.NewPostgresDB(cfg.Database.DSN, libdb.Pool{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, err
	}

	redisClient, err := libredis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	userRepo := repository.NewUserRepository(sqlDB)
	stationRepo := repository.NewStationRepository(sqlDB)
	portRepo := repository.NewPortRepository(sqlDB)
	sessionRepo := repository.NewSessionRepository(sqlDB)
	paymentRepo := repository.NewPaymentRepository(sqlDB)
	vehicleRepo := repository.NewVehicleRepository(sqlDB)
	reviewRepo := repository.NewReviewRepository(sqlDB)
	statusLogRepo := repository.NewStatusLogRepository(sqlDB)
	maintenanceRepo := repository.NewMaintenanceRepository(sqlDB)
	reportRepo := repository.NewReportRepository(sqlDB)

	activeStore := cache.NewStore(redisClient, cfg.ActiveSessionTTL())
	hub := ws.NewHub(cfg.PingInterval(), logger)
	pricing := pricingFromConfig(cfg)

	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(userRepo, hasher, tokens, logger)

	sessionsService := service.NewSessionsService(
		portRepo, sessionRepo, paymentRepo, statusLogRepo,
		activeStore, hub, pricing, logger,
	)
	portsService := service.NewPortsService(portRepo, statusLogRepo, hub, logger)
	stationsService := service.NewStationsService(stationRepo, portRepo, reviewRepo, logger)
	vehiclesService := service.NewVehiclesService(vehicleRepo)
	reviewsService := service.NewReviewsService(reviewRepo)
	paymentsService := service.NewPaymentsService(paymentRepo)
	reportsService := service.NewReportsService(reportRepo, stationRepo, portRepo, userRepo, maintenanceRepo, logger)

	authHandlers := handlers.NewAuthHandlers(authService, logger)
	stationsHandlers := handlers.NewStationsHandlers(stationsService, logger)
	sessionsHandlers := handlers.NewSessionsHandlers(sessionsService, logger)
	paymentsHandlers := handlers.NewPaymentsHandlers(paymentsService, logger)
	vehiclesHandlers := handlers.NewVehiclesHandlers(vehiclesService, logger)
	reviewsHandlers := handlers.NewReviewsHandlers(reviewsService, logger)
	analyticsHandlers := handlers.NewAnalyticsHandlers(reportsService, pricing, logger)
	adminHandlers := handlers.NewAdminHandlers(portsService, reportsService, reviewsService, statusLogRepo, logger)

	routes := httpserver.Routes{
		Health: handlers.NewHealthHandler(),

		Signup:       authHandlers.Signup,
		Login:        authHandlers.Login,
		Stations:     stationsHandlers.List,
		StationPorts: stationsHandlers.Ports,
		Estimate:     analyticsHandlers.Estimate,

		VisitedStations: stationsHandlers.Visited,
		SessionList:     sessionsHandlers.List,
		SessionStart:    sessionsHandlers.Start,
		SessionEnd:      sessionsHandlers.End,
		PortSession:     sessionsHandlers.ActiveOnPort,
		PaymentList:     paymentsHandlers.List,
		VehicleList:     vehiclesHandlers.List,
		VehicleGet:      vehiclesHandlers.Get,
		VehicleRegister: vehiclesHandlers.Register,
		ReviewList:      reviewsHandlers.List,
		ReviewCreate:    reviewsHandlers.Create,
		AnalyticsMe:     analyticsHandlers.Me,

		Dashboard:        adminHandlers.Dashboard,
		StationCreate:    stationsHandlers.Create,
		PortList:         adminHandlers.ListPorts,
		PortAdd:          adminHandlers.AddPort,
		PortOverride:     adminHandlers.OverridePort,
		PortStatusLog:    adminHandlers.PortStatusLog,
		MaintenancePorts: adminHandlers.MaintenancePorts,
		PortRestore:      adminHandlers.RestorePort,
		ReviewsAll:       adminHandlers.ListReviews,

		StatusFeed: hub.HandleWS,
	}

	router := httpserver.NewRouter(routes, middleware.Auth(tokens), middleware.RequireAdmin)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		hub:         hub,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

func pricingFromConfig(cfg *config.Config) service.Pricing {
	pricing := service.DefaultPricing()
	if cfg.Pricing.UnitPricePerKWh > 0 {
		pricing.UnitPricePerKWh = cfg.Pricing.UnitPricePerKWh
	}
	if cfg.Pricing.FallbackRateKWhPerMin > 0 {
		pricing.FallbackRateKWhPerMin = cfg.Pricing.FallbackRateKWhPerMin
	}
	if cfg.Pricing.DefaultBatteryKWh > 0 {
		pricing.DefaultBatteryKWh = cfg.Pricing.DefaultBatteryKWh
	}
	return pricing
}

// Run starts the status feed hub and the HTTP server, blocking until
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
