package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/condoease/apiserver/config"
	"github.com/condoease/apiserver/internal/db"
	"github.com/condoease/apiserver/internal/handlers"
	"github.com/condoease/apiserver/internal/logger"
	"github.com/condoease/apiserver/internal/mq"
	"github.com/condoease/apiserver/internal/services"
	"github.com/condoease/apiserver/internal/storage"
	"github.com/condoease/apiserver/internal/store"
	"go.uber.org/zap"
)

// Server wraps the HTTP server, router and shared infrastructure.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	bus        *mq.Bus
	logger     *zap.Logger
}

// New constructs a Server with all dependencies wired: database, object
// storage, event bus, services and routes.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	files, err := buildFileStore(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	bus, err := buildBus(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	announcementRepo := store.NewAnnouncementRepository(dbConn)
	propertyRepo := store.NewPropertyRepository(dbConn)
	unitRepo := store.NewUnitRepository(dbConn)
	tenantRepo := store.NewTenantRepository(dbConn)
	ownerRepo := store.NewOwnerRepository(dbConn)
	leaseRepo := store.NewLeaseRepository(dbConn)
	maintenanceRepo := store.NewMaintenanceRepository(dbConn)

	var publisher services.EventPublisher
	if bus != nil {
		publisher = bus
	}

	userService := services.NewUserService(userRepo, files)
	announcementService := services.NewAnnouncementService(announcementRepo, files, publisher, log)
	propertyService := services.NewPropertyService(propertyRepo, files)
	unitService := services.NewUnitService(unitRepo, files)
	tenantService := services.NewTenantService(tenantRepo)
	ownerService := services.NewOwnerService(ownerRepo)
	leaseService := services.NewLeaseService(leaseRepo, unitRepo, files)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo)

	authHandler := handlers.NewAuthHandler(userService, announcementService, jwtSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost)
	userHandler := handlers.NewUserHandler(userService, cfg.Auth.BcryptCost)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	unitHandler := handlers.NewUnitHandler(unitService)
	tenantHandler := handlers.NewTenantHandler(tenantService)
	ownerHandler := handlers.NewOwnerHandler(ownerService)
	leaseHandler := handlers.NewLeaseHandler(leaseService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(log),
		middleware.Timeout(60*time.Second),
	)
	router.NotFound(handlers.NotFound)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, authHandler)
		handlers.UserRouter(r, userHandler, authMiddleware)
		handlers.AnnouncementRouter(r, announcementHandler, authMiddleware)
		handlers.PropertyRouter(r, propertyHandler, authMiddleware)
		handlers.UnitRouter(r, unitHandler, authMiddleware)
		handlers.TenantRouter(r, tenantHandler, authMiddleware)
		handlers.OwnerRouter(r, ownerHandler, authMiddleware)
		handlers.LeaseRouter(r, leaseHandler, authMiddleware)
		handlers.MaintenanceRouter(r, maintenanceHandler, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		bus:        bus,
		logger:     log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown, then closes shared resources.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.bus != nil {
		_ = s.bus.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	_ = s.logger.Sync()
	return err
}

func buildFileStore(ctx context.Context, cfg config.StorageConfig) (services.FileStore, error) {
	switch cfg.Backend {
	case "minio":
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		st := storage.NewStorage(client)
		if err := st.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return services.NewFileStore(st), nil
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		st := storage.NewStorage(client)
		if err := st.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return services.NewFileStore(st), nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func buildBus(ctx context.Context, cfg config.MQConfig) (*mq.Bus, error) {
	switch cfg.Backend {
	case "rabbitmq":
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	case "pubsub":
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.Backend)
	}
}

// requestLogger emits one structured line per request after it
// completes.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
