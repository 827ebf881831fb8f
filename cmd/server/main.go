package main

// @title		depot-service
// @version		1.0
// @BasePath	/

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	// Framework
	//
	// Core of the Flash Framework. Contains the fundamental components of
	// the application.

	"github.com/flash-go/flash/http"
	"github.com/flash-go/flash/http/server"

	// SDK
	//
	// A high-level software development toolkit based on the Flash Framework
	// for building highly efficient and fault-tolerant applications.

	"github.com/flash-go/sdk/config"
	"github.com/flash-go/sdk/errors"
	"github.com/flash-go/sdk/logger"
	"github.com/flash-go/sdk/state"
	"github.com/flash-go/sdk/telemetry"

	// Implementations

	//// Handlers
	httpDepotHandlerAdapterImpl "github.com/flash-go/depot-service/internal/adapter/handler/depot/http"

	//// Repository
	revisionRepositoryAdapterImpl "github.com/flash-go/depot-service/internal/adapter/repository/revision"

	//// Services
	depotServiceImpl "github.com/flash-go/depot-service/internal/service/depot"

	// Ports
	depotServicePort "github.com/flash-go/depot-service/internal/port/service/depot"

	// Config
	internalConfig "github.com/flash-go/depot-service/internal/config"

	// Other
	_ "github.com/flash-go/depot-service/docs"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// Create state service
	stateService := state.NewWithoutAuth(os.Getenv("CONSUL_AGENT"))

	// Create config
	cfg := config.New(
		stateService,
		os.Getenv("SERVICE_NAME"),
	)

	// Create logger service
	loggerService := logger.NewConsole()

	// Convert log level to int
	logLevel, err := strconv.Atoi(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("invalid log level")
	}

	// Set log level
	loggerService.SetLevel(logLevel)

	// Create telemetry service
	telemetryService := telemetry.NewGrpc(cfg)

	// Collect metrics
	telemetryService.CollectGoRuntimeMetrics(collectGoRuntimeMetricsTimeout)

	// Create http server
	httpServer := server.New()

	// Use telemetry service
	httpServer.UseTelemetry(telemetryService)

	// Use logger service
	httpServer.UseLogger(loggerService)

	// Use state service
	httpServer.UseState(stateService)

	// Use Swagger
	httpServer.UseSwagger()

	// Set error response status map
	httpServer.SetErrorResponseStatusMap(
		&server.ErrorResponseStatusMap{
			errors.ErrBadRequest: 400,
			errors.ErrForbidden:  403,
			errors.ErrNotFound:   404,
		},
	)

	// Set max request body size
	httpServer.SetServerMaxRequestBodySize(serverMaxRequestBodySize)

	// Create repository
	revisionRepository := revisionRepositoryAdapterImpl.New(
		&revisionRepositoryAdapterImpl.Config{
			Logger: loggerService,
		},
	)

	// Create services
	depotService := depotServiceImpl.New(
		&depotServiceImpl.Config{
			RevisionRepository: revisionRepository,
			Whitelist:          cfg.Get(internalConfig.DepotWhitelistOptKey),
			Blacklist:          cfg.Get(internalConfig.DepotBlacklistOptKey),
		},
	)

	// Discover repositories under the configured root and repair their links
	if err := depotService.Discover(
		context.Background(),
		&depotServicePort.DiscoverData{
			Root: cfg.Get(internalConfig.DepotRootPathOptKey),
		},
	); err != nil {
		loggerService.Log().Err(err).Send()
	}

	// Register extra repositories declared as "name:path" pairs
	for _, mapping := range strings.Split(cfg.Get(internalConfig.DepotRepositoriesOptKey), ",") {
		name, path, ok := strings.Cut(strings.TrimSpace(mapping), ":")
		if !ok || name == "" || path == "" {
			continue
		}
		if err := depotService.Route(
			context.Background(),
			&depotServicePort.RouteData{
				Uri:  "/depot/" + name,
				Path: path,
			},
		); err != nil {
			loggerService.Log().Err(err).Send()
		}
	}

	// Get host name
	host, err := os.Hostname()
	if err != nil {
		log.Fatalf("invalid host name")
	}

	// Create handlers
	depotHandler := httpDepotHandlerAdapterImpl.New(
		&httpDepotHandlerAdapterImpl.Config{
			DepotService: depotService,
			Host:         host,
			Proxy:        cfg.Get(internalConfig.DepotProxyOptKey),
		},
	)

	// Add routes
	httpServer.
		// Read a revision, a history, or a repository listing
		AddRoute(
			http.MethodGet,
			"/depot/{path:*}",
			depotHandler.Get,
		).
		// Check in a new revision
		AddRoute(
			http.MethodPut,
			"/depot/{path:*}",
			depotHandler.Put,
		).
		// Apply a tag
		AddRoute(
			http.MethodPost,
			"/depot/{path:*}",
			depotHandler.Post,
		).
		// Delete a revision or tag
		AddRoute(
			http.MethodDelete,
			"/depot/{path:*}",
			depotHandler.Delete,
		)

	// Convert service port to int
	servicePort, err := strconv.Atoi(os.Getenv("SERVICE_PORT"))
	if err != nil || servicePort <= 0 {
		log.Fatalf("invalid service port")
	}

	// Register service
	if err := httpServer.RegisterService(
		os.Getenv("SERVICE_NAME"),
		os.Getenv("SERVICE_HOST"),
		servicePort,
	); err != nil {
		loggerService.Log().Err(err).Send()
	}

	loggerService.Log().Info().Msgf("SERVICE STARTED ON %s", host)

	// Convert server port to int
	serverPort, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil || serverPort <= 0 {
		log.Fatal("invalid server port")
	}

	// Listen http server
	if err := <-httpServer.Listen(
		os.Getenv("SERVER_HOST"),
		serverPort,
	); err != nil {
		loggerService.Log().Err(err).Send()
	}
}
