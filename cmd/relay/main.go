package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/goevery/coderelay/internal/broadcaster"
	"github.com/goevery/coderelay/internal/handler"
	"github.com/goevery/coderelay/internal/room"
	"github.com/goevery/coderelay/internal/server"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const readHeaderTimeout = 10 * time.Second

type App struct {
	logger          *zap.Logger
	settings        Settings
	hub             *broadcaster.Hub
	websocketServer *server.WebSocketServer
	restServer      *server.RESTServer
}

func NewApp(logger *zap.Logger, settings Settings) *App {
	originChecker := server.NewOriginChecker(logger, settings.Origins())
	websocketUpgrader := &websocket.Upgrader{
		ReadBufferSize:    1024,
		WriteBufferSize:   1024,
		CheckOrigin:       originChecker.Check,
		EnableCompression: true,
	}

	registry := room.NewInMemoryRegistry(logger)

	joinHandler := handler.NewJoinHandler(registry)
	messageHandler := handler.NewMessageHandler(registry)
	leaveHandler := handler.NewLeaveHandler(registry)
	disconnectHandler := handler.NewDisconnectHandler(registry)
	healthHandler := handler.NewHealthHandler()

	router := server.NewRouter(
		logger,
		joinHandler,
		messageHandler,
		leaveHandler,
		disconnectHandler,
	)

	hub := broadcaster.NewHub(logger, router, registry)

	websocketServer := server.NewWebSocketServer(
		logger,
		websocketUpgrader,
		hub,
		settings.SendBufferSize,
		settings.MaxFrameSize,
	)
	restServer := server.NewRESTServer(
		logger,
		originChecker,
		healthHandler,
	)

	return &App{
		logger,
		settings,
		hub,
		websocketServer,
		restServer,
	}
}

func (a *App) run(ctx context.Context) error {
	notifyCtx, notifyCtxCancel := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer notifyCtxCancel()

	hubCtx, hubCtxCancel := context.WithCancel(context.Background())
	defer hubCtxCancel()

	go a.hub.Run(hubCtx)

	address := fmt.Sprintf("0.0.0.0:%d", a.settings.Port)

	router := mux.NewRouter()
	subrouter := router
	if a.settings.BasePath != "" {
		subrouter = router.PathPrefix(a.settings.BasePath).Subrouter()
	}

	a.websocketServer.Register(subrouter)
	a.restServer.Register(subrouter)

	httpServer := newHTTPServer(address, router)

	a.logger.Info("starting http server",
		zap.String("address", address))

	serveErr := make(chan error, 1)
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server failed: %w", err)
	case <-notifyCtx.Done():
	}

	a.logger.Info("stopping http server")

	shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), a.settings.ShutdownTimeout)
	defer shutdownCtxCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	// hijacked websocket connections outlive Shutdown; stopping the hub closes them
	hubCtxCancel()

	select {
	case <-a.hub.Done():
	case <-shutdownCtx.Done():
		a.logger.Warn("hub did not stop before shutdown timeout")
	}

	a.logger.Info("http server stopped")

	return nil
}

func newHTTPServer(address string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func main() {
	ctx := context.Background()

	logger, _ := zap.NewDevelopment()

	if err := loadDotEnv(); err != nil {
		logger.Fatal("failed to load .env file", zap.Error(err))
	}

	environment, err := env.EnvironToEnvSet(os.Environ())
	if err != nil {
		logger.Fatal("failed to read environment", zap.Error(err))
	}

	settings, err := parseSettings(environment)
	if err != nil {
		logger.Fatal("failed to parse settings from environment", zap.Error(err))
	}

	logger, err = buildZapLogger(settings.LogEncoding, settings.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	app := NewApp(logger, settings)

	if err := app.run(ctx); err != nil {
		logger.Fatal("relay stopped", zap.Error(err))
	}
}
