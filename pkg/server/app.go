package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinTalk/internal/directory"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/handler/api"
	"FinTalk/internal/session"
	pkgch "FinTalk/pkg/clickhouse"
	"FinTalk/pkg/config"
	xhttp "FinTalk/pkg/http"
	applogger "FinTalk/pkg/logger"
	"FinTalk/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    *api.ChatHandler
	analytics  *queue.RedisQueue
	sessions   *session.Store
	dir        *directory.Directory
	chClient   *pkgch.Client
	publisher  domrepo.TurnPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	lgr *applogger.Logger,
	handler *api.ChatHandler,
	analytics *queue.RedisQueue,
	sessions *session.Store,
	dir *directory.Directory,
	chClient *pkgch.Client,
	publisher domrepo.TurnPublisher,
) *App {
	return &App{
		cfg:       cfg,
		logger:    lgr,
		handler:   handler,
		analytics: analytics,
		sessions:  sessions,
		dir:       dir,
		chClient:  chClient,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.analytics != nil {
		if err := a.analytics.Start(); err != nil {
			a.logger.Error("analytics queue start error", applogger.Error(err))
			return err
		}
		a.analytics.StartRetryProcessor()
		a.logger.Info("analytics queue started",
			applogger.Int("workers", a.cfg.Analytics.QueueWorkers))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("chat api listening",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.analytics != nil {
		if err := a.analytics.Stop(shutdownCtx); err != nil {
			a.logger.Warn("analytics queue stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("turn publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if err := a.sessions.Close(); err != nil {
		a.logger.Warn("session store close error", applogger.Error(err))
	}
	if err := a.dir.Close(); err != nil {
		a.logger.Warn("directory close error", applogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}
