package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kurochkinivan/excel_analytics/internal/auth"
	"github.com/kurochkinivan/excel_analytics/internal/config"
	v1 "github.com/kurochkinivan/excel_analytics/internal/controller/http/v1"
	"github.com/kurochkinivan/excel_analytics/internal/decoder"
	"github.com/kurochkinivan/excel_analytics/internal/filestore"
	"github.com/kurochkinivan/excel_analytics/internal/report"
	"github.com/kurochkinivan/excel_analytics/internal/repository/postgresql"
	"github.com/kurochkinivan/excel_analytics/internal/service"
	"golang.org/x/sync/errgroup"
)

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting app",
		slog.String("content_dir", a.cfg.App.ContentDirectory),
	)

	a.log.InfoContext(ctx, "establishing postgresql connection",
		slog.String("postgresql_host", a.cfg.PostgreSQL.Host),
		slog.String("postgresql_port", a.cfg.PostgreSQL.Port),
		slog.String("postgresql_dbname", a.cfg.PostgreSQL.DBName),
	)

	pool, err := postgresql.NewConnection(ctx, a.log, a.cfg.PostgreSQL)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer pool.Close()

	files, err := filestore.New(a.log, a.cfg.App.ContentDirectory)
	if err != nil {
		return fmt.Errorf("failed to create file store: %w", err)
	}

	datasetsRepository := postgresql.NewDatasetsRepository(pool)
	usersRepository := postgresql.NewUsersRepository(pool)
	txManager := postgresql.NewTxManager(pool)

	tokenManager := auth.NewTokenManager(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL)

	datasetService := service.NewDatasetService(
		a.log,
		files,
		decoder.New(a.log),
		datasetsRepository,
		usersRepository,
		txManager,
		report.New(),
		config.MaxUploadSize,
	)
	userService := service.NewUserService(a.log, usersRepository, datasetService, tokenManager)

	handler := v1.NewHandler(a.log, datasetService, userService)
	server := v1.NewServer(a.cfg.HTTP, handler, tokenManager, usersRepository)

	return a.serve(ctx, server)
}

func (a *App) serve(ctx context.Context, server *v1.Server) error {
	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "app stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "app stopped gracefully")

	return nil
}
