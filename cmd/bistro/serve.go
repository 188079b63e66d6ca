package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/bistro/internal/gateway"
	"github.com/Skotchmaster/bistro/internal/httpserver"
	"github.com/Skotchmaster/bistro/internal/repo"
	"github.com/Skotchmaster/bistro/internal/search"
	"github.com/Skotchmaster/bistro/internal/service"
	"github.com/Skotchmaster/bistro/pkg/config"
	pkgdb "github.com/Skotchmaster/bistro/pkg/db"
	"github.com/Skotchmaster/bistro/pkg/events"
	"github.com/Skotchmaster/bistro/pkg/logging"
	auth "github.com/Skotchmaster/bistro/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/bistro/pkg/middleware/logging"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "run schema migration before serving")

	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer pkgdb.Close(db)

	store := &repo.GormRepo{DB: db}
	if migrate {
		if err := store.Migrate(ctx); err != nil {
			return err
		}
	}

	var publisher events.Publisher = events.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		prod, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer func() {
			if err := prod.Close(); err != nil {
				logger.Error("kafka_close_error", "error", err)
			}
		}()
		publisher = prod
	} else {
		logger.Warn("kafka_disabled", "reason", "KAFKA_BROKERS not set")
	}

	menuSvc := &service.MenuService{Repo: store, Events: publisher}
	if cfg.ESURL != "" {
		client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			return fmt.Errorf("elasticsearch: %w", err)
		}
		if err := search.Ping(ctx, client); err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
		}
		menuSvc.Index = search.NewMenuIndex(client, cfg.ESIndex)
	} else {
		logger.Warn("search_disabled", "reason", "ES_URL not set")
	}

	intents := &service.PaymentIntentService{Gateway: unconfiguredGateway{}}
	if stripe, err := gateway.NewStripe(cfg.PaymentGatewaySecret, cfg.PaymentGatewayURL); err == nil {
		intents.Gateway = stripe
	} else {
		logger.Warn("payment_gateway_disabled", "error", err)
	}

	users := &service.UserService{Repo: store}
	access := auth.NewAccessControl(cfg.JWTSecret, users)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	var tokenHandler *httpserver.TokenHTTP
	if cfg.TokenEndpoint {
		logger.Warn("token_endpoint_enabled", "reason", "POST /jwt signs tokens for any email")
		tokenHandler = &httpserver.TokenHTTP{JWTSecret: cfg.JWTSecret, TTL: cfg.TokenTTL}
	}

	httpserver.Register(e, &httpserver.Deps{
		TokenHandler: tokenHandler,
		UserHandler:  &httpserver.UserHTTP{Svc: users, Access: access},
		MenuHandler:  &httpserver.MenuHTTP{Svc: menuSvc},
		CartHandler: &httpserver.CartHTTP{
			Svc:    &service.CartService{Repo: store, Menu: store, Events: publisher},
			Access: access,
		},
		PaymentHandler: &httpserver.PaymentHTTP{
			Settlement: &service.SettlementService{Payments: store, Cart: store, Events: publisher},
			Intents:    intents,
			Access:     access,
		},
		StatsHandler: &httpserver.StatsHTTP{Svc: &service.ReportingService{Repo: store}},
		Access:       access,
		Ready:        func(ctx context.Context) error { return ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	logger.Info("shutting_down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	logger.Info("shutdown_complete")
	return nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// unconfiguredGateway fails every intent so the API reports 502 instead of
// refusing to start without processor credentials.
type unconfiguredGateway struct{}

func (unconfiguredGateway) CreateIntent(context.Context, int64, string) (string, error) {
	return "", gateway.ErrNotConfigured
}
