package cli

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

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/vitrine/internal/httpserver"
	"github.com/Skotchmaster/vitrine/internal/repo"
	"github.com/Skotchmaster/vitrine/internal/search"
	"github.com/Skotchmaster/vitrine/internal/service"
	"github.com/Skotchmaster/vitrine/pkg/config"
	pkgdb "github.com/Skotchmaster/vitrine/pkg/db"
	"github.com/Skotchmaster/vitrine/pkg/logging"
	"github.com/Skotchmaster/vitrine/pkg/mykafka"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run schema migration before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load(envFile)
	if err := config.RequireNonEmpty(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	secret, fallback, err := cfg.ResolveJWTSecret()
	if err != nil {
		return err
	}
	if fallback {
		logger.Warn("jwt_secret_fallback", "reason", "JWT_SECRET is empty, using the insecure development default")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}

	if autoMigrate {
		if err := repo.Migrate(db); err != nil {
			_ = pkgdb.Close(db)
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrate_success")
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	if !producer.Enabled() {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	deps := buildDeps(logger, cfg, db, producer, secret)

	e := httpserver.NewEcho(logger, cfg.CORSOrigins)
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var serveErr error
	select {
	case <-stop:
	case serveErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}

	logger.Info("vitrine_stopped")
	return serveErr
}

func buildDeps(logger *slog.Logger, cfg config.Config, db *gorm.DB, producer *mykafka.Producer, secret []byte) *httpserver.Deps {
	r := &repo.GormRepo{DB: db}

	var events service.EventPublisher
	if producer.Enabled() {
		events = producer
	}

	produtos := &service.ProdutoService{Repo: r, Events: events}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg)
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unreachable, using database search", "error", err)
		} else {
			produtos.Index = search.NewIndex(es, cfg.ESIndex)
		}
	}

	pedidos := &service.PedidoService{Repo: r, Events: events}

	return &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:      r,
			JWTSecret: secret,
			TokenTTL:  cfg.TokenTTL,
			Events:    events,
		}},
		LojistaHandler: &httpserver.LojistaHTTP{Svc: &service.LojistaService{Repo: r, Events: events}},
		ProdutoHandler: &httpserver.ProdutoHTTP{Svc: produtos},
		PedidoHandler:  &httpserver.PedidoHTTP{Svc: pedidos},
		VitrineHandler: &httpserver.VitrineHTTP{Svc: &service.VitrineService{Repo: r}},
		CartHandler:    &httpserver.CartHTTP{Pedidos: pedidos},
		DB:             db,
		JWTSecret:      secret,
	}
}
