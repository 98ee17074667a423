// cmd/server/main.go
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/config"
	"github.com/unclebandit/customer-admin/internal/controller"
	"github.com/unclebandit/customer-admin/internal/db"
	"github.com/unclebandit/customer-admin/internal/logger"
	"github.com/unclebandit/customer-admin/internal/metrics"
	"github.com/unclebandit/customer-admin/internal/queue"
	"github.com/unclebandit/customer-admin/internal/repository"
	"github.com/unclebandit/customer-admin/internal/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrateOnStart {
		if err := db.Migrate(cfg.Database, log); err != nil {
			return err
		}
	}

	conn, err := db.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	q := queue.NewInMemoryQueue(log)
	var sink queue.EventSink = queue.LogSink{Log: log.Named("events")}
	if cfg.AMQP.URL != "" {
		publisher, err := queue.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			return err
		}
		defer publisher.Close()
		sink = publisher
		log.Info("publishing customer events to rabbitmq", zap.String("queue", cfg.AMQP.Queue))
	}
	if err := queue.StartCustomerEventSubscriber(q, sink, log); err != nil {
		return err
	}

	customerService := &service.CustomerService{
		CustomerRepo: &repository.CustomerRepository{DB: conn},
		Queue:        q,
		Log:          log.Named("customers"),
	}

	customerController := &controller.CustomerController{
		CustomerService: customerService,
		Log:             log.Named("http"),
	}

	httpMetrics := metrics.NewHTTPMetrics()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)

	customerController.Routes(r)
	r.Handle("/metrics", httpMetrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := conn.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	q.Wait()
	return nil
}
