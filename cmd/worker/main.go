package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/customer-admin/internal/config"
	"github.com/unclebandit/customer-admin/internal/db"
	"github.com/unclebandit/customer-admin/internal/logger"
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
		log.Fatal("worker stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.AMQP.URL == "" {
		return fmt.Errorf("amqp.url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	mq, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer mq.Close()
	connClosed := mq.NotifyClose(make(chan *amqp.Error, 1))

	ch, err := mq.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	q, err := queue.DeclareQueue(ch, cfg.AMQP.Queue)
	if err != nil {
		return err
	}

	if err := ch.Qos(10, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	worker := service.NewWorker(&repository.ActivityRepository{DB: conn}, log.Named("worker"))

	log.Info("worker running, waiting for customer events", zap.String("queue", q.Name))
	if err := worker.Start(ctx, msgs); err != nil {
		select {
		case reason := <-connClosed:
			if reason != nil {
				return fmt.Errorf("%w: %v", err, reason)
			}
		default:
		}
		return err
	}
	log.Info("worker stopped")
	return nil
}
