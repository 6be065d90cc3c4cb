package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/prasetya/trackping/config"
	"github.com/prasetya/trackping/pkg/helpers"
	"github.com/prasetya/trackping/pkg/mailer"
	"github.com/prasetya/trackping/pkg/notifier"
)

// Consumes NotifyJobs published by the tracking server and delivers them
// through the configured backend. Delivery is best effort: a failed send
// is logged and dropped, never requeued.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notify-worker", cfg.Env)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()

	var backend notifier.Notifier
	switch cfg.DeliveryBackend {
	case "email":
		var mail notifier.MailSender
		if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
			mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		} else {
			logger.Warn("mailgun not configured, relay delivery disabled")
		}
		backend = notifier.NewEmailRelayNotifier(mail, logger)
	default:
		var err error
		backend, err = notifier.NewSNSNotifier(ctx, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSRegion, logger)
		if err != nil {
			log.Fatalf("sns init: %v", err)
		}
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQNotifyQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQNotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job notifier.NotifyJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad notify job, dropping")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, cfg.NotifyTimeout)
			if err := backend.Send(c, job.Phone, job.Carrier, job.Message); err != nil {
				// fire-and-forget: log and drop, no requeue
				logger.WithError(err).WithField("phone", job.Phone).Warn("notification delivery failed")
			}
			cancel()
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQNotifyQueue).Info("notify worker listening")
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
