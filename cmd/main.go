package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/config"
	"github.com/prasetya/trackping/internal/container"
	"github.com/prasetya/trackping/internal/infrastructure/memory"
	"github.com/prasetya/trackping/internal/interface/middleware"
	"github.com/prasetya/trackping/internal/router"
	"github.com/prasetya/trackping/pkg/helpers"
	"github.com/prasetya/trackping/pkg/mailer"
	"github.com/prasetya/trackping/pkg/notifier"
	"github.com/prasetya/trackping/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Redis backs the geolocation cache only; the user registry itself is
	// in-memory and lost on restart
	var rdb *redis.Client
	if cfg.GeoIPCacheEnabled {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
	}

	// Delivery backend, chosen once per deployment
	backend, err := buildNotifier(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init delivery backend: %v", err)
	}

	// Dispatcher: RabbitMQ queue when configured, otherwise an in-process
	// background dispatcher. Either way the HTTP path never waits on
	// delivery.
	var dispatcher notifier.Dispatcher
	var asyncDisp *notifier.AsyncDispatcher
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotifyQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		container.SetRabbitPub(pub)
		dispatcher = notifier.NewQueueDispatcher(pub, logger)
		logger.WithField("queue", cfg.RabbitMQNotifyQueue).Info("dispatching notifications via rabbitmq")
	} else {
		asyncDisp = notifier.NewAsyncDispatcher(backend, cfg.NotifyTimeout, logger)
		dispatcher = asyncDisp
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetRegistry(memory.NewRegistry())
	container.SetDispatcher(dispatcher)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ClientIP())
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("tracking server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	if asyncDisp != nil {
		asyncDisp.Wait()
	}
	logger.Info("server exited properly")
}

// buildNotifier constructs the configured delivery variant. Missing
// credentials degrade the backend to a logged no-op, never a crash.
func buildNotifier(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (notifier.Notifier, error) {
	switch cfg.DeliveryBackend {
	case "email":
		var mail notifier.MailSender
		if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
			mail = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		} else {
			logger.Warn("mailgun not configured, relay delivery disabled")
		}
		return notifier.NewEmailRelayNotifier(mail, logger), nil
	default:
		return notifier.NewSNSNotifier(ctx, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSRegion, logger)
	}
}
