package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/config"
	"github.com/prasetya/trackping/internal/domain/repository"
	"github.com/prasetya/trackping/pkg/helpers"
	"github.com/prasetya/trackping/pkg/notifier"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	rabbitPub   *helpers.RabbitPublisher

	registry   repository.UserRegistry
	dispatcher notifier.Dispatcher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetRegistry(r repository.UserRegistry) { registry = r }
func GetRegistry() repository.UserRegistry  { return registry }

func SetDispatcher(d notifier.Dispatcher) { dispatcher = d }
func GetDispatcher() notifier.Dispatcher  { return dispatcher }
