package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Provide sane defaults for local development. Missing delivery credentials
// are never fatal: the affected backend degrades to a logged no-op.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Public base URL used when composing tracking links
	PublicBaseURL string

	// Delivery backend: "sns" (cloud SMS API) or "email" (carrier gateway relay).
	// Chosen once at deployment, never per request.
	DeliveryBackend string
	NotifyTimeout   time.Duration

	// AWS SNS
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string

	// Mailgun (email-to-SMS relay transport)
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// RabbitMQ notification queue; empty URL means notifications are
	// delivered by an in-process background dispatcher instead
	RabbitMQURL         string
	RabbitMQNotifyQueue string

	// Redis (optional geolocation cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Geolocation provider
	GeoIPBaseURL      string
	GeoIPTimeout      time.Duration
	GeoIPCacheEnabled bool
	GeoIPCacheTTL     time.Duration

	// HTTP access log toggle (Gin logger)
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "trackping"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3000"),
		GinMode: getenv("GIN_MODE", "release"),

		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:3000"),

		DeliveryBackend: strings.ToLower(getenv("DELIVERY_BACKEND", "sns")),
		NotifyTimeout:   getdur("NOTIFY_TIMEOUT", 15*time.Second),

		AWSAccessKeyID:     getenv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          getenv("AWS_REGION", "us-east-1"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		RabbitMQURL:         getenv("RABBITMQ_URL", ""),
		RabbitMQNotifyQueue: getenv("RABBITMQ_NOTIFY_QUEUE", "notifications"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		GeoIPBaseURL:      getenv("GEOIP_BASE_URL", "https://ipapi.co"),
		GeoIPTimeout:      getdur("GEOIP_TIMEOUT", 3*time.Second),
		GeoIPCacheEnabled: getbool("GEOIP_CACHE_ENABLED", false),
		GeoIPCacheTTL:     getdur("GEOIP_CACHE_TTL", time.Hour),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// TrackingLink composes the public URL for a tracking id.
func (c *Config) TrackingLink(trackingID string) string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/" + trackingID
}
