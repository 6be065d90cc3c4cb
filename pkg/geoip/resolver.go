package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/pkg/helpers"
)

// Location is a resolved visitor location. It is either fully populated
// from the provider or one of the two sentinels, never a mix.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

var (
	// Local is returned for loopback and otherwise unresolvable local
	// addresses without any provider call.
	Local = Location{Country: "Local", Region: "Local", City: "Local"}

	// Unknown is returned for every failed or malformed provider lookup.
	Unknown = Location{Country: "Unknown", Region: "Unknown", City: "Unknown"}
)

// Resolver maps an IP to a Location. Lookups never fail outward: every
// error path collapses into the Unknown sentinel, and nothing is retried.
// Cache is optional; when set, provider results are kept in redis so
// repeated visits from one address skip the provider.
type Resolver struct {
	BaseURL string
	Client  *http.Client
	Cache   *redis.Client
	TTL     time.Duration
	Logger  *logrus.Logger
}

func NewResolver(baseURL string, timeout time.Duration, cache *redis.Client, ttl time.Duration, logger *logrus.Logger) *Resolver {
	if baseURL == "" {
		baseURL = "https://ipapi.co"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Resolver{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Cache:   cache,
		TTL:     ttl,
		Logger:  logger,
	}
}

// Resolve returns the location for ip. Loopback addresses, the "Unknown"
// placeholder, and empty input short-circuit to the Local sentinel.
func (r *Resolver) Resolve(ctx context.Context, ip string) Location {
	ip = strings.TrimSpace(ip)
	if ip == "" || ip == "Unknown" || ip == "127.0.0.1" || ip == "::1" {
		return Local
	}

	key := "geoip:" + ip
	if r.Cache != nil {
		var loc Location
		if hit, err := helpers.RedisGetJSON(ctx, r.Cache, key, &loc); err == nil && hit {
			return loc
		}
	}

	loc := r.lookup(ctx, ip)
	if r.Cache != nil && loc != Unknown {
		if err := helpers.RedisSetJSON(ctx, r.Cache, key, loc, r.TTL); err != nil && r.Logger != nil {
			r.Logger.WithError(err).Debug("geoip cache write failed")
		}
	}
	return loc
}

func (r *Resolver) lookup(ctx context.Context, ip string) Location {
	endpoint := fmt.Sprintf("%s/%s/json/", strings.TrimRight(r.BaseURL, "/"), url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Unknown
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		if r.Logger != nil {
			r.Logger.WithError(err).WithField("ip", ip).Debug("geoip lookup failed")
		}
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown
	}

	var body struct {
		CountryName string `json:"country_name"`
		Region      string `json:"region"`
		City        string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Unknown
	}
	if body.CountryName == "" || body.Region == "" || body.City == "" {
		return Unknown
	}
	return Location{Country: body.CountryName, Region: body.Region, City: body.City}
}
