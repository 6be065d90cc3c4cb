package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/internal/domain/repository"
	"github.com/prasetya/trackping/pkg/geoip"
	"github.com/prasetya/trackping/pkg/notifier"
)

// Backend names the delivery variant the deployment runs with.
type Backend string

const (
	BackendSNS   Backend = "sns"
	BackendEmail Backend = "email"
)

// LocationResolver is the geolocation capability the service depends on.
// Satisfied by geoip.Resolver.
type LocationResolver interface {
	Resolve(ctx context.Context, ip string) geoip.Location
}

// TrackingService orchestrates signups from the inbound-SMS webhook and
// alerts for tracking-link visits. Every outbound text goes through the
// dispatcher; nothing here waits on delivery.
type TrackingService struct {
	registry   repository.UserRegistry
	geo        LocationResolver
	dispatcher notifier.Dispatcher
	backend    Backend
	baseURL    string
	logger     *logrus.Logger
}

func NewTrackingService(
	registry repository.UserRegistry,
	geo LocationResolver,
	dispatcher notifier.Dispatcher,
	backend Backend,
	baseURL string,
	logger *logrus.Logger,
) *TrackingService {
	return &TrackingService{
		registry:   registry,
		geo:        geo,
		dispatcher: dispatcher,
		backend:    backend,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// HandleInbound processes one webhook message from phone.
//
// On the email-relay backend a single digit 1..5 is a carrier selection
// for the sender's pending signup; any other body starts a fresh signup
// and prompts for a carrier. On the SNS backend every message is a
// single-step signup answered with the tracking link.
func (s *TrackingService) HandleInbound(ctx context.Context, phone, body string) error {
	body = strings.TrimSpace(body)

	if s.backend == BackendEmail {
		if carrier, ok := notifier.CarrierForReply(body); ok {
			u, err := s.registry.SetCarrier(phone, carrier)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					s.dispatcher.Dispatch(ctx, notifier.NotifyJob{
						Phone:   phone,
						Message: "No signup found for this number. Text anything to start over.",
					})
					return nil
				}
				return err
			}
			s.logger.WithFields(logrus.Fields{
				"phone":   u.Phone,
				"carrier": string(u.Carrier),
			}).Info("carrier selected")
			s.dispatcher.Dispatch(ctx, notifier.NotifyJob{
				Phone:   u.Phone,
				Carrier: u.Carrier,
				Message: s.confirmation(u.TrackingID),
			})
			return nil
		}

		u, err := s.registry.Register(phone)
		if err != nil {
			return err
		}
		s.logger.WithField("tracking_id", u.TrackingID).Info("user registered, awaiting carrier")
		// The prompt cannot be delivered until a carrier is known; the
		// attempt still goes out so the no-op is visible in the logs.
		s.dispatcher.Dispatch(ctx, notifier.NotifyJob{
			Phone:   u.Phone,
			Message: notifier.ReplyMenu(),
		})
		return nil
	}

	u, err := s.registry.Register(phone)
	if err != nil {
		return err
	}
	s.logger.WithField("tracking_id", u.TrackingID).Info("user registered")
	s.dispatcher.Dispatch(ctx, notifier.NotifyJob{
		Phone:   u.Phone,
		Message: s.confirmation(u.TrackingID),
	})
	return nil
}

// HandleVisit records a visit to a tracking link. ErrNotFound means no
// user owns the id and nothing was dispatched; otherwise exactly one
// alert is dispatched, whatever becomes of it.
func (s *TrackingService) HandleVisit(ctx context.Context, trackingID, clientIP, path string) error {
	u, err := s.registry.Lookup(trackingID)
	if err != nil {
		return err
	}

	loc := s.geo.Resolve(ctx, clientIP)
	s.logger.WithFields(logrus.Fields{
		"phone":   u.Phone,
		"ip":      clientIP,
		"city":    loc.City,
		"region":  loc.Region,
		"country": loc.Country,
	}).Info("tracking link visited")

	msg := fmt.Sprintf("🚨 IP Tracker Alert!\nIP: %s\nLocation: %s, %s, %s\nTime: %s\nLink: %s",
		clientIP, loc.City, loc.Region, loc.Country,
		time.Now().Format("1/2/2006, 3:04:05 PM"), path)

	s.dispatcher.Dispatch(ctx, notifier.NotifyJob{
		Phone:   u.Phone,
		Carrier: u.Carrier,
		Message: msg,
	})
	return nil
}

func (s *TrackingService) confirmation(trackingID string) string {
	link := strings.TrimRight(s.baseURL, "/") + "/" + trackingID
	return fmt.Sprintf("✅ You're signed up for IP tracking!\n\nYour tracking link: %s\n\nShare this link to track visitor IPs. You'll get SMS alerts when someone visits it.", link)
}
