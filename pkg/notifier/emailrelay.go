package notifier

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/internal/domain/entity"
)

// MailSender is the outbound mail transport behind the relay. Satisfied
// by mailer.Mailgun.
type MailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// EmailRelayNotifier texts a user by mailing <digits>@<carrier-gateway>.
// A user without a resolved carrier cannot be reached on this backend, so
// those sends are silent no-ops.
type EmailRelayNotifier struct {
	mail   MailSender
	logger *logrus.Logger
}

func NewEmailRelayNotifier(mail MailSender, logger *logrus.Logger) *EmailRelayNotifier {
	return &EmailRelayNotifier{mail: mail, logger: logger}
}

func (n *EmailRelayNotifier) Send(ctx context.Context, phone string, carrier entity.Carrier, text string) error {
	if n.mail == nil {
		n.logger.WithField("phone", phone).Info("mail transport not configured, skipping")
		return nil
	}
	to, ok := GatewayAddress(phone, carrier)
	if !ok {
		n.logger.WithFields(logrus.Fields{
			"phone":   phone,
			"carrier": string(carrier),
		}).Info("no usable carrier gateway, skipping")
		return nil
	}
	// Gateways deliver the text body; an empty subject keeps carriers from
	// prefixing it to the SMS.
	if err := n.mail.Send(ctx, to, "", text, ""); err != nil {
		return err
	}
	n.logger.WithField("to", to).Info("relay message sent")
	return nil
}
