package notifier

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/internal/domain/entity"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier delivers texts straight to a phone number through AWS SNS.
// Constructed without credentials it stays disabled and Send becomes a
// logged no-op instead of a startup failure.
type SNSNotifier struct {
	client snsAPI
	logger *logrus.Logger
}

func NewSNSNotifier(ctx context.Context, accessKeyID, secretAccessKey, region string, logger *logrus.Logger) (*SNSNotifier, error) {
	if accessKeyID == "" || secretAccessKey == "" {
		logger.Warn("aws credentials not configured, sms delivery disabled")
		return &SNSNotifier{logger: logger}, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}
	return &SNSNotifier{client: sns.NewFromConfig(cfg), logger: logger}, nil
}

// Send publishes text to phone. The carrier is irrelevant for this
// backend and ignored.
func (n *SNSNotifier) Send(ctx context.Context, phone string, _ entity.Carrier, text string) error {
	if n.client == nil {
		n.logger.WithField("phone", phone).Info("sms delivery disabled, skipping")
		return nil
	}
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(text),
		PhoneNumber: aws.String(phone),
	})
	if err != nil {
		return err
	}
	n.logger.WithField("phone", phone).Info("sms sent")
	return nil
}
