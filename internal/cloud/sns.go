package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

// AlertClient publishes billing and maintenance alerts to an SNS topic. It
// satisfies service.AlertPublisher.
type AlertClient struct {
	svc      *sns.Client
	topicArn string
}

func NewAlertClient(ctx context.Context, region, topicArn string) (*AlertClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &AlertClient{svc: sns.NewFromConfig(cfg), topicArn: topicArn}, nil
}

func (c *AlertClient) publish(subject, message string) error {
	result, err := c.svc.Publish(context.Background(), &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	log.Info().Str("message_id", aws.ToString(result.MessageId)).Msg("alert published")
	return nil
}

func (c *AlertClient) PublishOverLimit(branch string, overLimit int64, date time.Time) error {
	subject := fmt.Sprintf("Billing Alert: %s over limit", branch)
	message := fmt.Sprintf(
		"Over-Limit Liquidation\n\n"+
			"Branch: %s\n"+
			"Over limit by: %d kWh\n"+
			"Liquidated: %s\n",
		branch, overLimit, date.Format(time.RFC3339))
	return c.publish(subject, message)
}

func (c *AlertClient) PublishMaintenance(model string, equipmentID int64, action string) error {
	subject := "Maintenance Alert: critical-power equipment"
	message := fmt.Sprintf(
		"Equipment Maintenance Required\n\n"+
			"Equipment ID: %d\n"+
			"Model: %s\n"+
			"Recommended action: %s\n",
		equipmentID, model, action)
	return c.publish(subject, message)
}
