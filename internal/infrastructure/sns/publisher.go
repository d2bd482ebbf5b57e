package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/go-inbox-api/internal/config"
	"github.com/go-inbox-api/internal/domain"
)

// messageCreatedEvent is the payload published for each persisted message copy.
type messageCreatedEvent struct {
	MsgID    string `json:"msgId"`
	LanID    string `json:"lanId"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Internal bool   `json:"internal"`
}

// Publisher announces inbox events on an SNS topic.
type Publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

// MessageCreated publishes one message-created event. Subscribers filter on
// the event_type attribute.
func (p *Publisher) MessageCreated(ctx context.Context, msg *domain.Message) error {
	event := messageCreatedEvent{
		MsgID:    msg.ID,
		LanID:    msg.LanID,
		Type:     string(msg.Type),
		Priority: string(msg.Priority),
		Internal: msg.Internal,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal message-created event: %w", err)
	}
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String("message.created"),
			},
		},
	})
	return err
}
