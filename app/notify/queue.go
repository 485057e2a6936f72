package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type sqsClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

type snsClient interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func newQueuePublisher(ctx context.Context, cfg PublisherConfig) (Publisher, error) {
	if cfg.Queue == nil {
		return nil, fmt.Errorf("publisher %q missing queue configuration", cfg.ID)
	}

	switch cfg.Queue.Provider {
	case QueueProviderAWSSQS:
		a := cfg.Queue.AWS
		awsCfg, err := loadAWSConfig(ctx, a.Region, a.AccessKeyID, a.SecretAccessKey)
		if err != nil {
			return nil, err
		}
		return &sqsPublisher{id: cfg.ID, queueURL: a.QueueURL, client: sqs.NewFromConfig(awsCfg)}, nil

	case QueueProviderAWSSNS:
		s := cfg.Queue.SNS
		awsCfg, err := loadAWSConfig(ctx, s.Region, s.AccessKeyID, s.SecretAccessKey)
		if err != nil {
			return nil, err
		}
		return &snsPublisher{id: cfg.ID, topicARN: s.TopicARN, client: sns.NewFromConfig(awsCfg)}, nil

	default:
		return nil, fmt.Errorf("queue provider %q is not supported", cfg.Queue.Provider)
	}
}

func loadAWSConfig(ctx context.Context, region, accessKeyID, secretAccessKey string) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
	awsCfg, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(region),
		awscfg.WithCredentialsProvider(creds),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return awsCfg, nil
}

type sqsPublisher struct {
	id       string
	queueURL string
	client   sqsClient
}

func (p *sqsPublisher) ID() string { return p.id }

func (p *sqsPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	resp, err := p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(payload)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(evt.Type),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to sqs: %w", err)
	}

	slog.Debug("SQS message sent", "publisher", p.id, "message_id", aws.ToString(resp.MessageId))
	return nil
}

type snsPublisher struct {
	id       string
	topicARN string
	client   snsClient
}

func (p *snsPublisher) ID() string { return p.id }

func (p *snsPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	resp, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(evt.Type),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish to sns: %w", err)
	}

	slog.Debug("SNS message published", "publisher", p.id, "message_id", aws.ToString(resp.MessageId))
	return nil
}
