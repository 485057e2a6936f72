package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type webhookPublisher struct {
	id      string
	url     string
	method  string
	headers map[string]string
	client  *resty.Client
}

func newWebhookPublisher(id string, cfg *HTTPPublisherConfig) *webhookPublisher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json")

	return &webhookPublisher{
		id:      id,
		url:     cfg.URL,
		method:  cfg.Method,
		headers: cfg.Headers,
		client:  client,
	}
}

func (p *webhookPublisher) ID() string { return p.id }

func (p *webhookPublisher) Publish(ctx context.Context, evt Event) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeaders(p.headers).
		SetHeader("X-Event-Type", evt.Type).
		SetBody(evt).
		Execute(p.method, p.url)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return nil
}
