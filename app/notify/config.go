package notify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	TypeQueue = "queue"
	TypeHTTP  = "http"

	QueueProviderAWSSQS = "aws-sqs"
	QueueProviderAWSSNS = "aws-sns"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

type configFile struct {
	Publishers []PublisherConfig `yaml:"publishers"`
}

type PublisherConfig struct {
	ID      string                `yaml:"id"`
	Type    string                `yaml:"type"`
	Enabled *bool                 `yaml:"enabled"`
	Queue   *QueuePublisherConfig `yaml:"queue"`
	HTTP    *HTTPPublisherConfig  `yaml:"http"`
}

type QueuePublisherConfig struct {
	Provider string                 `yaml:"provider"`
	AWS      *AWSSQSPublisherConfig `yaml:"aws"`
	SNS      *AWSSNSPublisherConfig `yaml:"sns"`
}

type AWSSQSPublisherConfig struct {
	QueueURL        string `yaml:"uri"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type AWSSNSPublisherConfig struct {
	TopicARN        string `yaml:"topic_arn"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type HTTPPublisherConfig struct {
	URL            string            `yaml:"url"`
	Method         string            `yaml:"method"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// LoadConfig reads a publishers file. ${VAR} references are expanded from
// the environment before decoding so credentials can stay out of the file.
func LoadConfig(path string) ([]PublisherConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read publishers file: %w", err)
	}

	return ParseConfig([]byte(os.ExpandEnv(string(raw))))
}

func ParseConfig(data []byte) ([]PublisherConfig, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	configs := make([]PublisherConfig, 0, len(file.Publishers))
	seen := make(map[string]struct{}, len(file.Publishers))
	for i, publisher := range file.Publishers {
		cfg := sanitizePublisherConfig(publisher)
		if err := validatePublisherConfig(cfg); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, exists := seen[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		seen[cfg.ID] = struct{}{}
		configs = append(configs, cfg)
	}

	return configs, nil
}

// Enabled filters configs down to the enabled ones. Publishers are enabled
// unless they say otherwise.
func Enabled(configs []PublisherConfig) []PublisherConfig {
	out := make([]PublisherConfig, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Enabled == nil || *cfg.Enabled {
			out = append(out, cfg)
		}
	}
	return out
}

func sanitizePublisherConfig(cfg PublisherConfig) PublisherConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Queue != nil {
		qc := *cfg.Queue
		qc.Provider = strings.ToLower(strings.TrimSpace(qc.Provider))
		if qc.AWS != nil {
			a := *qc.AWS
			a.QueueURL = strings.TrimSpace(a.QueueURL)
			a.Region = strings.TrimSpace(a.Region)
			a.AccessKeyID = strings.TrimSpace(a.AccessKeyID)
			a.SecretAccessKey = strings.TrimSpace(a.SecretAccessKey)
			qc.AWS = &a
		}
		if qc.SNS != nil {
			s := *qc.SNS
			s.TopicARN = strings.TrimSpace(s.TopicARN)
			s.Region = strings.TrimSpace(s.Region)
			s.AccessKeyID = strings.TrimSpace(s.AccessKeyID)
			s.SecretAccessKey = strings.TrimSpace(s.SecretAccessKey)
			qc.SNS = &s
		}
		cfg.Queue = &qc
	}

	if cfg.HTTP != nil {
		c := *cfg.HTTP
		c.URL = strings.TrimSpace(c.URL)
		c.Method = strings.ToUpper(strings.TrimSpace(c.Method))
		if c.Method == "" {
			c.Method = httpDefaultMethod
		}
		headers := make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			if k, v = strings.TrimSpace(k), strings.TrimSpace(v); k != "" && v != "" {
				headers[k] = v
			}
		}
		c.Headers = headers
		if c.TimeoutSeconds <= 0 {
			c.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		cfg.HTTP = &c
	}

	return cfg
}

func validatePublisherConfig(cfg PublisherConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	switch cfg.Type {
	case TypeQueue:
		if cfg.Queue == nil {
			return fmt.Errorf("queue config required for publisher %q", cfg.ID)
		}
		switch cfg.Queue.Provider {
		case QueueProviderAWSSQS:
			a := cfg.Queue.AWS
			if a == nil {
				return fmt.Errorf("sqs config required for publisher %q", cfg.ID)
			}
			return requireFields(cfg.ID, map[string]string{
				"aws.uri":               a.QueueURL,
				"aws.region":            a.Region,
				"aws.access_key_id":     a.AccessKeyID,
				"aws.secret_access_key": a.SecretAccessKey,
			})
		case QueueProviderAWSSNS:
			s := cfg.Queue.SNS
			if s == nil {
				return fmt.Errorf("sns config required for publisher %q", cfg.ID)
			}
			return requireFields(cfg.ID, map[string]string{
				"sns.topic_arn":         s.TopicARN,
				"sns.region":            s.Region,
				"sns.access_key_id":     s.AccessKeyID,
				"sns.secret_access_key": s.SecretAccessKey,
			})
		default:
			return fmt.Errorf("queue provider %q not supported for publisher %q", cfg.Queue.Provider, cfg.ID)
		}
	case TypeHTTP:
		if cfg.HTTP == nil {
			return fmt.Errorf("http config required for publisher %q", cfg.ID)
		}
		if cfg.HTTP.URL == "" {
			return fmt.Errorf("http.url is required for publisher %q", cfg.ID)
		}
		return nil
	case "":
		return fmt.Errorf("type is required for publisher %q", cfg.ID)
	default:
		return fmt.Errorf("type %q not supported for publisher %q", cfg.Type, cfg.ID)
	}
}

func requireFields(id string, fields map[string]string) error {
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("%s is required for publisher %q", name, id)
		}
	}
	return nil
}
