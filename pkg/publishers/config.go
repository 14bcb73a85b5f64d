package publishers

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// Supported publisher types.
	TypeQueue = "queue"
	TypeHTTP  = "http"

	// Supported queue providers.
	QueueProviderAWSSQS = "aws-sqs"
	QueueProviderAWSSNS = "aws-sns"
	QueueProviderAzure  = "azure"
	QueueProviderGCP    = "gcp"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// configFile is the on-disk shape of the publishers file.
type configFile struct {
	Publishers []PublisherConfig `json:"publishers" yaml:"publishers"`
}

// PublisherConfig is one sink entry in the publishers file.
type PublisherConfig struct {
	ID      string          `json:"id" yaml:"id"`
	Type    string          `json:"type" yaml:"type"`
	Enabled *bool           `json:"enabled" yaml:"enabled"`
	Queue   *QueueConfig    `json:"queue" yaml:"queue"`
	HTTP    *HTTPSinkConfig `json:"http" yaml:"http"`
}

// QueueConfig selects a cloud queue provider.
type QueueConfig struct {
	Provider string           `json:"provider" yaml:"provider"`
	SQS      *AWSSQSConfig    `json:"sqs" yaml:"sqs"`
	SNS      *AWSSNSConfig    `json:"sns" yaml:"sns"`
	Azure    *AzureConfig     `json:"azure" yaml:"azure"`
	GCP      *GCPPubSubConfig `json:"gcp" yaml:"gcp"`
}

// AWSSQSConfig holds AWS SQS settings.
type AWSSQSConfig struct {
	QueueURL        string `json:"queue_url" yaml:"queue_url"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// AWSSNSConfig holds AWS SNS settings.
type AWSSNSConfig struct {
	TopicARN        string `json:"topic_arn" yaml:"topic_arn"`
	Region          string `json:"region" yaml:"region"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
}

// AzureConfig holds the minimal Service Bus settings. Recognized in
// config, not yet implemented as a sender.
type AzureConfig struct {
	ConnectionString string `json:"connection_string" yaml:"connection_string"`
	QueueName        string `json:"queue" yaml:"queue"`
}

// GCPPubSubConfig holds the minimal Pub/Sub topic settings.
type GCPPubSubConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
}

// HTTPSinkConfig holds generic webhook settings.
type HTTPSinkConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// ConfigRegistry holds the publisher definitions loaded from disk.
type ConfigRegistry struct {
	mu         sync.RWMutex
	publishers []PublisherConfig
	idx        map[string]PublisherConfig
}

// LoadRegistry reads a YAML or JSON publishers file, expanding
// ${ENV_VAR} references so credentials stay out of the file itself.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("publishers file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read publishers file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(raw)))

	file, err := decodeConfigFile(expanded, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(file.Publishers) == 0 {
		return nil, errors.New("publishers file contains no publishers entries")
	}

	reg := &ConfigRegistry{
		publishers: make([]PublisherConfig, len(file.Publishers)),
		idx:        make(map[string]PublisherConfig, len(file.Publishers)),
	}
	for i := range file.Publishers {
		cfg := sanitizeConfig(file.Publishers[i])
		if err := validateConfig(cfg); err != nil {
			return nil, fmt.Errorf("publishers[%d]: %w", i, err)
		}
		if _, exists := reg.idx[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate publisher id %q", cfg.ID)
		}
		reg.publishers[i] = cfg
		reg.idx[cfg.ID] = cfg
	}
	return reg, nil
}

func decodeConfigFile(data []byte, ext string) (configFile, error) {
	var file configFile
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return configFile{}, fmt.Errorf("decode yaml publishers: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return configFile{}, fmt.Errorf("decode json publishers: %w", err)
		}
	default:
		return configFile{}, errors.New("publishers file format not recognized (expected YAML or JSON)")
	}
	return file, nil
}

// sanitizeConfig trims and normalizes one entry.
func sanitizeConfig(cfg PublisherConfig) PublisherConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))

	if cfg.Enabled == nil {
		def := true
		cfg.Enabled = &def
	}

	if cfg.Queue != nil {
		qc := *cfg.Queue
		qc.Provider = strings.ToLower(strings.TrimSpace(qc.Provider))
		if qc.SQS != nil {
			q := *qc.SQS
			q.QueueURL = strings.TrimSpace(q.QueueURL)
			q.Region = strings.TrimSpace(q.Region)
			q.AccessKeyID = strings.TrimSpace(q.AccessKeyID)
			q.SecretAccessKey = strings.TrimSpace(q.SecretAccessKey)
			qc.SQS = &q
		}
		if qc.SNS != nil {
			q := *qc.SNS
			q.TopicARN = strings.TrimSpace(q.TopicARN)
			q.Region = strings.TrimSpace(q.Region)
			q.AccessKeyID = strings.TrimSpace(q.AccessKeyID)
			q.SecretAccessKey = strings.TrimSpace(q.SecretAccessKey)
			qc.SNS = &q
		}
		if qc.GCP != nil {
			q := *qc.GCP
			q.ProjectID = strings.TrimSpace(q.ProjectID)
			q.Topic = strings.TrimSpace(q.Topic)
			q.CredentialsFile = strings.TrimSpace(q.CredentialsFile)
			qc.GCP = &q
		}
		cfg.Queue = &qc
	}

	if cfg.HTTP != nil {
		h := *cfg.HTTP
		h.URL = strings.TrimSpace(h.URL)
		h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
		if h.Method == "" {
			h.Method = httpDefaultMethod
		}
		if h.TimeoutSeconds <= 0 {
			h.TimeoutSeconds = httpDefaultTimeoutSeconds
		}
		cfg.HTTP = &h
	}

	return cfg
}

// validateConfig checks required fields per type.
func validateConfig(cfg PublisherConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}

	switch cfg.Type {
	case TypeQueue:
		if cfg.Queue == nil {
			return fmt.Errorf("queue config required for publisher %q", cfg.ID)
		}
		return validateQueueConfig(cfg.ID, cfg.Queue)
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

func validateQueueConfig(id string, qc *QueueConfig) error {
	switch qc.Provider {
	case QueueProviderAWSSQS:
		if qc.SQS == nil || qc.SQS.QueueURL == "" || qc.SQS.Region == "" {
			return fmt.Errorf("sqs queue_url and region are required for publisher %q", id)
		}
		if qc.SQS.AccessKeyID == "" || qc.SQS.SecretAccessKey == "" {
			return fmt.Errorf("sqs credentials are required for publisher %q", id)
		}
	case QueueProviderAWSSNS:
		if qc.SNS == nil || qc.SNS.TopicARN == "" || qc.SNS.Region == "" {
			return fmt.Errorf("sns topic_arn and region are required for publisher %q", id)
		}
		if qc.SNS.AccessKeyID == "" || qc.SNS.SecretAccessKey == "" {
			return fmt.Errorf("sns credentials are required for publisher %q", id)
		}
	case QueueProviderGCP:
		if qc.GCP == nil || qc.GCP.ProjectID == "" || qc.GCP.Topic == "" {
			return fmt.Errorf("gcp project_id and topic are required for publisher %q", id)
		}
	case QueueProviderAzure:
		return fmt.Errorf("queue provider %q not implemented for publisher %q", qc.Provider, id)
	default:
		return fmt.Errorf("queue provider %q not supported for publisher %q", qc.Provider, id)
	}
	return nil
}

// ByID returns one publisher config.
func (r *ConfigRegistry) ByID(id string) (PublisherConfig, bool) {
	if r == nil {
		return PublisherConfig{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.idx[strings.TrimSpace(id)]
	return cfg, ok
}

// All returns every configured publisher.
func (r *ConfigRegistry) All() []PublisherConfig {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PublisherConfig, len(r.publishers))
	copy(out, r.publishers)
	return out
}

// Enabled returns the publishers whose enabled flag is set (the
// default when omitted).
func (r *ConfigRegistry) Enabled() []PublisherConfig {
	all := r.All()
	out := make([]PublisherConfig, 0, len(all))
	for _, cfg := range all {
		if cfg.EnabledValue() {
			out = append(out, cfg)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// EnabledValue reports the enabled flag, defaulting to true.
func (cfg PublisherConfig) EnabledValue() bool {
	return cfg.Enabled == nil || *cfg.Enabled
}
