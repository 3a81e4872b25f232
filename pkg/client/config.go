package client

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// DefaultRootURL is DocuSign's demo environment.
const DefaultRootURL = "https://demo.docusign.net/restapi/v2"

// Config holds DocuSign API connection settings.
type Config struct {
	// RootURL is the base URL of the DocuSign REST API
	// (default: DefaultRootURL).
	RootURL string `yaml:"root_url"`

	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	IntegratorKey string `yaml:"integrator_key"`

	// AccountID and AccountURL can be left empty; they are populated by
	// LoginInformation on first use.
	AccountID  string `yaml:"account_id"`
	AccountURL string `yaml:"account_url"`

	// Timeout is the per-request HTTP timeout (default: 30s).
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of additional attempts made when a
	// request fails at the network level. Unexpected status codes are
	// never retried.
	MaxRetries uint64 `yaml:"max_retries"`

	// LegacyMultipart switches document-mode envelope creation from the
	// canonical base64 JSON body to the older multipart encoding, for
	// wire compatibility with deployments that expect it.
	LegacyMultipart bool `yaml:"legacy_multipart"`

	// Logger (optional).
	Logger hclog.Logger `yaml:"-"`
}

// Validate checks the settings a live API call needs.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RootURL, validation.Required, is.URL),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
		validation.Field(&c.IntegratorKey, validation.Required),
	)
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.RootURL == "" {
		cfg.RootURL = DefaultRootURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return &cfg, nil
}

// ConfigFromEnv builds a configuration from DOCUSIGN_* environment
// variables: DOCUSIGN_ROOT_URL, DOCUSIGN_USERNAME, DOCUSIGN_PASSWORD,
// DOCUSIGN_INTEGRATOR_KEY and DOCUSIGN_ACCOUNT_ID.
func ConfigFromEnv() *Config {
	cfg := &Config{
		RootURL:       os.Getenv("DOCUSIGN_ROOT_URL"),
		Username:      os.Getenv("DOCUSIGN_USERNAME"),
		Password:      os.Getenv("DOCUSIGN_PASSWORD"),
		IntegratorKey: os.Getenv("DOCUSIGN_INTEGRATOR_KEY"),
		AccountID:     os.Getenv("DOCUSIGN_ACCOUNT_ID"),
	}
	if cfg.RootURL == "" {
		cfg.RootURL = DefaultRootURL
	}
	return cfg
}
