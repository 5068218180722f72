// Package connector talks to the AI endpoint the studio uses for
// auto-tagging. The endpoint speaks the OpenAI API, whether it is the
// hosted service or a local server such as Ollama or LM Studio.
package connector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/fstophq/fstop-cli/pkg/models"
)

const (
	// DefaultOpenAIBaseURL is used for the hosted provider when no address
	// is configured.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout bounds connectivity probes and model listings.
	DefaultTimeout = 10 * time.Second
)

// ErrNoProvider is returned when the settings select no AI provider.
var ErrNoProvider = errors.New("no AI provider configured")

// Config selects and locates the connector endpoint.
type Config struct {
	Provider string
	Address  string
	APIKey   string
	Timeout  time.Duration
}

// Client wraps an OpenAI-compatible endpoint.
type Client struct {
	client  openai.Client
	address string
	logger  *zap.Logger
}

// New builds a client for the configured provider. The local provider
// needs an explicit address; the hosted one falls back to the public API.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	address := cfg.Address
	switch cfg.Provider {
	case models.ProviderNone, "":
		return nil, ErrNoProvider
	case models.ProviderOpenAI:
		if address == "" {
			address = DefaultOpenAIBaseURL
		}
	case models.ProviderLocal:
		if address == "" {
			return nil, errors.New("local provider requires a connector address")
		}
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(address),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	)

	return &Client{
		client:  client,
		address: address,
		logger:  logger,
	}, nil
}

// NewForAddress builds a client against one explicit address, regardless of
// the configured provider. The connection tester uses it to probe the
// address currently typed into the form.
func NewForAddress(address, apiKey string, logger *zap.Logger) (*Client, error) {
	if address == "" {
		return nil, errors.New("connector address is empty")
	}
	return New(Config{
		Provider: models.ProviderLocal,
		Address:  address,
		APIKey:   apiKey,
	}, logger)
}

// Address returns the resolved base URL.
func (c *Client) Address() string {
	return c.address
}

// Test probes the endpoint by listing its models. A reachable,
// authenticated endpoint answers; anything else is a failure.
func (c *Client) Test(ctx context.Context) error {
	start := time.Now()
	_, err := c.client.Models.List(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("connector test failed",
				zap.String("address", c.address),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
		}
		return fmt.Errorf("connector test against %s failed: %w", c.address, err)
	}
	if c.logger != nil {
		c.logger.Info("connector test succeeded",
			zap.String("address", c.address),
			zap.Duration("elapsed", time.Since(start)))
	}
	return nil
}

// Models lists the model IDs the endpoint offers, sorted.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models at %s: %w", c.address, err)
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}
