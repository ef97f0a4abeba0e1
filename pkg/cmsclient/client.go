// Package cmsclient provides the main entry point for creating CMS content API clients
package cmsclient

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fivetwenty-io/cms-content/internal/client"
	"github.com/fivetwenty-io/cms-content/internal/constants"
	"github.com/fivetwenty-io/cms-content/pkg/cms"
)

var serviceDomainPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?$`)

// New creates a new content API client. ServiceDomain and APIKey are
// required; surrounding whitespace is ignored.
func New(ctx context.Context, config *cms.Config) (cms.Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	normalized := *config
	normalized.ServiceDomain = strings.TrimSpace(config.ServiceDomain)
	normalized.APIKey = strings.TrimSpace(config.APIKey)

	if normalized.ServiceDomain == "" {
		return nil, cms.ErrServiceDomainRequired
	}

	if normalized.APIKey == "" {
		return nil, cms.ErrAPIKeyRequired
	}

	if normalized.BaseURL == "" {
		baseURL, err := BaseURLForDomain(normalized.ServiceDomain)
		if err != nil {
			return nil, err
		}

		normalized.BaseURL = baseURL
	} else {
		normalized.BaseURL = normalizeBaseURL(normalized.BaseURL)
	}

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithCredentials creates a client from a service domain and API key with
// default settings.
func NewWithCredentials(ctx context.Context, serviceDomain, apiKey string) (cms.Client, error) {
	return New(ctx, &cms.Config{
		ServiceDomain: serviceDomain,
		APIKey:        apiKey,
	})
}

// BaseURLForDomain returns the API base URL for a service subdomain.
func BaseURLForDomain(serviceDomain string) (string, error) {
	serviceDomain = strings.TrimSpace(serviceDomain)
	if !serviceDomainPattern.MatchString(serviceDomain) {
		return "", fmt.Errorf("%w: %q", cms.ErrInvalidServiceDomain, serviceDomain)
	}

	return fmt.Sprintf(constants.APIBaseURLFormat, serviceDomain), nil
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
