// Package adapter provides a Go client for the collectify HTTP API. The
// client implements the service interfaces, so callers can swap the
// in-process services for a remote server without changing call sites.
package adapter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/service"
	"github.com/go-resty/resty/v2"
)

// Compile-time checks that Client covers every service surface.
var (
	_ service.TemplateService   = (*Client)(nil)
	_ service.CollectionService = (*Client)(nil)
	_ service.ItemService       = (*Client)(nil)
)

type Client struct {
	client *resty.Client

	logger *logger.Logger
}

// NewClient builds a client for the server at address. A bare host:port is
// accepted and prefixed with http://.
func NewClient(address string, timeout time.Duration, logger *logger.Logger) (*Client, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
