package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spec-kit/desk-metrics/internal/config"
	"github.com/spec-kit/desk-metrics/internal/domain"
)

// Client fetches tickets from the upstream GLPI-style API. Session
// management beyond the static tokens is the upstream's problem, not ours.
type Client struct {
	baseURL   string
	appToken  string
	userToken string
	pageSize  int
	http      *http.Client
}

// NewClient builds a client from upstream configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		appToken:  cfg.AppToken,
		userToken: cfg.UserToken,
		pageSize:  pageSize,
		http:      &http.Client{Timeout: cfg.Timeout()},
	}
}

// FetchTickets retrieves the complete ticket list, paging until the
// upstream returns a short page.
func (c *Client) FetchTickets(ctx context.Context) ([]domain.Ticket, error) {
	var all []domain.Ticket
	for offset := 0; ; offset += c.pageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		tickets, err := MapTickets(page)
		if err != nil {
			return nil, err
		}
		all = append(all, tickets...)
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]sourceTicket, error) {
	endpoint, err := url.JoinPath(c.baseURL, "tickets")
	if err != nil {
		return nil, fmt.Errorf("build tickets url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build tickets request: %w", err)
	}
	query := req.URL.Query()
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(c.pageSize))
	req.URL.RawQuery = query.Encode()

	if c.appToken != "" {
		req.Header.Set("App-Token", c.appToken)
	}
	if c.userToken != "" {
		req.Header.Set("Authorization", "user_token "+c.userToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch tickets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("fetch tickets: upstream returned %d", resp.StatusCode)
	}

	var page []sourceTicket
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode tickets page: %w", err)
	}
	return page, nil
}
