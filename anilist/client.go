package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/animeverse/animeverse/internal/cache"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/network"
	"github.com/animeverse/animeverse/throttle"
	"github.com/animeverse/animeverse/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// DefaultURL is the public AniList GraphQL endpoint.
const DefaultURL = "https://graphql.anilist.co"

var (
	// ErrFetch wraps transport failures, non-2xx responses and GraphQL errors.
	ErrFetch = errors.New("anilist: fetch failed")

	// ErrEmptyQuery is returned by searches whose query is blank.
	ErrEmptyQuery = errors.New("anilist: empty search query")
)

// Client talks to the AniList GraphQL endpoint through its own throttle.
type Client struct {
	url      string
	http     *http.Client
	throttle *throttle.Throttle

	details *cache.Keyed[int, *Media]
	failed  *cache.Keyed[string, bool]
}

// Option configures a Client.
type Option func(*Client)

// WithURL points the client at another GraphQL endpoint.
func WithURL(u string) Option {
	return func(c *Client) {
		c.url = u
	}
}

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithThrottle replaces the client's throttle.
func WithThrottle(t *throttle.Throttle) Option {
	return func(c *Client) {
		c.throttle = t
	}
}

// WithCacheDir stores caches under dir instead of the application cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.details = cache.New[int, *Media](filepath.Join(dir, "anilist_details.json"), 2*24*time.Hour)
		c.failed = cache.New[string, bool](filepath.Join(dir, "anilist_fail.json"), time.Minute)
	}
}

// New builds a client. Defaults come from the configuration.
func New(opts ...Option) *Client {
	c := &Client{
		url:  viper.GetString(key.CatalogAnilistURL),
		http: network.Client,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.url == "" {
		c.url = DefaultURL
	}
	if c.throttle == nil {
		interval := time.Duration(viper.GetInt(key.CatalogAnilistThrottleInterval)) * time.Millisecond
		c.throttle = throttle.New(interval)
	}
	if c.details == nil {
		c.details = cache.New[int, *Media](where.Details("anilist"), 2*24*time.Hour)
	}
	if c.failed == nil {
		c.failed = cache.New[string, bool](filepath.Join(where.Cache(), "anilist_fail_cache.json"), time.Minute)
	}
	return c
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type envelope[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// post sends one throttled GraphQL request and decodes its data into target.
func (c *Client) post(ctx context.Context, query string, variables map[string]any, target any) error {
	if err := c.throttle.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}

	entry := log.WithFields(log.Fields{"source": "anilist", "variables": variables})
	entry.Debug("requesting")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("request failed")
		return fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		entry.WithField("status", resp.StatusCode).Error("unexpected status")
		return fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	response := envelope[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		entry.WithError(err).Error("decode failed")
		return fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}

	if len(response.Errors) > 0 {
		messages := lo.Map(response.Errors, func(e graphQLError, _ int) string {
			return e.Message
		})
		entry.WithField("errors", messages).Error("graphql errors")
		return fmt.Errorf("%w: %s", ErrFetch, strings.Join(messages, "; "))
	}

	if err := json.Unmarshal(response.Data, target); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrFetch, err)
	}
	return nil
}
