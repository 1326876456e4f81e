// Package jikan is a client for the Jikan v4 REST API, the unofficial MyAnimeList mirror.
package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/animeverse/animeverse/internal/cache"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/network"
	"github.com/animeverse/animeverse/throttle"
	"github.com/animeverse/animeverse/where"
	"github.com/spf13/viper"
)

const (
	// DefaultBaseURL is the public Jikan v4 endpoint.
	DefaultBaseURL = "https://api.jikan.moe/v4"

	detailsLifetime = 2 * 24 * time.Hour
)

var (
	// ErrFetch wraps every transport failure and non-2xx response.
	ErrFetch = errors.New("jikan: fetch failed")

	// ErrEmptyQuery is returned by searches whose query is blank.
	ErrEmptyQuery = errors.New("jikan: empty search query")

	// ErrUnknownGenre is returned when a genre name matches nothing in the genre table.
	ErrUnknownGenre = errors.New("jikan: unknown genre")
)

// Client talks to the Jikan API. All methods share one throttle.
type Client struct {
	baseURL  string
	http     *http.Client
	throttle *throttle.Throttle

	animeDetails *cache.Keyed[int, *Anime]
	mangaDetails *cache.Keyed[int, *Manga]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another Jikan-compatible host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithThrottle shares an existing throttle with the client.
func WithThrottle(t *throttle.Throttle) Option {
	return func(c *Client) {
		c.throttle = t
	}
}

// WithCacheDir stores details caches under dir instead of the application cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		c.animeDetails = cache.New[int, *Anime](filepath.Join(dir, "jikan_anime_details.json"), detailsLifetime)
		c.mangaDetails = cache.New[int, *Manga](filepath.Join(dir, "jikan_manga_details.json"), detailsLifetime)
	}
}

// New builds a client. Defaults come from the configuration.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(viper.GetString(key.CatalogJikanURL), "/"),
		http:    network.Client,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.throttle == nil {
		interval := time.Duration(viper.GetInt(key.CatalogThrottleInterval)) * time.Millisecond
		c.throttle = throttle.New(interval)
	}
	if c.animeDetails == nil {
		c.animeDetails = cache.New[int, *Anime](where.Details("jikan_anime"), detailsLifetime)
	}
	if c.mangaDetails == nil {
		c.mangaDetails = cache.New[int, *Manga](where.Details("jikan_manga"), detailsLifetime)
	}
	return c
}

// get issues a throttled GET and decodes the JSON body into target.
func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	if err := c.throttle.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	entry := log.WithFields(log.Fields{"source": "jikan", "path": path, "query": params.Encode()})
	entry.Debug("requesting")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("request failed")
		return fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		entry.WithField("status", resp.StatusCode).Error("unexpected status")
		return fmt.Errorf("%w: %s: status %d", ErrFetch, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		entry.WithError(err).Error("decode failed")
		return fmt.Errorf("%w: %s: decode: %v", ErrFetch, path, err)
	}
	return nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	params.Set("page", fmt.Sprint(max(page, 1)))
	return params
}
