package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"envmonitor/internal/models"
)

const (
	DefaultBaseURL = "https://api.thingspeak.com"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config points the client at one ThingSpeak channel.
type Config struct {
	BaseURL   string
	ChannelID string
	ReadKey   string
	Timeout   time.Duration
}

// ThingSpeak reads samples from a ThingSpeak channel feed.
type ThingSpeak struct {
	client    *http.Client
	baseURL   string
	channelID string
	readKey   string
}

// NewThingSpeak builds a client. A nil httpClient gets one with cfg.Timeout.
func NewThingSpeak(cfg Config, httpClient *http.Client) *ThingSpeak {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &ThingSpeak{
		client:    httpClient,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		channelID: cfg.ChannelID,
		readKey:   cfg.ReadKey,
	}
}

// Latest returns the newest sample, or nil if the channel has no entries.
func (c *ThingSpeak) Latest(ctx context.Context) (*models.Sample, error) {
	resp, err := c.fetch(ctx, url.Values{"results": {"1"}})
	if err != nil {
		return nil, err
	}
	if len(resp.Feeds) == 0 {
		return nil, nil
	}
	// feeds are ordered oldest first
	s := toSample(resp.Feeds[len(resp.Feeds)-1])
	return &s, nil
}

// History returns up to w.Results samples from the last w.Days days.
func (c *ThingSpeak) History(ctx context.Context, w models.HistoryWindow) ([]models.Sample, error) {
	q := url.Values{
		"results": {strconv.Itoa(w.Results)},
		"days":    {strconv.Itoa(w.Days)},
	}
	resp, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.Sample, 0, len(resp.Feeds))
	for _, f := range resp.Feeds {
		out = append(out, toSample(f))
	}
	return out, nil
}

func (c *ThingSpeak) feedURL(q url.Values) string {
	if c.readKey != "" {
		q.Set("api_key", c.readKey)
	}
	return fmt.Sprintf("%s/channels/%s/feeds.json?%s", c.baseURL, url.PathEscape(c.channelID), q.Encode())
}

func (c *ThingSpeak) fetch(ctx context.Context, q url.Values) (*channelResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get channel %s feed: %w", c.channelID, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return nil, fmt.Errorf("get channel %s feed: unexpected status %d", c.channelID, res.StatusCode)
	}

	var out channelResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode channel %s feed: %w", c.channelID, err)
	}
	return &out, nil
}
