package oddsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/ferrarinobrakes/oddsboard/internal/config"
	"github.com/ferrarinobrakes/oddsboard/internal/domain"
)

// sportKeys translates user-facing sport labels into the feed's taxonomy.
// Labels with no entry are omitted from the request entirely.
var sportKeys = map[string]string{
	"football":   "soccer",
	"cricket":    "cricket",
	"basketball": "basketball",
	"tennis":     "tennis",
	"baseball":   "baseball",
	"hockey":     "icehockey",
	"rugby":      "rugbyunion",
}

// statusParams translates time windows into the feed's status parameter.
// The live-and-upcoming window is the feed's default and sends nothing.
var statusParams = map[domain.TimeWindow]string{
	domain.WindowInPlay:  "live",
	domain.WindowResults: "completed",
}

// Query describes one page request against the odds feed.
type Query struct {
	Sport    string
	Window   domain.TimeWindow
	PageSize int
	Skip     int
}

// ListResponse is one page of match snapshots. Total is nil when the feed
// does not report an overall count.
type ListResponse struct {
	Total *int           `json:"total,omitempty"`
	Data  []domain.Match `json:"data"`
}

type RateLimitInfo struct {
	Remaining int       `json:"remaining"`
	Used      int       `json:"used"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
	logger  zerolog.Logger

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.OddsAPIBaseURL,
		apiKey:  cfg.OddsAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "oddsapi").Logger(),
	}
}

// List fetches one page of matches for the given filters.
func (c *Client) List(ctx context.Context, q Query) (*ListResponse, error) {
	uri := c.requestURI(q)
	return doRequest[ListResponse](ctx, c, uri)
}

// requestURI builds the page request. Every call carries a fresh
// cache-buster so intermediate caches cannot replay stale pages out of
// turn.
func (c *Client) requestURI(q Query) string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)

	args.Set("limit", strconv.Itoa(q.PageSize))
	args.Set("skip", strconv.Itoa(q.Skip))
	if key, ok := sportKeys[q.Sport]; ok {
		args.Set("sport", key)
	}
	if status, ok := statusParams[q.Window]; ok {
		args.Set("status", status)
	}
	args.Set("_", gonanoid.Must())

	return fmt.Sprintf("%s/v1/matches?%s", c.baseURL, args.String())
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if remaining := string(resp.Header.Peek("X-Requests-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if used := string(resp.Header.Peek("X-Requests-Used")); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			c.rateLimit.Used = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func doRequest[T any](ctx context.Context, client *Client, uri string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	// An empty result set is an empty-state view, not an error.
	if resp.StatusCode() == fasthttp.StatusNotFound {
		var empty T
		return &empty, nil
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("odds feed error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decoding odds feed response: %w", err)
	}
	return &result, nil
}
