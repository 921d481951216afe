package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"nba_stats/ingestion/internal/limiter"
	"nba_stats/ingestion/internal/metrics"
	"nba_stats/ingestion/internal/models"

	"github.com/rs/zerolog/log"
)

// APIError is returned for non-2xx responses. Transient marks server-side
// failures that are worth retrying; 4xx responses are never transient.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the error is a retryable server-side failure
func (e *APIError) Transient() bool {
	return e.StatusCode >= 500
}

// IsTransient reports whether err is worth retrying: network-layer failures
// and 5xx responses are, application-level 4xx errors are not.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	// Anything that never reached the HTTP layer (connection reset, timeout)
	return !errors.Is(err, context.Canceled)
}

// Client is the balldontlie API client
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *limiter.RateLimiter
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewClient creates a new balldontlie API client. The rate limiter is shared
// across all callers so the aggregate request rate stays under the configured
// ceiling regardless of worker count; pass nil to disable throttling.
func NewClient(baseURL, apiKey string, timeout time.Duration, rl *limiter.RateLimiter) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rl,
		maxAttempts: 5,
		baseDelay:   4 * time.Second,
		maxDelay:    10 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET request with rate limiting and exponential backoff.
// Only transient failures are retried; a well-formed 4xx fails immediately.
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			// Backoff doubles from the floor up to the ceiling: 4s, 8s, 10s, 10s
			backoff := c.baseDelay << (attempt - 2)
			if backoff > c.maxDelay {
				backoff = c.maxDelay
			}
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying API request after backoff")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("Accept", "application/json")

		if len(params) > 0 {
			q := req.URL.Query()
			for key, value := range params {
				q.Add(key, value)
			}
			req.URL.RawQuery = q.Encode()
		}

		log.Debug().
			Str("url", req.URL.String()).
			Int("attempt", attempt).
			Msg("Making API request")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		metrics.APICallDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.APICallsTotal.WithLabelValues(path, "error").Inc()
			lastErr = fmt.Errorf("API request failed: %w", err)
			if errors.Is(err, context.Canceled) {
				return nil, lastErr
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		metrics.APICallsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil

		case resp.StatusCode >= 500:
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(body)}
			log.Warn().
				Str("url", url).
				Int("status", resp.StatusCode).
				Int("attempt", attempt).
				Msg("Received retryable server error")

		default:
			// 4xx application errors are terminal
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		}
	}

	return nil, fmt.Errorf("exhausted %d attempts: %w", c.maxAttempts, lastErr)
}

// FetchBoxScores fetches all box scores for one calendar date (ISO-8601)
func (c *Client) FetchBoxScores(ctx context.Context, date string) (*models.BoxScoresResponse, error) {
	body, err := c.get(ctx, "box_scores", map[string]string{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch box scores for %s: %w", date, err)
	}

	var resp models.BoxScoresResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal box scores: %w", err)
	}

	return &resp, nil
}

// FetchGamesPage fetches one page of a season's schedule. Pass a nil cursor
// for the first page; a nil NextCursor in the result marks the last page.
func (c *Client) FetchGamesPage(ctx context.Context, season, perPage int, cursor *int64) (*models.GamesPage, error) {
	params := map[string]string{
		"seasons[]": strconv.Itoa(season),
		"per_page":  strconv.Itoa(perPage),
	}
	if cursor != nil {
		params["cursor"] = strconv.FormatInt(*cursor, 10)
	}

	body, err := c.get(ctx, "games", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games page for season %d: %w", season, err)
	}

	var page models.GamesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal games page: %w", err)
	}

	return &page, nil
}

// FetchTeams fetches the full team list
func (c *Client) FetchTeams(ctx context.Context) ([]models.TeamInput, error) {
	body, err := c.get(ctx, "teams", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	var resp models.TeamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal teams: %w", err)
	}

	return resp.Data, nil
}
