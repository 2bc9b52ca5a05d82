// Package twitter talks to the tweet search API. All failure modes are folded
// into error-carrying responses so the pipeline never handles a fetch error.
package twitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tweetgrid/pkg/auth"
	"tweetgrid/pkg/config"
	apierrors "tweetgrid/pkg/errors"
	"tweetgrid/pkg/logger"
	"tweetgrid/pkg/models"
)

// DefaultBaseURL is the advanced search endpoint.
const DefaultBaseURL = "https://api.twitterapi.io/twitter/tweet/advanced_search"

// unauthorizedMessage is the synthetic error reported when every credential
// scheme is rejected.
const unauthorizedMessage = "401 Unauthorized - Token may be invalid or expired"

// Client issues search requests with primary and fallback credential schemes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	retryAlt   bool
	logger     logger.Logger
}

// NewClient creates a search API client from the API configuration.
func NewClient(cfg *config.APIConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      cfg.Token,
		retryAlt:   cfg.RetryAltAuth,
		logger:     log,
	}
}

// Search runs one query against the search endpoint and returns the parsed
// response together with the name of the credential scheme that produced it.
// Search never returns a Go error: transport failures, authorization failures
// and unexpected statuses all come back as an error payload so a single
// query's failure is never fatal upstream.
func (c *Client) Search(query string) (*models.SearchResponse, string) {
	primary := auth.Primary()

	status, body, err := c.do(query, primary)
	if err != nil {
		c.logger.WarnWithFields("search request failed", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return models.ErrorResponse(err.Error()), primary.Name
	}

	if status == http.StatusOK {
		resp, err := parseBody(body)
		if err != nil {
			return models.ErrorResponse(err.Error()), primary.Name
		}
		return resp, primary.Name
	}

	if status == http.StatusUnauthorized && c.retryAlt {
		for _, scheme := range auth.Fallbacks() {
			altStatus, altBody, err := c.do(query, scheme)
			if err != nil {
				// A fallback attempt failing at the transport level
				// moves on to the next scheme.
				continue
			}
			if altStatus != http.StatusOK {
				continue
			}
			resp, err := parseBody(altBody)
			if err != nil {
				continue
			}
			c.logger.InfoWithFields("authorized via fallback scheme", map[string]interface{}{
				"query":       query,
				"auth_method": scheme.Name,
			})
			return resp, scheme.Name
		}

		c.logger.WarnWithFields("all credential schemes rejected", map[string]interface{}{
			"query": query,
		})
		return models.ErrorResponse(unauthorizedMessage), primary.Name
	}

	c.logger.WarnWithFields("search returned non-OK status", map[string]interface{}{
		"query":      query,
		"status":     status,
		"error_type": string(apierrors.ClassifyStatus(status)),
	})
	return models.ErrorResponse(fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))), primary.Name
}

// do issues one GET with the given credential scheme and returns the status
// and body.
func (c *Client) do(query string, scheme auth.Scheme) (int, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	params := url.Values{}
	params.Set("query", query)
	req.URL.RawQuery = params.Encode()

	scheme.Apply(req, c.token)

	start := time.Now()
	c.logger.DebugWithFields("sending search request", map[string]interface{}{
		"url":         req.URL.String(),
		"auth_method": scheme.Name,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugWithFields("search request completed", map[string]interface{}{
		"status":      resp.StatusCode,
		"auth_method": scheme.Name,
		"duration":    duration,
	})

	return resp.StatusCode, body, nil
}

// parseBody decodes a search response body. Some deployments return a bare
// array of tweets instead of an envelope.
func parseBody(body []byte) (*models.SearchResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tweets []models.Tweet
		if err := json.Unmarshal(trimmed, &tweets); err == nil {
			return &models.SearchResponse{Tweets: tweets}, nil
		}
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("failed to parse response: %v (body: %s)", err, preview)
	}
	return &resp, nil
}
