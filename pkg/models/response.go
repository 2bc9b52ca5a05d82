package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SearchResponse is the raw shape returned by the search endpoint. The API has
// shipped two envelope variants over time: tweets nested under a "response"
// object, and tweets at the top level under "tweets" or "data". All variants
// are decoded; Items applies the fixed preference order.
type SearchResponse struct {
	Error    *APIError      `json:"error,omitempty"`
	Response *SearchPayload `json:"response,omitempty"`
	Tweets   []Tweet        `json:"tweets,omitempty"`
	Data     []Tweet        `json:"data,omitempty"`
}

// SearchPayload is the nested result envelope.
type SearchPayload struct {
	Tweets []Tweet `json:"tweets"`
	Data   []Tweet `json:"data"`
}

// Items extracts the tweet list, preferring the nested envelope over the top
// level, and "tweets" over "data" within each. Shapes are never merged: the
// first present list wins even if empty is the eventual answer.
func (r *SearchResponse) Items() []Tweet {
	if r == nil {
		return nil
	}
	if r.Response != nil {
		if r.Response.Tweets != nil {
			return r.Response.Tweets
		}
		return r.Response.Data
	}
	if r.Tweets != nil {
		return r.Tweets
	}
	return r.Data
}

// ErrorResponse builds a synthetic error-carrying response. The fetcher uses
// it to report transport and authorization failures without raising.
func ErrorResponse(message string) *SearchResponse {
	return &SearchResponse{Error: &APIError{Message: message}}
}

// APIError is the error payload the API (or the fetcher, synthetically)
// attaches to a failed search.
type APIError struct {
	Message string `json:"message"`
}

// UnmarshalJSON tolerates both `{"message": "..."}` objects and bare string
// error values.
func (e *APIError) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Message)
	}
	type plain APIError
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		// Keep the raw payload as the message rather than failing the
		// whole response decode.
		e.Message = string(data)
		return nil
	}
	if p.Message == "" {
		e.Message = string(data)
		return nil
	}
	*e = APIError(p)
	return nil
}

// Tweet is one post as returned by the API. Author data appears either under
// "author" (current shape) or "user" (legacy shape); engagement counts either
// inline or under "public_metrics". Pointer fields distinguish absent from
// zero so the flattener can apply ordered fallbacks.
type Tweet struct {
	ID              string        `json:"id"`
	URL             string        `json:"url"`
	Text            string        `json:"text"`
	CreatedAt       string        `json:"createdAt"`
	CreatedAtLegacy string        `json:"created_at"`
	ReplyCount      *Count        `json:"replyCount,omitempty"`
	LikeCount       *Count        `json:"likeCount,omitempty"`
	PublicMetrics   PublicMetrics `json:"public_metrics"`
	Author          *Author       `json:"author,omitempty"`
	User            *LegacyUser   `json:"user,omitempty"`
}

// Author is the current author representation.
type Author struct {
	Name        string `json:"name"`
	UserName    string `json:"userName"`
	Description string `json:"description"`
}

// LegacyUser is the older author representation.
type LegacyUser struct {
	Name        string `json:"name"`
	ScreenName  string `json:"screen_name"`
	Description string `json:"description"`
}

// PublicMetrics carries engagement counts in the legacy shape.
type PublicMetrics struct {
	ReplyCount Count `json:"reply_count"`
	LikeCount  Count `json:"like_count"`
}

// Count is a non-negative integer that decodes defensively: numbers, numeric
// strings and floats are accepted, null and garbage become 0, negatives are
// clamped to 0.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			n = 0
		}
		*c = Count(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			f = 0
		}
		*c = Count(int(f))
		return nil
	}
	*c = 0
	return nil
}

// Int returns the count as a plain int.
func (c Count) Int() int { return int(c) }
