package collector

import (
	"encoding/json"
	"testing"

	"tweetgrid/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptor() models.QueryDescriptor {
	return models.QueryDescriptor{
		Query:        "coffee geocode:19.0760,72.8777,0.5km",
		LocationName: "Mumbai_Central",
		Geo:          "19.0760,72.8777,0.5km",
		Keyword:      "coffee",
	}
}

func decode(t *testing.T, body string) *models.SearchResponse {
	t.Helper()
	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func TestFlattenErrorResponse(t *testing.T) {
	resp := models.ErrorResponse("HTTP 500: Internal Server Error")

	rows := Flatten(resp, "Bearer Token", descriptor())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, descriptor().Query, row.Query)
	assert.True(t, row.NoResults)
	assert.Equal(t, "HTTP 500: Internal Server Error", row.Error)
	assert.Equal(t, "Bearer Token", row.AuthMethod)
	assert.False(t, row.Usable())
}

func TestFlattenEmptyResult(t *testing.T) {
	resp := decode(t, `{"tweets": []}`)

	rows := Flatten(resp, "Bearer Token", descriptor())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.NoResults)
	assert.Empty(t, row.Error)
	assert.False(t, row.Usable())
}

func TestFlattenNilResponse(t *testing.T) {
	rows := Flatten(nil, "Bearer Token", descriptor())
	require.Len(t, rows, 1)
	assert.True(t, rows[0].NoResults)
	assert.NotEmpty(t, rows[0].Error)
}

func TestFlattenCurrentShape(t *testing.T) {
	resp := decode(t, `{
		"tweets": [{
			"id": "123",
			"url": "https://twitter.com/alice/status/123",
			"text": "Great coffee at https://example.com/cafe!!!",
			"createdAt": "2024-05-01T10:00:00Z",
			"replyCount": 3,
			"likeCount": 7,
			"author": {"name": "Alice", "userName": "alice", "description": "barista"}
		}]
	}`)

	rows := Flatten(resp, "Bearer Token", descriptor())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2024-05-01T10:00:00Z", row.Date)
	assert.Equal(t, "Alice", row.TweetBy)
	assert.Equal(t, "Great coffee at", row.TextContent)
	assert.Equal(t, 3, row.ReplyCount)
	assert.Equal(t, 7, row.LikeCount)
	assert.Equal(t, "https://twitter.com/alice/status/123", row.TweetURL)
	assert.Equal(t, "alice", row.ProfileUserName)
	assert.Equal(t, "barista", row.ProfileDescription)
	assert.True(t, row.Usable())
}

func TestFlattenLegacyShape(t *testing.T) {
	resp := decode(t, `{
		"data": [{
			"id": "456",
			"text": "Traffic near the station",
			"created_at": "2024-05-02T08:30:00Z",
			"public_metrics": {"reply_count": 1, "like_count": 2},
			"user": {"name": "Bob", "screen_name": "bob_p", "description": "commuter"}
		}]
	}`)

	rows := Flatten(resp, "Token Header", descriptor())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "2024-05-02T08:30:00Z", row.Date)
	assert.Equal(t, "Bob", row.TweetBy)
	assert.Equal(t, 1, row.ReplyCount)
	assert.Equal(t, 2, row.LikeCount)
	assert.Equal(t, "bob_p", row.ProfileUserName)
	assert.Equal(t, "https://twitter.com/bob_p/status/456", row.TweetURL)
	assert.Equal(t, "Token Header", row.AuthMethod)
}

func TestFlattenInlineCountsBeatPublicMetrics(t *testing.T) {
	resp := decode(t, `{
		"tweets": [{
			"id": "789",
			"text": "hi",
			"replyCount": 0,
			"public_metrics": {"reply_count": 9, "like_count": 9},
			"author": {"name": "C", "userName": "c"}
		}]
	}`)

	rows := Flatten(resp, "Bearer Token", descriptor())
	require.Len(t, rows, 1)

	// An explicit zero wins over the legacy metrics block.
	assert.Equal(t, 0, rows[0].ReplyCount)
	assert.Equal(t, 9, rows[0].LikeCount)
}

func TestFlattenNestedEnvelopeWins(t *testing.T) {
	resp := decode(t, `{
		"response": {"tweets": [{"id": "1", "text": "nested", "author": {"name": "N", "userName": "n"}}]},
		"tweets": [{"id": "2", "text": "top"}]
	}`)

	rows := Flatten(resp, "Bearer Token", descriptor())
	require.Len(t, rows, 1)
	assert.Equal(t, "nested", rows[0].TextContent)
}

func TestFlattenMissingAuthorFields(t *testing.T) {
	resp := decode(t, `{"tweets": [{"id": "9", "text": "orphan"}]}`)

	rows := Flatten(resp, "Bearer Token", descriptor())
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Empty(t, row.TweetBy)
	assert.Empty(t, row.ProfileUserName)
	// No handle means no URL can be synthesized.
	assert.Empty(t, row.TweetURL)
	assert.True(t, row.Usable())
}
