package collector

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"tweetgrid/pkg/config"
	"tweetgrid/pkg/logger"
	"tweetgrid/pkg/models"
	"tweetgrid/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFetcher returns canned results in call order.
type scriptedFetcher struct {
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	resp   *models.SearchResponse
	method string
}

func (f *scriptedFetcher) Search(query string) (*models.SearchResponse, string) {
	if f.calls >= len(f.results) {
		return models.ErrorResponse("unexpected query: " + query), "Bearer Token"
	}
	r := f.results[f.calls]
	f.calls++
	return r.resp, r.method
}

// memoryWriter is an in-memory Writer with optional flush failure.
type memoryWriter struct {
	buffer   []models.Row
	written  []models.Row
	flushes  int
	flushErr error
}

func (w *memoryWriter) Add(row models.Row) { w.buffer = append(w.buffer, row) }
func (w *memoryWriter) Len() int           { return len(w.buffer) }
func (w *memoryWriter) Path() string       { return "memory" }

func (w *memoryWriter) Flush() (int, error) {
	w.flushes++
	n := 0
	if w.flushErr == nil {
		for _, row := range w.buffer {
			if row.Usable() {
				w.written = append(w.written, row)
				n++
			}
		}
	}
	w.buffer = w.buffer[:0]
	return n, w.flushErr
}

func tweetResponse(t *testing.T, body string) *models.SearchResponse {
	t.Helper()
	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return &resp
}

func testLocations() []models.Location {
	return []models.Location{
		{Geo: "19.0760,72.8777,0.5km", Name: "Mumbai_Central"},
		{Geo: "28.6139,77.2090,0.5km", Name: "Delhi_Central"},
	}
}

func newTestPipeline(fetcher Fetcher, writer Writer, cfg *config.CollectionConfig) *Pipeline {
	return New(fetcher, writer, ratelimit.None{}, cfg, logger.NewTestLogger())
}

func TestPipelineEndToEnd(t *testing.T) {
	// 2 locations x 3 keywords. First query succeeds directly, second
	// recovers via a fallback scheme, the rest come back empty.
	success := `{"tweets": [{"id": "1", "text": "hello", "likeCount": 4, "replyCount": 1, "author": {"name": "A", "userName": "a"}}]}`
	empty := `{"tweets": []}`

	fetcher := &scriptedFetcher{results: []scriptedResult{
		{tweetResponse(t, success), "Bearer Token"},
		{tweetResponse(t, success), "X-API-Key Header"},
		{tweetResponse(t, empty), "Bearer Token"},
		{tweetResponse(t, empty), "Bearer Token"},
		{tweetResponse(t, empty), "Bearer Token"},
		{tweetResponse(t, empty), "Bearer Token"},
	}}
	writer := &memoryWriter{}

	p := newTestPipeline(fetcher, writer, &config.CollectionConfig{BatchSize: 2})

	stats, err := p.Run(context.Background(), testLocations(), []string{"coffee", "park", "school"})
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalQueries)
	assert.Equal(t, 2, stats.TotalRowsWritten)
	assert.Empty(t, stats.ErrorsSample)
	assert.Equal(t, 4+4, stats.TotalLikes)
	assert.Equal(t, 1+1, stats.TotalReplies)
	require.Len(t, writer.written, 2)
	assert.Equal(t, "Bearer Token", writer.written[0].AuthMethod)
	assert.Equal(t, "X-API-Key Header", writer.written[1].AuthMethod)
}

func TestPipelineRecordsErrorSample(t *testing.T) {
	fetcher := &scriptedFetcher{results: []scriptedResult{
		{models.ErrorResponse("HTTP 500: Internal Server Error"), "Bearer Token"},
		{tweetResponse(t, `{"tweets": []}`), "Bearer Token"},
	}}
	writer := &memoryWriter{}

	p := newTestPipeline(fetcher, writer, &config.CollectionConfig{BatchSize: 200})

	stats, err := p.Run(context.Background(), testLocations()[:1], []string{"coffee", "park"})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalQueries)
	assert.Equal(t, 0, stats.TotalRowsWritten)
	require.Len(t, stats.ErrorsSample, 1)
	assert.Contains(t, stats.ErrorsSample[0], "HTTP 500")
	// Sentinel rows never reach the output.
	assert.Empty(t, writer.written)
}

func TestPipelineFlushFailurePropagates(t *testing.T) {
	success := `{"tweets": [{"id": "1", "text": "hello", "author": {"name": "A", "userName": "a"}}]}`
	fetcher := &scriptedFetcher{results: []scriptedResult{
		{tweetResponse(t, success), "Bearer Token"},
	}}
	writer := &memoryWriter{flushErr: errors.New("disk full")}

	p := newTestPipeline(fetcher, writer, &config.CollectionConfig{BatchSize: 1})

	stats, err := p.Run(context.Background(), testLocations()[:1], []string{"coffee"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// Stats are still valid on failure.
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.TotalQueries)
	assert.Empty(t, writer.buffer)
}

func TestPipelineHonorsCancellation(t *testing.T) {
	success := `{"tweets": [{"id": "1", "text": "hello", "author": {"name": "A", "userName": "a"}}]}`
	fetcher := &scriptedFetcher{results: []scriptedResult{
		{tweetResponse(t, success), "Bearer Token"},
	}}
	writer := &memoryWriter{}

	ctx, cancel := context.WithCancel(context.Background())

	p := newTestPipeline(fetcher, writer, &config.CollectionConfig{BatchSize: 200})

	// Cancel before the run starts: no queries execute, the buffer is
	// flushed and the context error is surfaced.
	cancel()
	stats, err := p.Run(ctx, testLocations(), []string{"coffee", "park", "school"})
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 0, stats.TotalQueries)
	assert.Equal(t, 1, writer.flushes)
}

func TestPipelineMaxQueriesStopsMidLocation(t *testing.T) {
	empty := `{"tweets": []}`
	fetcher := &scriptedFetcher{results: []scriptedResult{
		{tweetResponse(t, empty), "Bearer Token"},
		{tweetResponse(t, empty), "Bearer Token"},
		{tweetResponse(t, empty), "Bearer Token"},
		{tweetResponse(t, empty), "Bearer Token"},
	}}
	writer := &memoryWriter{}

	p := newTestPipeline(fetcher, writer, &config.CollectionConfig{BatchSize: 200, MaxQueries: 4})

	stats, err := p.Run(context.Background(), testLocations(), []string{"coffee", "park", "school"})
	require.NoError(t, err)

	// The cap lands mid-way through the second location's keywords.
	assert.Equal(t, 4, stats.TotalQueries)
	assert.Equal(t, 4, fetcher.calls)
}
