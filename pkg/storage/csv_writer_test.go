package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"tweetgrid/pkg/logger"
	"tweetgrid/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataRow(text string) models.Row {
	return models.Row{
		Query:           "coffee geocode:19.0760,72.8777,0.5km",
		Date:            "2024-05-01T10:00:00Z",
		TweetBy:         "Alice",
		TextContent:     text,
		ReplyCount:      1,
		LikeCount:       2,
		TweetURL:        "https://twitter.com/alice/status/1",
		ProfileUserName: "alice",
		AuthMethod:      "Bearer Token",
	}
}

func sentinel(errMsg string) models.Row {
	return models.Row{
		Query:      "coffee geocode:19.0760,72.8777,0.5km",
		NoResults:  true,
		Error:      errMsg,
		AuthMethod: "Bearer Token",
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterCreatesDirectoryAndHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "tweets.csv")

	w, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)

	w.Add(dataRow("first"))
	n, err := w.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, models.Columns(), records[0])
	assert.Equal(t, "first", records[1][3])
}

func TestCSVWriterHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.csv")

	w, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)
	w.Add(dataRow("first"))
	_, err = w.Flush()
	require.NoError(t, err)

	// A second writer against the same non-empty file must only append.
	w2, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)
	w2.Add(dataRow("second"))
	_, err = w2.Flush()
	require.NoError(t, err)

	records := readAll(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, models.Columns(), records[0])
	assert.Equal(t, "first", records[1][3])
	assert.Equal(t, "second", records[2][3])
}

func TestCSVWriterDropsSentinelRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.csv")

	w, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)

	w.Add(sentinel(""))
	w.Add(dataRow("kept"))
	w.Add(sentinel("HTTP 500"))

	n, err := w.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "kept", records[1][3])
}

func TestCSVWriterEmptyFlushIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.csv")

	w, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)

	n, err := w.Flush()
	require.NoError(t, err)
	assert.Zero(t, n)

	// Not even the header is written for an empty flush.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCSVWriterSentinelOnlyFlushWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.csv")

	w, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)

	w.Add(sentinel(""))
	n, err := w.Flush()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, w.Len())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCSVWriterBufferClearedOnFailure(t *testing.T) {
	dir := t.TempDir()
	// The destination path is a directory, so the open fails.
	path := filepath.Join(dir, "blocked")
	require.NoError(t, os.Mkdir(path, 0755))

	w, err := NewCSVWriter(path, logger.NewTestLogger())
	require.NoError(t, err)

	w.Add(dataRow("lost"))
	_, err = w.Flush()
	require.Error(t, err)
	assert.Zero(t, w.Len())
}
