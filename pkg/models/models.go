package models

import "strconv"

// Location is a geographic search target. Geo is the raw geocode string in
// "lat,lon,radius" form accepted by the search API.
type Location struct {
	Geo  string `yaml:"geo" json:"geo"`
	Name string `yaml:"name" json:"name"`
}

// QueryDescriptor is one (keyword, location) pairing expanded into a single
// search request. Descriptors are produced by the query iterator and consumed
// exactly once by the pipeline; they are never persisted.
type QueryDescriptor struct {
	Query        string
	LocationName string
	Geo          string
	Keyword      string
}

// Row is one normalized output record. The field set and order form the
// dataset contract: every file ever appended to must carry exactly these
// columns, in this order.
type Row struct {
	Query              string
	Date               string
	TweetBy            string
	TextContent        string
	ReplyCount         int
	LikeCount          int
	TweetURL           string
	ProfileUserName    string
	ProfileDescription string
	NoResults          bool
	Error              string
	AuthMethod         string
}

// Columns returns the canonical column headers in output order.
func Columns() []string {
	return []string{
		"Query", "Date", "Tweet by", "Text Content",
		"Reply Count", "Like Count", "Tweet URL",
		"Profile User Name", "Profile Description",
		"No Results", "Error", "Auth Method",
	}
}

// Record renders the row as CSV fields matching Columns().
func (r Row) Record() []string {
	return []string{
		r.Query,
		r.Date,
		r.TweetBy,
		r.TextContent,
		strconv.Itoa(r.ReplyCount),
		strconv.Itoa(r.LikeCount),
		r.TweetURL,
		r.ProfileUserName,
		r.ProfileDescription,
		strconv.FormatBool(r.NoResults),
		r.Error,
		r.AuthMethod,
	}
}

// Usable reports whether the row represents an actual tweet, as opposed to a
// no-result or error sentinel. Only usable rows reach the output file.
func (r Row) Usable() bool {
	return !r.NoResults && r.Error == ""
}

// RunStats aggregates the outcome of one collection run.
type RunStats struct {
	TotalQueries     int
	TotalRowsWritten int
	TotalLikes       int
	TotalReplies     int
	ErrorsSample     []string
}

// maxErrorSample bounds ErrorsSample; maxErrorLen truncates each entry.
const (
	maxErrorSample = 5
	maxErrorLen    = 120
)

// RecordError adds an error message to the bounded sample.
func (s *RunStats) RecordError(msg string) {
	if msg == "" || len(s.ErrorsSample) >= maxErrorSample {
		return
	}
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	s.ErrorsSample = append(s.ErrorsSample, msg)
}
