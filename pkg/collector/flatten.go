// Package collector turns search responses into output rows and drives the
// end-to-end collection run.
package collector

import (
	"fmt"

	"tweetgrid/pkg/models"
	"tweetgrid/pkg/text"
)

// Flatten converts one search response into output rows for the query that
// produced it. An error response yields a single sentinel row carrying the
// message; an empty result yields a single no-results sentinel. Every row is
// tagged with the credential scheme that fetched it.
func Flatten(resp *models.SearchResponse, authMethod string, qd models.QueryDescriptor) []models.Row {
	if resp == nil {
		return []models.Row{sentinelRow(qd, authMethod, "empty response")}
	}
	if resp.Error != nil && resp.Error.Message != "" {
		return []models.Row{sentinelRow(qd, authMethod, resp.Error.Message)}
	}

	items := resp.Items()
	if len(items) == 0 {
		return []models.Row{sentinelRow(qd, authMethod, "")}
	}

	rows := make([]models.Row, 0, len(items))
	for _, tweet := range items {
		rows = append(rows, flattenTweet(tweet, authMethod, qd))
	}
	return rows
}

// sentinelRow builds the placeholder row recorded when a query returns no
// usable tweets. An empty errMsg marks a clean empty result.
func sentinelRow(qd models.QueryDescriptor, authMethod, errMsg string) models.Row {
	return models.Row{
		Query:      qd.Query,
		NoResults:  true,
		Error:      errMsg,
		AuthMethod: authMethod,
	}
}

// flattenTweet maps one tweet onto the output row, applying the ordered
// fallbacks between the current and legacy response shapes.
func flattenTweet(t models.Tweet, authMethod string, qd models.QueryDescriptor) models.Row {
	row := models.Row{
		Query:      qd.Query,
		Date:       t.CreatedAt,
		AuthMethod: authMethod,
	}
	if row.Date == "" {
		row.Date = t.CreatedAtLegacy
	}

	var handle string
	switch {
	case t.Author != nil:
		row.TweetBy = t.Author.Name
		row.ProfileDescription = t.Author.Description
		handle = t.Author.UserName
	case t.User != nil:
		row.TweetBy = t.User.Name
		row.ProfileDescription = t.User.Description
		handle = t.User.ScreenName
	}
	row.ProfileUserName = handle

	row.TextContent = text.Clean(t.Text)

	if t.ReplyCount != nil {
		row.ReplyCount = t.ReplyCount.Int()
	} else {
		row.ReplyCount = t.PublicMetrics.ReplyCount.Int()
	}
	if t.LikeCount != nil {
		row.LikeCount = t.LikeCount.Int()
	} else {
		row.LikeCount = t.PublicMetrics.LikeCount.Int()
	}

	row.TweetURL = t.URL
	if row.TweetURL == "" && handle != "" && t.ID != "" {
		row.TweetURL = fmt.Sprintf("https://twitter.com/%s/status/%s", handle, t.ID)
	}

	return row
}
