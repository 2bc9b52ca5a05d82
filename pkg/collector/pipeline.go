package collector

import (
	"context"
	"fmt"

	"tweetgrid/pkg/config"
	"tweetgrid/pkg/logger"
	"tweetgrid/pkg/models"
	"tweetgrid/pkg/query"
	"tweetgrid/pkg/ratelimit"
)

// Pipeline drives one collection run: enumerate queries, fetch each one,
// flatten the response into rows and flush them in batches.
type Pipeline struct {
	fetcher Fetcher
	writer  Writer
	limiter ratelimit.Limiter
	logger  logger.Logger

	batchSize     int
	progressEvery int
	iterOpts      query.Options
}

// New wires a pipeline from its collaborators and the collection settings.
func New(fetcher Fetcher, writer Writer, limiter ratelimit.Limiter, cfg *config.CollectionConfig, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}
	if limiter == nil {
		limiter = ratelimit.None{}
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 200
	}
	progressEvery := cfg.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = 250
	}

	return &Pipeline{
		fetcher:       fetcher,
		writer:        writer,
		limiter:       limiter,
		logger:        log,
		batchSize:     batchSize,
		progressEvery: progressEvery,
		iterOpts: query.Options{
			MaxLocations: cfg.MaxLocations,
			MaxKeywords:  cfg.MaxKeywords,
			MaxQueries:   cfg.MaxQueries,
		},
	}
}

// Run executes the full collection over the locations x keywords grid.
// Individual query failures are recorded and never abort the run; a failed
// batch flush does, since continuing would silently drop data. Cancellation
// is honored between queries and still flushes what was collected. The
// returned stats are valid in every case, including on error.
func (p *Pipeline) Run(ctx context.Context, locations []models.Location, keywords []string) (stats *models.RunStats, err error) {
	stats = &models.RunStats{}

	it := query.New(locations, keywords, p.iterOpts)
	p.logger.InfoWithFields("starting collection run", map[string]interface{}{
		"locations":     len(locations),
		"keywords":      len(keywords),
		"total_queries": it.Total(),
		"batch_size":    p.batchSize,
	})

	// A panic mid-run (an allocation failure, a bug in a collaborator) still
	// gets a best-effort flush of the buffered rows before propagating.
	defer func() {
		if r := recover(); r != nil {
			if n, flushErr := p.writer.Flush(); flushErr == nil {
				stats.TotalRowsWritten += n
			}
			panic(r)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			n, flushErr := p.writer.Flush()
			stats.TotalRowsWritten += n
			p.logger.WarnWithFields("collection interrupted", map[string]interface{}{
				"queries":      stats.TotalQueries,
				"rows_written": stats.TotalRowsWritten,
			})
			if flushErr != nil {
				return stats, fmt.Errorf("final flush failed: %w", flushErr)
			}
			return stats, ctx.Err()
		default:
		}

		qd, ok := it.Next()
		if !ok {
			break
		}

		p.limiter.Wait()

		resp, authMethod := p.fetcher.Search(qd.Query)
		rows := Flatten(resp, authMethod, qd)
		stats.TotalQueries++

		var errMsg string
		for _, row := range rows {
			if row.Error != "" {
				errMsg = row.Error
				stats.RecordError(fmt.Sprintf("%s: %s", qd.Query, row.Error))
			}
			if row.Usable() {
				stats.TotalLikes += row.LikeCount
				stats.TotalReplies += row.ReplyCount
			}
			p.writer.Add(row)
		}
		logger.LogQueryResult(qd.Query, authMethod, len(rows), errMsg)

		if p.writer.Len() >= p.batchSize {
			n, flushErr := p.writer.Flush()
			stats.TotalRowsWritten += n
			if flushErr != nil {
				return stats, fmt.Errorf("batch flush failed: %w", flushErr)
			}
			logger.LogFlush(p.writer.Path(), n, stats.TotalRowsWritten)
		}

		if stats.TotalQueries%p.progressEvery == 0 {
			logger.LogProgress(stats.TotalQueries, stats.TotalRowsWritten)
		}
	}

	n, flushErr := p.writer.Flush()
	stats.TotalRowsWritten += n
	if flushErr != nil {
		return stats, fmt.Errorf("final flush failed: %w", flushErr)
	}

	p.logger.InfoWithFields("collection run complete", map[string]interface{}{
		"queries":       stats.TotalQueries,
		"rows_written":  stats.TotalRowsWritten,
		"total_likes":   stats.TotalLikes,
		"total_replies": stats.TotalReplies,
		"errors_sample": len(stats.ErrorsSample),
	})

	return stats, nil
}
