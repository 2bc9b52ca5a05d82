package ui

import (
	"fmt"
	"strconv"

	"tweetgrid/pkg/models"
)

// PrintRunBanner prints the collection run header.
func PrintRunBanner(locations, keywords, totalQueries int, output string) {
	if quiet {
		return
	}
	PrintHighlight("Starting tweet collection")
	PrintInfo("Locations", strconv.Itoa(locations))
	PrintInfo("Keywords", strconv.Itoa(keywords))
	PrintInfo("Total queries", strconv.Itoa(totalQueries))
	PrintInfo("Output", output)
	fmt.Println()
}

// PrintRunSummary prints the final run statistics.
func PrintRunSummary(stats *models.RunStats) {
	if quiet || stats == nil {
		return
	}
	fmt.Println()
	PrintHighlight("Collection complete")
	PrintInfo("Queries run", strconv.Itoa(stats.TotalQueries))
	PrintInfo("Rows written", strconv.Itoa(stats.TotalRowsWritten))
	PrintInfo("Total likes", strconv.Itoa(stats.TotalLikes))
	PrintInfo("Total replies", strconv.Itoa(stats.TotalReplies))

	if len(stats.ErrorsSample) > 0 {
		fmt.Println()
		PrintWarning(fmt.Sprintf("Errors (showing up to %d)", len(stats.ErrorsSample)))
		for _, msg := range stats.ErrorsSample {
			fmt.Println(Dim("  " + msg))
		}
	}
}
