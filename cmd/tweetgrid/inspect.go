package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"tweetgrid/pkg/config"
	"tweetgrid/pkg/geo"
	"tweetgrid/pkg/models"
	"tweetgrid/pkg/ui"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarize a collected CSV dataset",
	Long: `Summarize a collected CSV dataset: row counts, engagement totals,
distinct queries and the geographic bounding box of the query points.

Defaults to the configured output file when no path is given.`,
	Example: `  # Inspect the default output file
  tweetgrid inspect

  # Inspect a specific file
  tweetgrid inspect ./data/tweets.csv`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := config.Load(configFile, nil)
		if err != nil {
			ui.PrintError("Failed to load configuration", err.Error())
			os.Exit(1)
		}
		path = cfg.Output.CSVPath
	}

	f, err := os.Open(path)
	if err != nil {
		ui.PrintError("Failed to open dataset", err.Error())
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		ui.PrintError("Failed to read dataset header", err.Error())
		os.Exit(1)
	}

	cols := columnIndex(header)
	queryIdx, ok := cols["Query"]
	if !ok {
		ui.PrintError("Dataset is missing the Query column", path)
		os.Exit(1)
	}
	likeIdx := cols["Like Count"]
	replyIdx := cols["Reply Count"]

	var (
		rows       int
		likes      int
		replies    int
		queries    = make(map[string]struct{})
		minLat     float64
		maxLat     float64
		minLon     float64
		maxLon     float64
		haveCoords bool
	)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			ui.PrintError("Failed to read dataset row", err.Error())
			os.Exit(1)
		}
		rows++

		query := field(record, queryIdx)
		queries[query] = struct{}{}

		if n, err := strconv.Atoi(field(record, likeIdx)); err == nil {
			likes += n
		}
		if n, err := strconv.Atoi(field(record, replyIdx)); err == nil {
			replies += n
		}

		if lat, lon, ok := geo.ParseGeocode(query); ok && geo.ValidCoordinates(lat, lon) {
			if !haveCoords {
				minLat, maxLat, minLon, maxLon = lat, lat, lon, lon
				haveCoords = true
				continue
			}
			if lat < minLat {
				minLat = lat
			}
			if lat > maxLat {
				maxLat = lat
			}
			if lon < minLon {
				minLon = lon
			}
			if lon > maxLon {
				maxLon = lon
			}
		}
	}

	ui.PrintHighlight("Dataset summary")
	ui.PrintInfo("File", path)
	ui.PrintInfo("Rows", strconv.Itoa(rows))
	ui.PrintInfo("Distinct queries", strconv.Itoa(len(queries)))
	ui.PrintInfo("Total likes", strconv.Itoa(likes))
	ui.PrintInfo("Total replies", strconv.Itoa(replies))
	if haveCoords {
		ui.PrintInfo("Latitude range", fmt.Sprintf("%.4f to %.4f", minLat, maxLat))
		ui.PrintInfo("Longitude range", fmt.Sprintf("%.4f to %.4f", minLon, maxLon))
		ui.PrintInfo("Diagonal span", fmt.Sprintf("%.1f km", geo.Distance(minLat, minLon, maxLat, maxLon)))
	}
}

// columnIndex maps header names to their positions. Unknown datasets still
// inspect as long as the canonical columns are present.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(models.Columns()))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
