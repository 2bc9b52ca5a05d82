// Package query expands a (locations x keywords) grid into search queries.
package query

import (
	"fmt"

	"tweetgrid/pkg/models"
)

// Iterator walks the cross product of locations and keywords in a fixed
// order: outer loop over locations, inner loop over keywords. Caps of 0 mean
// unbounded. The sequence is lazy, finite and non-restartable; the same
// inputs always produce the same sequence.
type Iterator struct {
	locations []models.Location
	keywords  []string

	maxQueries int

	locIdx int
	kwIdx  int
	count  int
}

// Options bound the enumeration. Zero values leave the corresponding
// dimension uncapped.
type Options struct {
	MaxLocations int
	MaxKeywords  int
	MaxQueries   int
}

// New creates an iterator over the given grid. Location and keyword caps are
// applied up front by truncation; MaxQueries is enforced during iteration and
// stops the sequence the instant it is reached, even mid-location.
func New(locations []models.Location, keywords []string, opts Options) *Iterator {
	if opts.MaxLocations > 0 && opts.MaxLocations < len(locations) {
		locations = locations[:opts.MaxLocations]
	}
	if opts.MaxKeywords > 0 && opts.MaxKeywords < len(keywords) {
		keywords = keywords[:opts.MaxKeywords]
	}
	return &Iterator{
		locations:  locations,
		keywords:   keywords,
		maxQueries: opts.MaxQueries,
	}
}

// Next returns the next query descriptor, or ok=false when the sequence is
// exhausted.
func (it *Iterator) Next() (models.QueryDescriptor, bool) {
	if it.maxQueries > 0 && it.count >= it.maxQueries {
		return models.QueryDescriptor{}, false
	}
	if len(it.keywords) == 0 || it.locIdx >= len(it.locations) {
		return models.QueryDescriptor{}, false
	}

	loc := it.locations[it.locIdx]
	kw := it.keywords[it.kwIdx]

	it.kwIdx++
	if it.kwIdx >= len(it.keywords) {
		it.kwIdx = 0
		it.locIdx++
	}
	it.count++

	return models.QueryDescriptor{
		Query:        fmt.Sprintf("%s geocode:%s", kw, loc.Geo),
		LocationName: loc.Name,
		Geo:          loc.Geo,
		Keyword:      kw,
	}, true
}

// Total returns the number of descriptors the iterator will produce.
func (it *Iterator) Total() int {
	total := len(it.locations) * len(it.keywords)
	if it.maxQueries > 0 && it.maxQueries < total {
		return it.maxQueries
	}
	return total
}
