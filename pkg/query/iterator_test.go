package query

import (
	"testing"

	"tweetgrid/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locations() []models.Location {
	return []models.Location{
		{Geo: "19.0760,72.8777,0.5km", Name: "Mumbai_Central"},
		{Geo: "28.6139,77.2090,0.5km", Name: "Delhi_Central"},
		{Geo: "12.9352,77.6245,0.5km", Name: "Bangalore_Central"},
	}
}

func drain(it *Iterator) []models.QueryDescriptor {
	var out []models.QueryDescriptor
	for {
		qd, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, qd)
	}
}

func TestIteratorFullGrid(t *testing.T) {
	it := New(locations(), []string{"coffee", "park"}, Options{})

	got := drain(it)
	require.Len(t, got, 6)
	assert.Equal(t, 6, it.Total())

	// Locations outer, keywords inner.
	assert.Equal(t, "coffee geocode:19.0760,72.8777,0.5km", got[0].Query)
	assert.Equal(t, "park geocode:19.0760,72.8777,0.5km", got[1].Query)
	assert.Equal(t, "coffee geocode:28.6139,77.2090,0.5km", got[2].Query)
	assert.Equal(t, "Mumbai_Central", got[0].LocationName)
	assert.Equal(t, "park", got[1].Keyword)
}

func TestIteratorDeterministic(t *testing.T) {
	a := drain(New(locations(), []string{"coffee", "park"}, Options{}))
	b := drain(New(locations(), []string{"coffee", "park"}, Options{}))
	assert.Equal(t, a, b)
}

func TestIteratorCaps(t *testing.T) {
	it := New(locations(), []string{"a", "b", "c"}, Options{MaxLocations: 2, MaxKeywords: 2})

	got := drain(it)
	require.Len(t, got, 4)
	assert.Equal(t, "Mumbai_Central", got[0].LocationName)
	assert.Equal(t, "Delhi_Central", got[3].LocationName)
}

func TestIteratorMaxQueriesStopsMidLocation(t *testing.T) {
	it := New(locations(), []string{"a", "b", "c"}, Options{MaxQueries: 4})
	assert.Equal(t, 4, it.Total())

	got := drain(it)
	require.Len(t, got, 4)
	// The cap lands after the first keyword of the second location.
	assert.Equal(t, "Delhi_Central", got[3].LocationName)
	assert.Equal(t, "a", got[3].Keyword)
}

func TestIteratorEmptyInputs(t *testing.T) {
	assert.Empty(t, drain(New(nil, []string{"a"}, Options{})))
	assert.Empty(t, drain(New(locations(), nil, Options{})))
	assert.Zero(t, New(locations(), nil, Options{}).Total())
}

func TestIteratorExhaustedStaysExhausted(t *testing.T) {
	it := New(locations()[:1], []string{"a"}, Options{})
	drain(it)

	_, ok := it.Next()
	assert.False(t, ok)
}
