package lists

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	l := Defaults()

	require.Len(t, l.Locations, 6)
	assert.Equal(t, "Mumbai_Central", l.Locations[0].Name)
	assert.Equal(t, "19.0760,72.8777,0.5km", l.Locations[0].Geo)

	require.NotEmpty(t, l.Keywords)
	// Category order is fixed: residential first, sentiment last.
	assert.Equal(t, "House", l.Keywords[0])
	assert.Equal(t, "Tired", l.Keywords[len(l.Keywords)-1])
}

func TestDefaultKeywordsStable(t *testing.T) {
	assert.Equal(t, DefaultKeywords(), DefaultKeywords())
}

func TestLoadFullFile(t *testing.T) {
	content := `
locations:
  - geo: "1.0000,2.0000,1km"
    name: Test_Point
keywords:
  - alpha
  - beta
`
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	l, err := Load(path)
	require.NoError(t, err)

	require.Len(t, l.Locations, 1)
	assert.Equal(t, "Test_Point", l.Locations[0].Name)
	assert.Equal(t, []string{"alpha", "beta"}, l.Keywords)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	content := `
keywords:
  - only
`
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	l, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"only"}, l.Keywords)
	assert.Equal(t, Defaults().Locations, l.Locations)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locations: [not: {valid"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
