package regions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.NotEmpty(t, c.CountryKeys())

	for _, ck := range c.CountryKeys() {
		country, ok := c.Country(ck)
		require.True(t, ok)
		assert.NotEmpty(t, country.Name)
		for yk, city := range country.Cities {
			assert.NotEmpty(t, city.Name, "%s/%s", ck, yk)
			assert.NoError(t, city.Box.Validate(), "%s/%s", ck, yk)
		}
	}
}

func TestResolve(t *testing.T) {
	c := Default()

	country, city, err := c.Resolve("germany", "berlin")
	require.NoError(t, err)
	assert.Equal(t, "🇩🇪 Germany", country.Name)
	assert.Equal(t, "Berlin", city.Name)
	assert.InDelta(t, 52.35, city.Box.South, 1e-9)

	// Keys are case-insensitive.
	_, _, err = c.Resolve("Germany", "BERLIN")
	require.NoError(t, err)

	_, _, err = c.Resolve("atlantis", "berlin")
	assert.Error(t, err)

	_, _, err = c.Resolve("germany", "gotham")
	assert.Error(t, err)
}

func TestCityKeysSorted(t *testing.T) {
	c := Default()
	keys := c.CityKeys("germany")
	assert.Equal(t, []string{"berlin", "frankfurt", "munich"}, keys)
	assert.Nil(t, c.CityKeys("atlantis"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.yaml")

	good := `
norway:
  name: "🇳🇴 Norway"
  cities:
    oslo:
      name: Oslo
      box: {south: 59.85, north: 59.98, west: 10.60, east: 10.90}
`
	require.NoError(t, os.WriteFile(path, []byte(good), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	_, city, err := c.Resolve("norway", "oslo")
	require.NoError(t, err)
	assert.Equal(t, "Oslo", city.Name)
}

func TestLoadFileRejectsBadBox(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regions.yaml")

	bad := `
norway:
  name: Norway
  cities:
    oslo:
      name: Oslo
      box: {south: 59.98, north: 59.85, west: 10.60, east: 10.90}
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
