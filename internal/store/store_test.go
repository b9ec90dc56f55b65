package store

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/housefinder/internal/model"
)

func testBuilding(addr string) model.Building {
	return model.Building{
		Address:      addr,
		Lat:          52.52,
		Lon:          13.405,
		OSMID:        123456789,
		BuildingType: "residential",
		Levels:       "3",
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), "houses.txt", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	s.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestOpenWritesHeader(t *testing.T) {
	s := openTestStore(t)

	lines := readLines(t, s.Path())
	require.Len(t, lines, 2)
	assert.Equal(t, "Date | Country | City | Address | Latitude | Longitude | OSM_ID | Building_Type | Levels", lines[0])
	assert.Equal(t, strings.Repeat("=", 100), lines[1])
	assert.Equal(t, 0, s.Stats().Total)
}

func TestOpenTruncatesPriorRun(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "houses.txt", false)
	require.NoError(t, err)
	require.True(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Muster Str, 12")))
	require.NoError(t, s.Close())

	s2, err := Open(dir, "houses.txt", false)
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, 0, s2.Stats().Total)
	// The prior run's address is storable again after truncation.
	assert.True(t, s2.Add("🇩🇪 Germany", "Berlin", testBuilding("Muster Str, 12")))
}

func TestAddFormatsRecordLine(t *testing.T) {
	s := openTestStore(t)

	require.True(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Muster Str, 12, 10115, Berlin")))

	lines := readLines(t, s.Path())
	require.Len(t, lines, 3)
	assert.Equal(t,
		"2024-01-01 12:00:00 | 🇩🇪 Germany | Berlin | Muster Str, 12, 10115, Berlin | 52.520000 | 13.405000 | 123456789 | residential | 3",
		lines[2])
}

func TestAddRejectsDuplicates(t *testing.T) {
	s := openTestStore(t)

	assert.True(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 1")))
	assert.False(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 1")))
	// Same address from another element is still a duplicate.
	other := testBuilding("Main St, 1")
	other.OSMID = 42
	other.Lat = 1.0
	assert.False(t, s.Add("🇩🇪 Germany", "Berlin", other))

	assert.Equal(t, 1, s.Stats().Total)
	assert.Len(t, readLines(t, s.Path()), 3)
}

func TestAddRejectsEmptyAddress(t *testing.T) {
	s := openTestStore(t)
	assert.False(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("")))
	assert.Equal(t, 0, s.Stats().Total)
}

func TestAddSanitizesPipes(t *testing.T) {
	s := openTestStore(t)

	require.True(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Weird | Str, 5")))

	lines := readLines(t, s.Path())
	record := lines[2]
	fields := strings.Split(record, " | ")
	require.Len(t, fields, 9)
	assert.Equal(t, "Weird , Str, 5", fields[3])
	assert.NotContains(t, fields[3], "|")

	// Dedup still keys on the original, unsanitized address.
	assert.False(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Weird | Str, 5")))
}

func TestAddFlushFailureStillDeduplicates(t *testing.T) {
	s := openTestStore(t)

	s.flush = func() error { return errors.New("no space left on device") }
	assert.False(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 1")))

	// The line reached the file before the flush failed; retrying the same
	// address must not append it a second time.
	s.flush = s.file.Sync
	assert.False(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 1")))

	assert.Equal(t, 1, s.Stats().Total)
	assert.Len(t, readLines(t, s.Path()), 3)
}

func TestStatsCountConsistency(t *testing.T) {
	s := openTestStore(t)

	addresses := []string{"A St, 1", "B St, 2", "C St, 3"}
	for _, addr := range addresses {
		require.True(t, s.Add("🇫🇷 France", "Paris", testBuilding(addr)))
	}
	// Rejected attempts leave the count untouched.
	s.Add("🇫🇷 France", "Paris", testBuilding("A St, 1"))
	s.Add("🇫🇷 France", "Paris", testBuilding(""))

	assert.Equal(t, len(addresses), s.Stats().Total)
}

func TestStatsUnreadableFile(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, os.Remove(s.Path()))

	assert.Equal(t, 0, s.Stats().Total)
}

func TestAppendModeKeepsHistory(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "houses.txt", false)
	require.NoError(t, err)
	require.True(t, s.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 1")))
	require.NoError(t, s.Close())

	s2, err := Open(dir, "houses.txt", true)
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, 1, s2.Stats().Total)
	// Previously stored addresses stay deduplicated.
	assert.False(t, s2.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 1")))
	assert.True(t, s2.Add("🇩🇪 Germany", "Berlin", testBuilding("Main St, 2")))
	assert.Equal(t, 2, s2.Stats().Total)

	// Only one header pair in the file.
	lines := readLines(t, s2.Path())
	assert.Equal(t, 4, len(lines))
	assert.Equal(t, 1, strings.Count(strings.Join(lines, "\n"), "Date | Country"))
}

func TestAppendModeFreshFile(t *testing.T) {
	s, err := Open(t.TempDir(), "houses.txt", true)
	require.NoError(t, err)
	defer s.Close()

	lines := readLines(t, s.Path())
	require.Len(t, lines, 2)
	assert.Equal(t, 0, s.Stats().Total)
}
