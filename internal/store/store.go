// Package store persists accepted building records to a human-readable,
// pipe-delimited log and enforces address uniqueness. The log's byte format
// is a contract: two header lines, then one record per line with nine
// " | "-separated columns.
package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geoforge/housefinder/internal/model"
)

const (
	header    = "Date | Country | City | Address | Latitude | Longitude | OSM_ID | Building_Type | Levels"
	separator = "===================================================================================================="

	timeLayout = "2006-01-02 15:04:05"

	// Columns in one record line; consumers split on " | ".
	fieldCount   = 9
	addressField = 3
)

// Store appends building records to the log file and tracks which addresses
// have already been written. It is not safe for concurrent use; the
// application is single-threaded by design.
type Store struct {
	path  string
	file  *os.File
	seen  map[string]struct{}
	now   func() time.Time
	flush func() error
}

// Totals reports cumulative record counts.
type Totals struct {
	Total int `json:"total"`
}

// Open prepares the log at dir/name, creating dir if needed.
//
// With appendMode false the log is TRUNCATED: every run starts fresh and
// all records from previous runs are discarded. With appendMode true prior
// contents are kept and their addresses are reloaded into the
// deduplication set.
func Open(dir, name string, appendMode bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "store: create directory %s", dir)
	}
	path := filepath.Join(dir, name)

	s := &Store{
		path: path,
		seen: make(map[string]struct{}),
		now:  time.Now,
	}

	needHeader := true
	if appendMode {
		if err := s.reload(); err != nil {
			return nil, err
		}
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			needHeader = false
		}
	}

	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, eris.Wrapf(err, "store: open %s", path)
	}
	s.file = f
	s.flush = f.Sync

	if needHeader {
		if _, err := fmt.Fprintf(f, "%s\n%s\n", header, separator); err != nil {
			f.Close()
			return nil, eris.Wrap(err, "store: write header")
		}
		zap.L().Info("log file reset", zap.String("path", path))
	} else {
		zap.L().Info("log file opened for append",
			zap.String("path", path),
			zap.Int("known_addresses", len(s.seen)),
		)
	}

	return s, nil
}

// reload seeds the seen set from an existing log so append mode keeps
// deduplicating across runs. Addresses recovered this way are the sanitized
// form that was written out.
func (s *Store) reload() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "store: read existing log %s", s.path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line <= 2 {
			continue
		}
		fields := strings.Split(scanner.Text(), " | ")
		if len(fields) != fieldCount {
			continue
		}
		s.seen[fields[addressField]] = struct{}{}
	}
	return eris.Wrap(scanner.Err(), "store: scan existing log")
}

// Add writes one record line for b unless its address is empty or already
// stored. It returns true only when a line was appended. Write failures are
// logged and reported as false; callers cannot distinguish "duplicate" from
// "write failed", and are not meant to.
func (s *Store) Add(country, city string, b model.Building) bool {
	if b.Address == "" {
		return false
	}
	if _, dup := s.seen[b.Address]; dup {
		zap.L().Debug("duplicate address rejected", zap.String("address", b.Address))
		return false
	}

	// Pipes inside the address would corrupt the column layout.
	cleanAddress := strings.ReplaceAll(b.Address, "|", ",")

	line := fmt.Sprintf("%s | %s | %s | %s | %.6f | %.6f | %d | %s | %s\n",
		s.now().Format(timeLayout), country, city, cleanAddress,
		b.Lat, b.Lon, b.OSMID, b.BuildingType, b.Levels)

	if _, err := s.file.WriteString(line); err != nil {
		zap.L().Error("failed to append record", zap.String("address", b.Address), zap.Error(err))
		return false
	}

	// The line may already be durable even if the flush below fails, so
	// the address must count as seen from here on or a retry could append
	// a duplicate.
	s.seen[b.Address] = struct{}{}

	if err := s.flush(); err != nil {
		zap.L().Error("failed to flush log", zap.Error(err))
		return false
	}

	zap.L().Info("record stored", zap.String("address", cleanAddress), zap.String("city", city))
	return true
}

// Stats recounts the log file on every call so the total always matches
// what is actually on disk. An unreadable file counts as zero.
func (s *Store) Stats() Totals {
	return ReadTotals(s.path)
}

// ReadTotals counts the records in the log at path without opening it for
// writing, so reporting commands can inspect a log they do not own. An
// unreadable file counts as zero.
func ReadTotals(path string) Totals {
	f, err := os.Open(path)
	if err != nil {
		return Totals{}
	}
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
	}
	if scanner.Err() != nil {
		return Totals{}
	}

	total := lines - 2 // header and separator
	if total < 0 {
		total = 0
	}
	return Totals{Total: total}
}

// Path returns the log file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the log file handle. The log itself stays on disk.
func (s *Store) Close() error {
	return eris.Wrap(s.file.Close(), "store: close")
}
