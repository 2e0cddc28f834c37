package report

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/varunisrani/marketscope/internal/model"
)

var (
	// ErrInvalidFilename is returned for names that could leave the report directories
	ErrInvalidFilename = eris.New("invalid filename")
	// ErrNotFound is returned when no report with the name exists
	ErrNotFound = eris.New("report not found")
)

const reportSuffix = "_report.md"

// Store lists and reads persisted reports from the working directory and the reports directory
type Store struct {
	dirs []string
}

// NewStore searches the given directories in order
func NewStore(dirs ...string) *Store {
	if len(dirs) == 0 {
		dirs = []string{".", DefaultDir}
	}
	return &Store{dirs: dirs}
}

// List returns every *_report.md, newest first
func (s *Store) List() ([]model.ReportListing, error) {
	seen := make(map[string]bool)
	var out []model.ReportListing

	for _, dir := range s.dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", dir)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, reportSuffix) || seen[name] {
				continue
			}
			listing, ok := ParseFilename(name)
			if !ok {
				continue
			}
			seen[name] = true
			out = append(out, listing)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// ParseFilename splits <slug>_<type>_<YYYYMMDD>_<HHMMSS>_report.md by
// locating a known report type name.
func ParseFilename(name string) (model.ReportListing, bool) {
	stem := strings.TrimSuffix(name, reportSuffix)
	if stem == name || len(stem) < len(TimestampLayout)+2 {
		return model.ReportListing{}, false
	}

	ts := stem[len(stem)-len(TimestampLayout):]
	if !validTimestamp(ts) || stem[len(stem)-len(TimestampLayout)-1] != '_' {
		return model.ReportListing{}, false
	}
	head := stem[:len(stem)-len(TimestampLayout)-1]

	candidates := append(append([]model.ReportType(nil), model.ReportTypes...), model.CompetitorTracking)
	for _, rt := range candidates {
		suffix := "_" + string(rt)
		if strings.HasSuffix(head, suffix) && len(head) > len(suffix) {
			return model.ReportListing{
				CompanyName: strings.TrimSuffix(head, suffix),
				ReportType:  string(rt),
				Timestamp:   ts,
				Filename:    name,
			}, true
		}
	}
	return model.ReportListing{}, false
}

func validTimestamp(ts string) bool {
	for i, r := range ts {
		if i == 8 {
			if r != '_' {
				return false
			}
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Read returns a report's content. Names containing ".." or a path
// separator are rejected before any file is touched.
func (s *Store) Read(name string) (string, error) {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidFilename
	}

	for _, dir := range s.dirs {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", eris.Wrapf(err, "read %s", name)
		}
	}
	return "", ErrNotFound
}
