// Package output writes run artifacts: CSV reports for spreadsheet
// review, SQL files with suggested database changes, and human-readable
// text summaries. SQL files are never executed by surveyor; a human
// reviews and applies them.
package output

import (
	"os"
	"path/filepath"
	"time"

	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/logging"
)

// Report writes dated artifacts into one output directory.
type Report struct {
	dir  string
	date string
}

// NewReport creates a report writer for the given directory, creating
// it if needed. Filenames embed the given date, typically today.
func NewReport(dir string, date time.Time) (*Report, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.WrapIO("mkdir", dir, err)
	}
	return &Report{dir: dir, date: date.Format("2006-01-02")}, nil
}

// Date returns the date string embedded in artifact filenames.
func (r *Report) Date() string {
	return r.date
}

func (r *Report) path(name string) string {
	return filepath.Join(r.dir, name)
}

func (r *Report) write(name string, content []byte) (string, error) {
	path := r.path(name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	logging.Info().Str("path", path).Msg("Report written")
	return path, nil
}
