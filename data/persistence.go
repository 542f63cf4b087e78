/*
persistence.go - File-backed persistence for record collections

PURPOSE:
  Every persisted collection differs in exactly two facts: the file it
  lives in and the encoding it uses. The Record contract captures those
  two facts; Load and Save work generically over any type satisfying it.

STORAGE LOCATION:
  The data directory is process-wide, set once at startup via SetDataDir
  and read everywhere through DataDir. Re-assignment is rejected so no
  component can silently redirect writes mid-session. When never set,
  DataDir falls back to ./config.

ENCODINGS:
  JSON for the high-churn collections (badge entries, events), YAML for
  the hand-editable ones (holidays, vacations, quarter config).

SEE ALSO:
  - badge.go, event.go, holiday.go, vacation.go, config.go: the records
  - seed.go: initial data set written through SaveTo
*/
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Encoding selects the on-disk representation of a record.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingYAML
)

// Record is the persistence contract: where a collection lives and how it
// is encoded. Everything else is shared.
type Record interface {
	Filename() string
	Encoding() Encoding
}

// ErrDataDirSet is returned when SetDataDir is called a second time.
var ErrDataDirSet = errors.New("data directory already set")

var dataDir struct {
	mu   sync.Mutex
	path string
	set  bool
}

// SetDataDir fixes the process-wide data directory. It succeeds exactly
// once; later calls fail with ErrDataDirSet regardless of the path.
func SetDataDir(path string) error {
	dataDir.mu.Lock()
	defer dataDir.mu.Unlock()
	if dataDir.set {
		return ErrDataDirSet
	}
	dataDir.path = path
	dataDir.set = true
	return nil
}

// DataDir returns the configured data directory, or ./config when
// SetDataDir was never called.
func DataDir() string {
	dataDir.mu.Lock()
	defer dataDir.mu.Unlock()
	if !dataDir.set {
		return "config"
	}
	return dataDir.path
}

// Load reads a record collection from the process data directory.
func Load[T Record](dst *T) error {
	return LoadFrom(DataDir(), dst)
}

// Save writes a record collection to the process data directory.
func Save[T Record](src T) error {
	return SaveTo(DataDir(), src)
}

// LoadFrom reads a record collection from an explicit directory.
// A missing file is not an error: dst keeps its zero value.
func LoadFrom[T Record](dir string, dst *T) error {
	path := filepath.Join(dir, (*dst).Filename())
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch (*dst).Encoding() {
	case EncodingJSON:
		err = json.Unmarshal(b, dst)
	case EncodingYAML:
		err = yaml.Unmarshal(b, dst)
	default:
		err = fmt.Errorf("unknown encoding %d", (*dst).Encoding())
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// SaveTo writes a record collection to an explicit directory, creating
// the directory if needed.
func SaveTo[T Record](dir string, src T) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	var (
		b   []byte
		err error
	)
	switch src.Encoding() {
	case EncodingJSON:
		b, err = json.MarshalIndent(src, "", "  ")
	case EncodingYAML:
		b, err = yaml.Marshal(src)
	default:
		err = fmt.Errorf("unknown encoding %d", src.Encoding())
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", src.Filename(), err)
	}

	path := filepath.Join(dir, src.Filename())
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
