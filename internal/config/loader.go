package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rgehrsitz/iltax/internal/domain"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed data/rates_*.yaml
var embeddedRates embed.FS

const (
	embeddedDir    = "data"
	rateFilePrefix = "rates_"
	rateFileSuffix = ".yaml"
)

// RateFileName returns the file name holding the bundle for year
func RateFileName(year int) string {
	return fmt.Sprintf("%s%d%s", rateFilePrefix, year, rateFileSuffix)
}

// RateDataLoader loads, validates and caches one rate bundle per tax year.
// Files in Dir take precedence over the bundles compiled into the binary.
// Cached bundles are shared between callers and must not be modified.
type RateDataLoader struct {
	Dir string

	mu    sync.Mutex
	cache map[int]*domain.RateDataBundle
}

// NewRateDataLoader creates a loader backed by the embedded bundles only
func NewRateDataLoader() *RateDataLoader {
	return NewRateDataLoaderWithDir("")
}

// NewRateDataLoaderWithDir creates a loader that checks dir before the embedded bundles
func NewRateDataLoaderWithDir(dir string) *RateDataLoader {
	return &RateDataLoader{Dir: dir, cache: make(map[int]*domain.RateDataBundle)}
}

// Load returns the validated bundle for year. The first successful load is cached and
// every later call returns the same pointer. Failures are not cached.
func (l *RateDataLoader) Load(year int) (*domain.RateDataBundle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if bundle, ok := l.cache[year]; ok {
		return bundle, nil
	}

	raw, source, err := l.read(year)
	if err != nil {
		return nil, err
	}

	bundle, err := ParseRateData(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	if bundle.Year != year {
		return nil, fmt.Errorf("failed to load %s: %w", source,
			&domain.ValidationError{Dataset: "bundle", Year: bundle.Year, Field: "year", Reason: fmt.Sprintf("file is named for %d", year)})
	}

	if l.cache == nil {
		l.cache = make(map[int]*domain.RateDataBundle)
	}
	l.cache[year] = bundle
	return bundle, nil
}

// read finds the raw YAML for year, returning the path it came from
func (l *RateDataLoader) read(year int) ([]byte, string, error) {
	name := RateFileName(year)

	if l.Dir != "" {
		path := filepath.Join(l.Dir, name)
		raw, err := os.ReadFile(path)
		if err == nil {
			return raw, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, fmt.Errorf("failed to read file %s: %w", path, err)
		}
	}

	raw, err := embeddedRates.ReadFile(embeddedDir + "/" + name)
	if err != nil {
		return nil, name, fmt.Errorf("no data for year %d: %w", year, domain.ErrNoRateData)
	}
	return raw, "embedded " + name, nil
}

// AvailableYears lists every year with a bundle in Dir or the embedded set, ascending
func (l *RateDataLoader) AvailableYears() []int {
	years := yearsIn(embeddedRates, embeddedDir)
	if l.Dir != "" {
		years = append(years, yearsIn(os.DirFS(l.Dir), ".")...)
	}
	years = lo.Uniq(years)
	slices.Sort(years)
	return years
}

func yearsIn(fsys fs.FS, dir string) []int {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	return lo.FilterMap(entries, func(e fs.DirEntry, _ int) (int, bool) {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, rateFilePrefix) || !strings.HasSuffix(name, rateFileSuffix) {
			return 0, false
		}
		year, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, rateFilePrefix), rateFileSuffix))
		return year, err == nil
	})
}

// ParseRateData decodes and validates a bundle. Unknown keys are rejected so that a
// misspelled table cannot silently decode as zero.
func ParseRateData(raw []byte) (*domain.RateDataBundle, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var bundle domain.RateDataBundle
	if err := dec.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}
