package config

import (
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/dgallion1/bluebook/internal/fetch"
	"gopkg.in/yaml.v3"
)

// Source is one published Bluebook edition.
type Source struct {
	// File is the library file name; derived from URL when empty.
	File string `yaml:"file"`
	URL  string `yaml:"url"`
}

// SourcesFile is the YAML catalog of published editions:
//
//	sources:
//	  - url: https://www.dot.ri.gov/business/bluebook/docs/Blue_Book_02_2024.pdf
//	  - file: 2023_08.pdf
//	    url: https://www.dot.ri.gov/business/bluebook/docs/Blue_Book_08_2023.pdf
type SourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads a sources catalog. An empty path yields an empty
// catalog.
func LoadSources(p string) ([]Source, error) {
	if p == "" {
		return []Source{}, nil
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var sf SourcesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", p, err)
	}

	sources := make([]Source, 0, len(sf.Sources))
	for i, s := range sf.Sources {
		if s.URL == "" {
			return nil, fmt.Errorf("sources file %s: entry %d has no url", p, i)
		}
		if s.File == "" {
			u, err := url.Parse(s.URL)
			if err != nil {
				return nil, fmt.Errorf("sources file %s: entry %d: %w", p, i, err)
			}
			year, month, err := fetch.YearMonth(path.Base(u.Path))
			if err != nil {
				return nil, fmt.Errorf("sources file %s: entry %d: %w", p, i, err)
			}
			s.File = fetch.CanonicalName(year, month)
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// SourceURLs maps library file names to their published URLs.
func SourceURLs(sources []Source) map[string]string {
	m := make(map[string]string, len(sources))
	for _, s := range sources {
		m[s.File] = s.URL
	}
	return m
}
