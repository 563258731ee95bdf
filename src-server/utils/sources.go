package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Scrape source names, in the order a cycle runs them.
const (
	SourceAcademic      = "academic"
	SourceInvolvement   = "involvement"
	SourceAthletics     = "athletics"
	SourceCampus        = "campus"
	SourceOrganizations = "organizations"
)

var SourceOrder = []string{SourceAcademic, SourceInvolvement, SourceAthletics, SourceCampus, SourceOrganizations}

const DefaultSchedule = "0 3 * * *"

type SourceConfig struct {
	URL     string `yaml:"url"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// SourcesConfig is the SOURCES_FILE document:
//
//	schedule: "0 3 * * *"
//	sources:
//	  athletics:
//	    enabled: false
type SourcesConfig struct {
	Schedule string                  `yaml:"schedule"`
	Sources  map[string]SourceConfig `yaml:"sources"`
}

func DefaultSourcesConfig() *SourcesConfig {
	c := &SourcesConfig{}
	c.Normalize()
	return c
}

// Normalize fills missing fields with the built-in defaults and drops
// unknown source names.
func (c *SourcesConfig) Normalize() {
	if c.Schedule == "" {
		c.Schedule = DefaultSchedule
	}
	defaults := map[string]string{
		SourceAcademic:      "https://catalog.unlv.edu/content.php?catoid=47&navoid=14311",
		SourceInvolvement:   "https://involvementcenter.unlv.edu/api/discovery/event/search",
		SourceAthletics:     "https://unlvrebels.com/coverage",
		SourceCampus:        "https://www.unlv.edu/calendar",
		SourceOrganizations: "https://involvementcenter.unlv.edu/organizations",
	}
	normalized := make(map[string]SourceConfig, len(defaults))
	for name, url := range defaults {
		src := c.Sources[name]
		if src.URL == "" {
			src.URL = url
		}
		normalized[name] = src
	}
	c.Sources = normalized
}

// LoadSources reads the YAML file at path. An empty path or a missing file
// gives the defaults.
func LoadSources(path string) (*SourcesConfig, error) {
	if path == "" {
		return DefaultSourcesConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSourcesConfig(), nil
		}
		return nil, fmt.Errorf("LoadSources: %w", err)
	}

	var c SourcesConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("LoadSources: %w", err)
	}
	c.Normalize()
	return &c, nil
}
