package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tracking lists the project and section labels reported by the analytics
// summary. The set is fixed configuration; labels seen in events but not
// listed here are counted yet never reported.
type Tracking struct {
	Projects []string `yaml:"projects"`
	Sections []string `yaml:"sections"`
}

// DefaultTracking matches the projects and page sections of the site.
func DefaultTracking() Tracking {
	return Tracking{
		Projects: []string{"ecovest", "password-manager"},
		Sections: []string{
			"hero", "about", "journey", "experience",
			"education", "projects", "certifications", "contact",
		},
	}
}

// LoadTracking reads a YAML tracking file. An empty path returns the
// defaults; a list omitted from the file keeps its default.
//
//	projects: [ecovest, password-manager]
//	sections: [hero, projects]
func LoadTracking(path string) (Tracking, error) {
	t := DefaultTracking()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tracking{}, fmt.Errorf("config: read tracking file: %w", err)
	}
	var fromFile Tracking
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return Tracking{}, fmt.Errorf("config: parse tracking file: %w", err)
	}
	if fromFile.Projects != nil {
		t.Projects = cleanLabels(fromFile.Projects)
	}
	if fromFile.Sections != nil {
		t.Sections = cleanLabels(fromFile.Sections)
	}
	return t, nil
}

// cleanLabels trims labels and drops blanks and duplicates, keeping order.
func cleanLabels(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
