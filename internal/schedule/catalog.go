package schedule

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"study-dashboard/internal/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Profile describes the dashboard owner. It feeds the assistant prompts.
type Profile struct {
	Name       string `yaml:"name"`
	Age        int    `yaml:"age"`
	University string `yaml:"university"`
	Program    string `yaml:"program"`
	Role       string `yaml:"role"`
}

// Catalog holds the static reference data: subjects, the class timetable
// and the mentoring office hours.
type Catalog struct {
	Profile        Profile              `yaml:"profile"`
	Subjects       []string             `yaml:"subjects"`
	Sessions       []model.ClassSession `yaml:"sessions"`
	MentoringHours []model.ClassSession `yaml:"mentoring_hours"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, falling back to the compiled-in one when
// path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// HasSubject reports whether name is one of the catalog subjects.
// Matching is exact.
func (c *Catalog) HasSubject(name string) bool {
	for _, s := range c.Subjects {
		if s == name {
			return true
		}
	}
	return false
}

func (c *Catalog) validate() error {
	for _, list := range [][]model.ClassSession{c.Sessions, c.MentoringHours} {
		for _, s := range list {
			if s.DayOfWeek < time.Sunday || s.DayOfWeek > time.Saturday {
				return fmt.Errorf("session %q: day %d out of range", s.ID, s.DayOfWeek)
			}
			if !validClock(s.StartTime) || !validClock(s.EndTime) {
				return fmt.Errorf("session %q: times must be zero-padded HH:MM", s.ID)
			}
			if s.EndTime <= s.StartTime {
				return fmt.Errorf("session %q: ends before it starts", s.ID)
			}
		}
	}
	return nil
}

// validClock checks the fixed-width format the ordering relies on.
func validClock(v string) bool {
	if len(v) != 5 {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
