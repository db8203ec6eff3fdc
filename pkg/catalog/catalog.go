// Package catalog describes the seed activities as a TOML document of
// [[activity]] tables.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/joeydtaylor/steeze-activities/pkg/activity"
)

//go:embed default.toml
var defaultCatalog []byte

// Config is the top-level catalog document.
type Config struct {
	Activities []Entry `toml:"activity"`
}

// Entry describes one seed activity.
type Entry struct {
	Name            string   `toml:"name"`
	Description     string   `toml:"description"`
	Schedule        string   `toml:"schedule"`
	MaxParticipants int      `toml:"max_participants"`
	Participants    []string `toml:"participants"`
}

// Load reads and validates the catalog at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Default returns the embedded catalog.
func Default() (Config, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a TOML catalog, rejecting unknown keys, and validates it.
func Parse(b []byte) (Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("catalog decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes every entry and checks the roster invariants.
func (c *Config) Validate() error {
	if len(c.Activities) == 0 {
		return errors.New("catalog: at least one activity is required")
	}
	seen := make(map[string]struct{}, len(c.Activities))
	for i := range c.Activities {
		e := &c.Activities[i]
		e.normalize()
		if err := e.validate(); err != nil {
			return fmt.Errorf("activity %d (%q): %w", i, e.Name, err)
		}
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("activity %d (%q): duplicate name", i, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// Seed converts the catalog into registry seed activities.
func (c Config) Seed() []activity.Activity {
	out := make([]activity.Activity, 0, len(c.Activities))
	for _, e := range c.Activities {
		out = append(out, activity.Activity{
			Name:            e.Name,
			Description:     e.Description,
			Schedule:        e.Schedule,
			MaxParticipants: e.MaxParticipants,
			Participants:    append([]string(nil), e.Participants...),
		})
	}
	return out
}

func (e *Entry) normalize() {
	e.Name = strings.TrimSpace(e.Name)
	for i, p := range e.Participants {
		e.Participants[i] = strings.TrimSpace(p)
	}
}

func (e *Entry) validate() error {
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.MaxParticipants < 0 {
		return errors.New("max_participants must be >= 0")
	}
	seen := make(map[string]struct{}, len(e.Participants))
	for _, p := range e.Participants {
		if p == "" {
			return errors.New("participants must not contain blank emails")
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("participant %q listed more than once", p)
		}
		seen[p] = struct{}{}
	}
	return nil
}
