// internal/config/config.go

// Package config loads tournament definitions from YAML: the team roster
// with its decision providers, the tournament parameters, and the rating
// profile and store. Everything is validated up front so a bad definition
// fails before any match runs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes "5s"-style YAML values via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Root is the top-level YAML document.
type Root struct {
	Teams       []TeamSpec            `yaml:"teams"`
	Tournaments map[string]Tournament `yaml:"tournaments"`
}

// TeamSpec declares one team and the provider that plays for it.
type TeamSpec struct {
	Name     string       `yaml:"name"`
	Provider ProviderSpec `yaml:"provider"`
}

// ProviderSpec selects and parameterizes a decision provider.
type ProviderSpec struct {
	Type string `yaml:"type"` // "random", "simple", or "remote"

	// random
	Seed int64 `yaml:"seed"`

	// simple
	Aggressive int `yaml:"aggressive"`

	// remote
	URL        string   `yaml:"url"`
	AuthSecret string   `yaml:"auth_secret"`
	Timeout    Duration `yaml:"timeout"`
}

// Tournament is one named tournament definition.
type Tournament struct {
	Format       string   `yaml:"format"`
	Teams        []string `yaml:"teams"` // roster, in seeding order
	GamePoints   int      `yaml:"game_points"`
	MatchGames   int      `yaml:"match_games"`
	Passes       int      `yaml:"passes"`
	ElimPasses   int      `yaml:"elim_passes"`
	ElimPct      int      `yaml:"elim_pct"`
	RoundMatches int      `yaml:"round_matches"`
	Seed         int64    `yaml:"seed"`
	Rating       Rating   `yaml:"rating"`
}

// Rating configures the Elo profile and its persistence.
type Rating struct {
	Profile    string    `yaml:"profile"`
	InitRating float64   `yaml:"init_rating"`
	DValue     float64   `yaml:"d_value"`
	KFactor    float64   `yaml:"k_factor"`
	UseMargin  bool      `yaml:"use_margin"`
	Unit       string    `yaml:"unit"`
	Reset      bool      `yaml:"reset"`
	Store      StoreSpec `yaml:"store"`
}

// StoreSpec selects the rating store backend. DSN and Addr pass through
// ${VAR} environment expansion so credentials stay out of the file.
type StoreSpec struct {
	Type string `yaml:"type"` // "memory" (default), "file", "postgres", "redis"
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// Load reads and validates a YAML definition file.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML definition document.
func Parse(data []byte) (*Root, error) {
	var root Root
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := root.validate(); err != nil {
		return nil, err
	}
	return &root, nil
}

func (r *Root) validate() error {
	names := make(map[string]bool, len(r.Teams))
	for i, team := range r.Teams {
		if team.Name == "" {
			return fmt.Errorf("config: team %d has no name", i)
		}
		if names[team.Name] {
			return fmt.Errorf("config: duplicate team %q", team.Name)
		}
		names[team.Name] = true
		if err := team.Provider.validate(); err != nil {
			return fmt.Errorf("config: team %q: %w", team.Name, err)
		}
	}
	for name, t := range r.Tournaments {
		if t.Format == "" {
			return fmt.Errorf("config: tournament %q has no format", name)
		}
		if len(t.Teams) == 0 {
			return fmt.Errorf("config: tournament %q has no teams", name)
		}
		for _, team := range t.Teams {
			if !names[team] {
				return fmt.Errorf("config: tournament %q references unknown team %q", name, team)
			}
		}
		if err := t.Rating.Store.validate(); err != nil {
			return fmt.Errorf("config: tournament %q: %w", name, err)
		}
	}
	return nil
}

func (p *ProviderSpec) validate() error {
	switch p.Type {
	case "random", "simple":
		return nil
	case "remote":
		if p.URL == "" {
			return fmt.Errorf("remote provider requires url")
		}
		return nil
	case "":
		return fmt.Errorf("provider type missing")
	}
	return fmt.Errorf("unknown provider type %q", p.Type)
}

func (s *StoreSpec) validate() error {
	switch s.Type {
	case "", "memory":
		return nil
	case "file":
		if s.Path == "" {
			return fmt.Errorf("file rating store requires path")
		}
	case "postgres":
		if s.DSN == "" {
			return fmt.Errorf("postgres rating store requires dsn")
		}
	case "redis":
		if s.Addr == "" {
			return fmt.Errorf("redis rating store requires addr")
		}
	default:
		return fmt.Errorf("unknown rating store type %q", s.Type)
	}
	return nil
}

// Tournament returns the named tournament definition.
func (r *Root) Tournament(name string) (*Tournament, error) {
	t, ok := r.Tournaments[name]
	if !ok {
		return nil, fmt.Errorf("config: no tournament %q defined", name)
	}
	return &t, nil
}
