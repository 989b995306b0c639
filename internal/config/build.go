// internal/config/build.go
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/euchre"
	"github.com/crashka/euchre-plt/internal/game"
	"github.com/crashka/euchre-plt/internal/provider"
	"github.com/crashka/euchre-plt/internal/rating"
	"github.com/crashka/euchre-plt/internal/tournament"
)

// BuildProvider instantiates the decision provider a team spec names.
// Remote providers dial their service here, so a dead endpoint fails setup
// rather than the first match.
func BuildProvider(ctx context.Context, spec ProviderSpec, team string, logger *logrus.Logger) (euchre.DecisionProvider, error) {
	switch spec.Type {
	case "random":
		seed := spec.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return provider.NewRandom(seed), nil
	case "simple":
		return &provider.Simple{Aggressive: spec.Aggressive}, nil
	case "remote":
		opts := provider.RemoteOptions{
			URL:     os.ExpandEnv(spec.URL),
			Timeout: time.Duration(spec.Timeout),
			Logger:  logger,
		}
		if spec.AuthSecret != "" {
			token, err := provider.AuthToken(os.ExpandEnv(spec.AuthSecret), team, 0)
			if err != nil {
				return nil, fmt.Errorf("auth token for %q: %w", team, err)
			}
			opts.Token = token
		}
		return provider.NewRemote(ctx, opts)
	}
	return nil, fmt.Errorf("unknown provider type %q", spec.Type)
}

// BuildRoster creates the tournament's teams, seeded in roster order, each
// with a freshly built provider.
func (r *Root) BuildRoster(ctx context.Context, t *Tournament, logger *logrus.Logger) ([]*game.Team, error) {
	specs := make(map[string]TeamSpec, len(r.Teams))
	for _, ts := range r.Teams {
		specs[ts.Name] = ts
	}
	teams := make([]*game.Team, 0, len(t.Teams))
	for seed, name := range t.Teams {
		ts := specs[name]
		p, err := BuildProvider(ctx, ts.Provider, name, logger)
		if err != nil {
			return nil, err
		}
		teams = append(teams, game.NewTeam(name, seed, p))
	}
	return teams, nil
}

// BuildStore opens the configured rating store.
func BuildStore(ctx context.Context, spec StoreSpec) (rating.Store, error) {
	switch spec.Type {
	case "", "memory":
		return rating.NewMemoryStore(), nil
	case "file":
		return rating.NewFileStore(os.ExpandEnv(spec.Path)), nil
	case "postgres":
		return rating.NewPostgresStore(ctx, os.ExpandEnv(spec.DSN))
	case "redis":
		return rating.NewRedisStore(os.ExpandEnv(spec.Addr), spec.DB)
	}
	return nil, fmt.Errorf("unknown rating store type %q", spec.Type)
}

// TournamentConfig maps a definition onto the scheduler configuration.
func (t *Tournament) TournamentConfig(name string) tournament.Config {
	return tournament.Config{
		Name:   name,
		Format: tournament.Format(t.Format),
		Game: game.Options{
			GamePoints: t.GamePoints,
			MatchGames: t.MatchGames,
		},
		Passes:       t.Passes,
		ElimPasses:   t.ElimPasses,
		ElimPct:      t.ElimPct,
		RoundMatches: t.RoundMatches,
		Seed:         t.Seed,
		Rating:       t.RatingProfile(name),
		ResetRatings: t.Rating.Reset,
	}
}

// RatingProfile maps the rating section onto an engine profile; an unset
// profile id defaults to the tournament name so runs do not cross-pollute.
func (t *Tournament) RatingProfile(name string) rating.Profile {
	id := t.Rating.Profile
	if id == "" {
		id = name
	}
	return rating.Profile{
		ID:         id,
		InitRating: t.Rating.InitRating,
		DValue:     t.Rating.DValue,
		KFactor:    t.Rating.KFactor,
		UseMargin:  t.Rating.UseMargin,
		Unit:       rating.Unit(t.Rating.Unit),
	}
}
