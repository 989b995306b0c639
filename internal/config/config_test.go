// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
teams:
  - name: Alpha
    provider:
      type: simple
      aggressive: 3
  - name: Beta
    provider:
      type: random
      seed: 99
  - name: Gamma
    provider:
      type: remote
      url: ws://localhost:9000/decide
      auth_secret: ${EUCHRE_REMOTE_SECRET}
      timeout: 5s

tournaments:
  season:
    format: round_robin
    teams: [Alpha, Beta, Gamma]
    passes: 4
    match_games: 2
    elim_passes: 2
    elim_pct: 25
    rating:
      d_value: 400
      k_factor: 24
      use_margin: true
      unit: pass
      store:
        type: file
        path: ratings.json
  showdown:
    format: head_to_head
    teams: [Alpha, Beta]
    passes: 10
`

func TestParseSample(t *testing.T) {
	root, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, root.Teams, 3)
	assert.Equal(t, "simple", root.Teams[0].Provider.Type)
	assert.Equal(t, 3, root.Teams[0].Provider.Aggressive)
	assert.Equal(t, int64(99), root.Teams[1].Provider.Seed)
	assert.Equal(t, Duration(5*time.Second), root.Teams[2].Provider.Timeout)

	season, err := root.Tournament("season")
	require.NoError(t, err)
	assert.Equal(t, "round_robin", season.Format)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, season.Teams)
	assert.Equal(t, 4, season.Passes)
	assert.True(t, season.Rating.UseMargin)
	assert.Equal(t, "file", season.Rating.Store.Type)

	_, err = root.Tournament("missing")
	assert.Error(t, err)
}

func TestTournamentConfigMapping(t *testing.T) {
	root, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	season, err := root.Tournament("season")
	require.NoError(t, err)

	cfg := season.TournamentConfig("season")
	assert.Equal(t, "season", cfg.Name)
	assert.Equal(t, 2, cfg.Game.MatchGames)
	assert.Equal(t, 2, cfg.ElimPasses)
	assert.Equal(t, 25, cfg.ElimPct)
	assert.True(t, cfg.Rating.UseMargin)
	assert.Equal(t, "season", cfg.Rating.ID, "profile id defaults to the tournament name")
}

func TestValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown team reference", `
teams:
  - name: Alpha
    provider: {type: random}
tournaments:
  t: {format: round_robin, teams: [Alpha, Ghost]}
`},
		{"duplicate team", `
teams:
  - name: Alpha
    provider: {type: random}
  - name: Alpha
    provider: {type: random}
tournaments: {}
`},
		{"remote without url", `
teams:
  - name: Alpha
    provider: {type: remote}
tournaments: {}
`},
		{"missing provider type", `
teams:
  - name: Alpha
    provider: {}
tournaments: {}
`},
		{"unknown store type", `
teams:
  - name: Alpha
    provider: {type: random}
  - name: Beta
    provider: {type: random}
tournaments:
  t:
    format: round_robin
    teams: [Alpha, Beta]
    rating:
      store: {type: etcd}
`},
		{"tournament without format", `
teams:
  - name: Alpha
    provider: {type: random}
tournaments:
  t: {teams: [Alpha]}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}
