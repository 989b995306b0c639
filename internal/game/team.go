// internal/game/team.go
package game

import (
	"github.com/google/uuid"

	"github.com/crashka/euchre-plt/internal/euchre"
)

// Team is a pair of seats sharing one DecisionProvider. Seed is the
// registration order, used as the final deterministic tie-break.
type Team struct {
	ID       uuid.UUID
	Name     string
	Seed     int
	Provider euchre.DecisionProvider
}

// NewTeam creates a team bound to the given provider.
func NewTeam(name string, seed int, provider euchre.DecisionProvider) *Team {
	return &Team{
		ID:       uuid.New(),
		Name:     name,
		Seed:     seed,
		Provider: provider,
	}
}

func (t *Team) String() string {
	return t.Name
}
