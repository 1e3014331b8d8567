package engine

import (
	"math/rand"

	"github.com/courtside/league-system/models"
)

// GenerateOptions bundles seeding and format options for Generate.
type GenerateOptions struct {
	SeedingMethod models.SeedingMethod
	ManualSeeds   map[string]int // required for manual seeding
	Rand          *rand.Rand     // required for random seeding
	Consolation   bool           // single elimination only
}

// Generate is the single entry point the hosting service calls: it assigns
// seeds and dispatches on format. Generation is deterministic for a fixed
// team list and seeding method (random seeding excepted, by design).
func Generate(teams []models.Team, format models.BracketFormat, opts GenerateOptions) (*models.Bracket, error) {
	seeded, err := AssignSeeds(teams, opts.SeedingMethod, SeedingOptions{
		Rand:  opts.Rand,
		Seeds: opts.ManualSeeds,
	})
	if err != nil {
		return nil, err
	}

	switch format {
	case models.FormatSingleElimination:
		return GenerateSingleElimination(seeded, SingleEliminationOptions{Consolation: opts.Consolation})
	case models.FormatRoundRobin:
		return GenerateRoundRobin(seeded)
	default:
		return nil, ErrUnsupportedFormat
	}
}
