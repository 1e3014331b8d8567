package engine

import (
	"math/rand"
	"sort"

	"github.com/courtside/league-system/models"
)

// SeedingOptions carries the method-specific inputs for AssignSeeds.
// Rand is required for random seeding: the engine never reaches for the
// global source, so callers that need determinism seed their own.
type SeedingOptions struct {
	Rand  *rand.Rand
	Seeds map[string]int // manual: team ID -> seed number
}

// AssignSeeds orders teams into seed slots 1..N and returns a new slice;
// the input teams are never mutated.
func AssignSeeds(teams []models.Team, method models.SeedingMethod, opts SeedingOptions) ([]models.Team, error) {
	if len(teams) < 2 {
		return nil, ErrInsufficientTeams
	}

	seeded := make([]models.Team, len(teams))
	copy(seeded, teams)

	switch method {
	case models.SeedingPowerRating:
		// Descending by rating, ties broken by input order. A missing
		// rating counts as zero.
		sort.SliceStable(seeded, func(i, j int) bool {
			return derefRating(seeded[i].PowerRating) > derefRating(seeded[j].PowerRating)
		})

	case models.SeedingWinPercentage:
		sort.SliceStable(seeded, func(i, j int) bool {
			return seeded[i].Record.WinPercentage() > seeded[j].Record.WinPercentage()
		})

	case models.SeedingRandom:
		if opts.Rand == nil {
			return nil, ErrRandSourceRequired
		}
		opts.Rand.Shuffle(len(seeded), func(i, j int) {
			seeded[i], seeded[j] = seeded[j], seeded[i]
		})

	case models.SeedingManual:
		if err := validateManualSeeds(seeded, opts.Seeds); err != nil {
			return nil, err
		}
		sort.Slice(seeded, func(i, j int) bool {
			return opts.Seeds[seeded[i].ID] < opts.Seeds[seeded[j].ID]
		})

	default:
		return nil, ErrUnsupportedSeeding
	}

	for i := range seeded {
		seeded[i].Seed = i + 1
	}
	return seeded, nil
}

// validateManualSeeds checks the caller-provided mapping is a permutation of
// 1..N over exactly the supplied teams.
func validateManualSeeds(teams []models.Team, seeds map[string]int) error {
	if len(seeds) != len(teams) {
		return ErrInvalidSeed
	}
	used := make(map[int]bool, len(teams))
	for _, t := range teams {
		s, ok := seeds[t.ID]
		if !ok || s < 1 || s > len(teams) || used[s] {
			return ErrInvalidSeed
		}
		used[s] = true
	}
	return nil
}

func derefRating(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}
