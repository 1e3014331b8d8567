package engine

import (
	"math/rand"
	"testing"

	"github.com/courtside/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func TestAssignSeeds_PowerRating(t *testing.T) {
	teams := []models.Team{
		{ID: "a", Name: "Aces", PowerRating: rating(70)},
		{ID: "b", Name: "Bears", PowerRating: rating(92)},
		{ID: "c", Name: "Comets", PowerRating: rating(92)},
		{ID: "d", Name: "Dragons"},
	}

	seeded, err := AssignSeeds(teams, models.SeedingPowerRating, SeedingOptions{})
	require.NoError(t, err)

	ids := make([]string, len(seeded))
	for i, team := range seeded {
		ids[i] = team.ID
		assert.Equal(t, i+1, team.Seed)
	}
	// Bears before Comets: equal ratings keep input order. Missing rating
	// counts as zero and sorts last.
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids)

	// Inputs are never mutated.
	assert.Zero(t, teams[0].Seed)
}

func TestAssignSeeds_WinPercentage(t *testing.T) {
	teams := []models.Team{
		{ID: "a", Record: &models.TeamRecord{Wins: 2, Losses: 2}},
		{ID: "b", Record: &models.TeamRecord{}}, // zero games played
		{ID: "c", Record: &models.TeamRecord{Wins: 5, Losses: 1}},
		{ID: "d"}, // no record at all
	}

	seeded, err := AssignSeeds(teams, models.SeedingWinPercentage, SeedingOptions{})
	require.NoError(t, err)

	assert.Equal(t, "c", seeded[0].ID)
	assert.Equal(t, "a", seeded[1].ID)
	// Both at 0%: stable on input order.
	assert.Equal(t, "b", seeded[2].ID)
	assert.Equal(t, "d", seeded[3].ID)
}

func TestAssignSeeds_Random(t *testing.T) {
	teams := []models.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}

	first, err := AssignSeeds(teams, models.SeedingRandom, SeedingOptions{Rand: rand.New(rand.NewSource(42))})
	require.NoError(t, err)
	second, err := AssignSeeds(teams, models.SeedingRandom, SeedingOptions{Rand: rand.New(rand.NewSource(42))})
	require.NoError(t, err)

	// Same injected source, same permutation.
	assert.Equal(t, first, second)
}

func TestAssignSeeds_RandomRequiresSource(t *testing.T) {
	teams := []models.Team{{ID: "a"}, {ID: "b"}}

	_, err := AssignSeeds(teams, models.SeedingRandom, SeedingOptions{})
	assert.ErrorIs(t, err, ErrRandSourceRequired)
}

func TestAssignSeeds_Manual(t *testing.T) {
	teams := []models.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	seeded, err := AssignSeeds(teams, models.SeedingManual, SeedingOptions{
		Seeds: map[string]int{"a": 3, "b": 1, "c": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "b", seeded[0].ID)
	assert.Equal(t, "c", seeded[1].ID)
	assert.Equal(t, "a", seeded[2].ID)
}

func TestAssignSeeds_ManualInvalid(t *testing.T) {
	teams := []models.Team{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	cases := map[string]map[string]int{
		"duplicate seed":  {"a": 1, "b": 1, "c": 2},
		"gap in sequence": {"a": 1, "b": 2, "c": 4},
		"missing team":    {"a": 1, "b": 2},
		"unknown team":    {"a": 1, "b": 2, "x": 3},
	}
	for name, seeds := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := AssignSeeds(teams, models.SeedingManual, SeedingOptions{Seeds: seeds})
			assert.ErrorIs(t, err, ErrInvalidSeed)
		})
	}
}

func TestAssignSeeds_InsufficientTeams(t *testing.T) {
	_, err := AssignSeeds([]models.Team{{ID: "only"}}, models.SeedingPowerRating, SeedingOptions{})
	assert.ErrorIs(t, err, ErrInsufficientTeams)

	_, err = AssignSeeds(nil, models.SeedingPowerRating, SeedingOptions{})
	assert.ErrorIs(t, err, ErrInsufficientTeams)
}
