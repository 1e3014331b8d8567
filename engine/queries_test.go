package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingMatches_Sorted(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(5), SingleEliminationOptions{})
	require.NoError(t, err)

	// After generation the playable matches are R1M2 (4v5) and R2M2 (3v2,
	// both auto-advanced through byes).
	upcoming := UpcomingMatches(b)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "R1M2", upcoming[0].ID)
	assert.Equal(t, "R2M2", upcoming[1].ID)
}

func TestMatchesInRound(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(8), SingleEliminationOptions{Consolation: true})
	require.NoError(t, err)

	round1 := MatchesInRound(b, 1)
	require.Len(t, round1, 6) // 4 main + 2 consolation entry
	assert.Equal(t, []string{"R1M1", "R1M2", "R1M3", "R1M4", "C1M1", "C1M2"},
		[]string{round1[0].ID, round1[1].ID, round1[2].ID, round1[3].ID, round1[4].ID, round1[5].ID})

	assert.Empty(t, MatchesInRound(b, 4))
}

func TestCompletedMatches_IncludesByes(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(5), SingleEliminationOptions{})
	require.NoError(t, err)

	done := CompletedMatches(b)
	require.Len(t, done, 3)
	for _, node := range done {
		assert.True(t, node.Bye)
	}
}

func TestPathOfTeam(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(5), SingleEliminationOptions{})
	require.NoError(t, err)

	require.NoError(t, SubmitResult(b, "R1M2", 2, 1, "t5"))

	// Seed 5 upset seed 4 and now waits for seed 1 in the semi.
	path := PathOfTeam(b, "t5")
	require.Len(t, path, 2)
	assert.Equal(t, "R1M2", path[0].Node.ID)
	assert.Equal(t, OutcomeWon, path[0].Outcome)
	assert.Equal(t, "R2M1", path[1].Node.ID)
	assert.Equal(t, OutcomePending, path[1].Outcome)

	// Seed 4 is out after one match.
	path = PathOfTeam(b, "t4")
	require.Len(t, path, 1)
	assert.Equal(t, OutcomeLost, path[0].Outcome)

	assert.Empty(t, PathOfTeam(b, "nobody"))
}

func TestStandings_OrderAndTieBreak(t *testing.T) {
	b, err := GenerateRoundRobin(seededTeams(3))
	require.NoError(t, err)

	// t1 beats t2 big, t2 beats t3, t3 beats t1 narrowly: everyone 1-1,
	// decided on point differential.
	submitPair := func(a, bID string, scoreA, scoreB int) {
		t.Helper()
		for _, node := range b.Nodes {
			teams := node.ResolvedTeams()
			if len(teams) == 2 && ((teams[0] == a && teams[1] == bID) || (teams[0] == bID && teams[1] == a)) {
				winner := a
				if scoreB > scoreA {
					winner = bID
				}
				sa, sb := scoreA, scoreB
				if teams[0] != a {
					sa, sb = sb, sa
				}
				require.NoError(t, SubmitResult(b, node.ID, sa, sb, winner))
				return
			}
		}
		t.Fatalf("no node pairs %s and %s", a, bID)
	}

	submitPair("t1", "t2", 10, 2)
	submitPair("t2", "t3", 5, 3)
	submitPair("t3", "t1", 4, 3)

	table := Standings(b)
	require.Len(t, table, 3)
	assert.Equal(t, []string{"t1", "t3", "t2"},
		[]string{table[0].TeamID, table[1].TeamID, table[2].TeamID})
	assert.Equal(t, 7, table[0].ScoreDifference)
	assert.Equal(t, 1, table[0].Rank)
	assert.Equal(t, 3, table[2].Rank)
}

func TestChampion(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(4), SingleEliminationOptions{})
	require.NoError(t, err)
	assert.Nil(t, Champion(b))

	require.NoError(t, SubmitResult(b, "R1M1", 2, 0, "t1"))
	require.NoError(t, SubmitResult(b, "R1M2", 2, 0, "t2"))
	assert.Nil(t, Champion(b))

	require.NoError(t, SubmitResult(b, "R2M1", 3, 1, "t2"))
	champion := Champion(b)
	require.NotNil(t, champion)
	assert.Equal(t, "t2", champion.ID)

	rr, err := GenerateRoundRobin(seededTeams(4))
	require.NoError(t, err)
	assert.Nil(t, Champion(rr), "round robin has no bracket champion")
}

func TestStandings_IgnoresByeNodes(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(5), SingleEliminationOptions{})
	require.NoError(t, err)

	// Byes complete with a winner but count as zero games played.
	for _, row := range Standings(b) {
		assert.Zero(t, row.GamesPlayed)
	}
}
