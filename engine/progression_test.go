package engine

import (
	"encoding/json"
	"testing"

	"github.com/courtside/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloneBracket(t *testing.T, b *models.Bracket) *models.Bracket {
	t.Helper()
	data, err := json.Marshal(b)
	require.NoError(t, err)
	var clone models.Bracket
	require.NoError(t, json.Unmarshal(data, &clone))
	return &clone
}

func bracketJSON(t *testing.T, b *models.Bracket) string {
	t.Helper()
	data, err := json.Marshal(b)
	require.NoError(t, err)
	return string(data)
}

func TestSubmitResult_AdvancesWinner(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(4), SingleEliminationOptions{})
	require.NoError(t, err)

	final := b.Node("R2M1")
	require.NotNil(t, final)
	assert.Equal(t, models.StatusPending, final.Status)

	require.NoError(t, SubmitResult(b, "R1M1", 21, 14, "t1"))

	m1 := b.Node("R1M1")
	assert.Equal(t, models.StatusCompleted, m1.Status)
	require.NotNil(t, m1.Result)
	assert.Equal(t, 21, m1.Result.ScoreA)
	assert.Equal(t, 14, m1.Result.ScoreB)

	// Winner lands in the final's slot A (wired to R1M1); the final still
	// waits on the other semi.
	require.NotNil(t, final.SlotA.TeamID)
	assert.Equal(t, "t1", *final.SlotA.TeamID)
	assert.Equal(t, models.StatusPending, final.Status)

	require.NoError(t, SubmitResult(b, "R1M2", 9, 11, "t3"))
	require.NotNil(t, final.SlotB.TeamID)
	assert.Equal(t, "t3", *final.SlotB.TeamID)
	assert.Equal(t, models.StatusReady, final.Status)
}

func TestSubmitResult_Validation(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(4), SingleEliminationOptions{})
	require.NoError(t, err)

	t.Run("unknown node", func(t *testing.T) {
		assert.ErrorIs(t, SubmitResult(b, "R9M9", 1, 0, "t1"), ErrNodeNotFound)
	})

	t.Run("pending node rejects results", func(t *testing.T) {
		assert.ErrorIs(t, SubmitResult(b, "R2M1", 1, 0, "t1"), ErrNodeNotReady)
	})

	t.Run("winner must participate", func(t *testing.T) {
		assert.ErrorIs(t, SubmitResult(b, "R1M1", 1, 0, "t2"), ErrInvalidWinner)
		// Failed validation left the node untouched.
		assert.Equal(t, models.StatusReady, b.Node("R1M1").Status)
		assert.Nil(t, b.Node("R1M1").Result)
	})

	t.Run("resubmission is rejected", func(t *testing.T) {
		require.NoError(t, SubmitResult(b, "R1M1", 1, 0, "t1"))
		assert.ErrorIs(t, SubmitResult(b, "R1M1", 1, 0, "t1"), ErrNodeNotReady)
	})
}

func TestStartMatch(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(4), SingleEliminationOptions{})
	require.NoError(t, err)

	require.NoError(t, StartMatch(b, "R1M1"))
	assert.Equal(t, models.StatusInProgress, b.Node("R1M1").Status)

	live := LiveMatches(b)
	require.Len(t, live, 1)
	assert.Equal(t, "R1M1", live[0].ID)

	// Starting twice or starting a pending node fails the same way.
	assert.ErrorIs(t, StartMatch(b, "R1M1"), ErrNodeNotReady)
	assert.ErrorIs(t, StartMatch(b, "R2M1"), ErrNodeNotReady)

	// An in-progress node accepts its result.
	require.NoError(t, SubmitResult(b, "R1M1", 3, 2, "t4"))
	assert.Equal(t, models.StatusCompleted, b.Node("R1M1").Status)
}

func TestUndoResult_RoundTrip(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(8), SingleEliminationOptions{Consolation: true})
	require.NoError(t, err)

	before := bracketJSON(t, b)

	require.NoError(t, SubmitResult(b, "R1M2", 15, 12, "t4"))
	assert.NotEqual(t, before, bracketJSON(t, b))

	require.NoError(t, UndoResult(b, "R1M2"))
	assert.Equal(t, before, bracketJSON(t, b), "undo must restore the pre-submission state")
}

func TestUndoResult_CascadesDownstream(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(4), SingleEliminationOptions{})
	require.NoError(t, err)

	require.NoError(t, SubmitResult(b, "R1M1", 2, 0, "t1"))
	require.NoError(t, SubmitResult(b, "R1M2", 2, 1, "t2"))
	require.NoError(t, SubmitResult(b, "R2M1", 5, 4, "t2"))

	// Undo the first semi: the final had already consumed t1 and completed,
	// so it loses its result, t1 is pulled out, and it reverts to pending.
	require.NoError(t, UndoResult(b, "R1M1"))

	semi := b.Node("R1M1")
	assert.Equal(t, models.StatusReady, semi.Status)
	assert.Nil(t, semi.Result)

	final := b.Node("R2M1")
	assert.Equal(t, models.StatusPending, final.Status)
	assert.Nil(t, final.Result)
	assert.Nil(t, final.SlotA.TeamID)
	require.NotNil(t, final.SlotB.TeamID)
	assert.Equal(t, "t2", *final.SlotB.TeamID, "the other finalist stays seated")

	// Replaying the semi differently reaches a different final.
	require.NoError(t, SubmitResult(b, "R1M1", 0, 2, "t4"))
	assert.Equal(t, models.StatusReady, final.Status)
	assert.Equal(t, "t4", *final.SlotA.TeamID)
}

func TestUndoResult_CascadesThroughConsolationBye(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(5), SingleEliminationOptions{Consolation: true})
	require.NoError(t, err)

	// The 4v5 loser auto-advances through two consolation byes (see the
	// generation tests). Undoing 4v5 must unwind that whole chain.
	require.NoError(t, SubmitResult(b, "R1M2", 3, 1, "t4"))
	require.Equal(t, models.StatusCompleted, b.Node("C2M1").Status)

	require.NoError(t, UndoResult(b, "R1M2"))

	for _, id := range []string{"C1M1", "C2M1"} {
		node := b.Node(id)
		assert.Equal(t, models.StatusPending, node.Status, "%s", id)
		assert.Nil(t, node.Result, "%s", id)
		assert.False(t, node.Bye, "%s", id)
	}
}

func TestUndoResult_Validation(t *testing.T) {
	b, err := GenerateSingleElimination(seededTeams(5), SingleEliminationOptions{})
	require.NoError(t, err)

	t.Run("unknown node", func(t *testing.T) {
		assert.ErrorIs(t, UndoResult(b, "R9M9"), ErrNodeNotFound)
	})

	t.Run("never-completed node", func(t *testing.T) {
		assert.ErrorIs(t, UndoResult(b, "R1M2"), ErrNoResultToUndo)
		assert.ErrorIs(t, UndoResult(b, "R2M1"), ErrNoResultToUndo)
	})

	t.Run("bye node", func(t *testing.T) {
		bye := b.Node("R1M1")
		require.True(t, bye.Bye)
		assert.ErrorIs(t, UndoResult(b, "R1M1"), ErrNoResultToUndo)
	})
}

func TestSubmitResult_RoundRobinHasNoPropagation(t *testing.T) {
	b, err := GenerateRoundRobin(seededTeams(4))
	require.NoError(t, err)

	node := b.Nodes[0]
	require.NoError(t, SubmitResult(b, node.ID, 10, 8, *node.SlotA.TeamID))
	assert.Equal(t, models.StatusCompleted, node.Status)

	// Every other node is untouched.
	for _, other := range b.Nodes[1:] {
		assert.Equal(t, models.StatusReady, other.Status)
	}

	require.NoError(t, UndoResult(b, node.ID))
	assert.Equal(t, models.StatusReady, node.Status)
	assert.Nil(t, node.Result)
}
