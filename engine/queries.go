package engine

import (
	"sort"

	"github.com/courtside/league-system/models"
)

// The query layer is read-only over a bracket snapshot. Results are
// recomputed on every call; the bracket only changes through the
// progression engine, so callers may memoize freely.

// MatchesInRound returns the nodes of the given round, main bracket before
// consolation, ordered by position.
func MatchesInRound(b *models.Bracket, round int) []*models.BracketNode {
	return collectNodes(b, func(n *models.BracketNode) bool {
		return n.Round == round
	})
}

// LiveMatches returns nodes currently in progress.
func LiveMatches(b *models.Bracket) []*models.BracketNode {
	return collectNodes(b, func(n *models.BracketNode) bool {
		return n.Status == models.StatusInProgress
	})
}

// UpcomingMatches returns ready nodes sorted by round then position.
func UpcomingMatches(b *models.Bracket) []*models.BracketNode {
	return collectNodes(b, func(n *models.BracketNode) bool {
		return n.Status == models.StatusReady
	})
}

// CompletedMatches returns completed nodes, byes included.
func CompletedMatches(b *models.Bracket) []*models.BracketNode {
	return collectNodes(b, func(n *models.BracketNode) bool {
		return n.Status == models.StatusCompleted
	})
}

type PathOutcome string

const (
	OutcomeWon     PathOutcome = "won"
	OutcomeLost    PathOutcome = "lost"
	OutcomePending PathOutcome = "pending"
)

// PathStep is one node on a team's route through the bracket.
type PathStep struct {
	Node    *models.BracketNode `json:"node"`
	Outcome PathOutcome         `json:"outcome"`
}

// PathOfTeam returns every node the team has appeared in, earliest first.
func PathOfTeam(b *models.Bracket, teamID string) []PathStep {
	nodes := collectNodes(b, func(n *models.BracketNode) bool {
		return slotHolding(n, teamID) != nil
	})
	path := make([]PathStep, 0, len(nodes))
	for _, n := range nodes {
		outcome := OutcomePending
		if n.Status == models.StatusCompleted && n.Result != nil {
			if n.Result.WinnerID == teamID {
				outcome = OutcomeWon
			} else {
				outcome = OutcomeLost
			}
		}
		path = append(path, PathStep{Node: n, Outcome: outcome})
	}
	return path
}

// Standings derives the round-robin table from completed results: wins,
// losses and point differential, sorted descending by wins then
// differential. Every team gets a row even before playing.
func Standings(b *models.Bracket) []models.Standing {
	rows := make(map[string]*models.Standing, len(b.Teams))
	for _, t := range b.Teams {
		rows[t.ID] = &models.Standing{TeamID: t.ID, TeamName: t.Name}
	}

	for _, n := range b.Nodes {
		if n.Status != models.StatusCompleted || n.Result == nil {
			continue
		}
		a, bSlot := n.SlotA.TeamID, n.SlotB.TeamID
		if a == nil || bSlot == nil {
			continue // bye, not a played match
		}
		apply := func(teamID string, scored, conceded int) {
			row, ok := rows[teamID]
			if !ok {
				return
			}
			row.GamesPlayed++
			row.ScoreFor += scored
			row.ScoreAgainst += conceded
			row.ScoreDifference = row.ScoreFor - row.ScoreAgainst
			if n.Result.WinnerID == teamID {
				row.Wins++
			} else {
				row.Losses++
			}
		}
		apply(*a, n.Result.ScoreA, n.Result.ScoreB)
		apply(*bSlot, n.Result.ScoreB, n.Result.ScoreA)
	}

	table := make([]models.Standing, 0, len(rows))
	for _, t := range b.Teams {
		table = append(table, *rows[t.ID])
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Wins != table[j].Wins {
			return table[i].Wins > table[j].Wins
		}
		return table[i].ScoreDifference > table[j].ScoreDifference
	})
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}

// Champion returns the winner of a decided single-elimination bracket, or
// nil while the final is outstanding.
func Champion(b *models.Bracket) *models.Team {
	final := b.FinalNode()
	if final == nil || final.Status != models.StatusCompleted || final.Result == nil {
		return nil
	}
	return b.Team(final.Result.WinnerID)
}

func collectNodes(b *models.Bracket, keep func(*models.BracketNode) bool) []*models.BracketNode {
	nodes := make([]*models.BracketNode, 0)
	for _, n := range b.Nodes {
		if keep(n) {
			nodes = append(nodes, n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Consolation != nodes[j].Consolation {
			return !nodes[i].Consolation
		}
		if nodes[i].Round != nodes[j].Round {
			return nodes[i].Round < nodes[j].Round
		}
		return nodes[i].Position < nodes[j].Position
	})
	return nodes
}
