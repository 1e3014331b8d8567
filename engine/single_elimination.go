package engine

import (
	"fmt"
	"sort"

	"github.com/courtside/league-system/models"
)

// SingleEliminationOptions controls optional topology features.
type SingleEliminationOptions struct {
	// Consolation wires round-1 losers into a secondary elimination
	// bracket. Losers from round 2 onward are dropped, matching common
	// youth-tournament practice.
	Consolation bool
}

// GenerateSingleElimination builds the full round/node graph for a seeded
// team list. First-round slots are padded to the next power of two with
// byes, which resolve immediately: a bye never waits for a human action.
func GenerateSingleElimination(teams []models.Team, opts SingleEliminationOptions) (*models.Bracket, error) {
	n := len(teams)
	if n < 2 {
		return nil, ErrInsufficientTeams
	}

	ordered := make([]models.Team, n)
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seed < ordered[j].Seed
	})

	size := 1
	rounds := 0
	for size < n {
		size <<= 1
		rounds++
	}

	b := &models.Bracket{
		Format:      models.FormatSingleElimination,
		Teams:       ordered,
		TotalRounds: rounds,
	}

	// Round 1: classic seed pairing (1 v size, 4 v 5, ...) so top seeds
	// meet as late as possible. Seeds beyond N are byes.
	order := seedPairingOrder(size)
	firstRound := make([]*models.BracketNode, 0, size/2)
	for m := 0; m < size/2; m++ {
		seedA, seedB := order[2*m], order[2*m+1]
		if seedB < seedA {
			seedA, seedB = seedB, seedA
		}
		node := &models.BracketNode{
			ID:       nodeUID(false, 1, m),
			Round:    1,
			Position: m,
			Status:   models.StatusPending,
			SlotA:    slotForSeed(ordered, seedA),
			SlotB:    slotForSeed(ordered, seedB),
		}
		firstRound = append(firstRound, node)
		b.Nodes = append(b.Nodes, node)
	}

	linkRounds(b, firstRound, rounds, false)

	if opts.Consolation && rounds >= 2 {
		consolation := make([]*models.BracketNode, 0, size/4)
		for m := 0; m < size/4; m++ {
			node := &models.BracketNode{
				ID:          nodeUID(true, 1, m),
				Round:       1,
				Position:    m,
				Consolation: true,
				Status:      models.StatusPending,
				SlotA:       models.Slot{SourceNodeID: &firstRound[2*m].ID},
				SlotB:       models.Slot{SourceNodeID: &firstRound[2*m+1].ID},
			}
			firstRound[2*m].NextLoserNodeID = &node.ID
			firstRound[2*m+1].NextLoserNodeID = &node.ID
			consolation = append(consolation, node)
			b.Nodes = append(b.Nodes, node)
		}
		linkRounds(b, consolation, rounds-1, true)
	}

	b.TotalMatches = len(b.Nodes)

	// Resolve byes in place so a 5-team bracket comes out of generation
	// with its three bye nodes already completed.
	queue := make([]string, 0, len(b.Nodes))
	for _, node := range b.Nodes {
		queue = append(queue, node.ID)
	}
	autoResolve(b, queue)

	return b, nil
}

// linkRounds generates rounds 2..total above the given entry round and wires
// NextNodeID back-references, halving the node count each round.
func linkRounds(b *models.Bracket, entry []*models.BracketNode, total int, consolation bool) {
	prev := entry
	for r := 2; r <= total; r++ {
		current := make([]*models.BracketNode, 0, len(prev)/2)
		for m := 0; m < len(prev)/2; m++ {
			node := &models.BracketNode{
				ID:          nodeUID(consolation, r, m),
				Round:       r,
				Position:    m,
				Consolation: consolation,
				Status:      models.StatusPending,
				SlotA:       models.Slot{SourceNodeID: &prev[2*m].ID},
				SlotB:       models.Slot{SourceNodeID: &prev[2*m+1].ID},
			}
			prev[2*m].NextNodeID = &node.ID
			prev[2*m+1].NextNodeID = &node.ID
			current = append(current, node)
			b.Nodes = append(b.Nodes, node)
		}
		prev = current
	}
}

// seedPairingOrder returns the first-round slot sequence for a full bracket
// of the given size, e.g. [1 8 4 5 3 6 2 7] for size 8. Each expansion pairs
// seed s with its complement, alternating pair orientation so the bottom
// half mirrors the top and seeds 1 and 2 can only meet in the final.
func seedPairingOrder(size int) []int {
	order := []int{1}
	for n := 2; n <= size; n *= 2 {
		next := make([]int, 0, n)
		for i, s := range order {
			c := n + 1 - s
			if i%2 == 0 {
				next = append(next, s, c)
			} else {
				next = append(next, c, s)
			}
		}
		order = next
	}
	return order
}

func slotForSeed(ordered []models.Team, seed int) models.Slot {
	if seed > len(ordered) {
		return models.Slot{Bye: true}
	}
	return models.Slot{TeamID: &ordered[seed-1].ID}
}

func nodeUID(consolation bool, round, position int) string {
	if consolation {
		return fmt.Sprintf("C%dM%d", round, position+1)
	}
	return fmt.Sprintf("R%dM%d", round, position+1)
}
