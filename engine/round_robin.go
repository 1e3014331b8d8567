package engine

import (
	"sort"

	"github.com/courtside/league-system/models"
)

// GenerateRoundRobin builds the complete pairing schedule with the circle
// method: one team stays fixed while the rest rotate, pairing opposite
// positions each rotation. Every unordered pair appears exactly once and no
// round gives more than one team a bye.
func GenerateRoundRobin(teams []models.Team) (*models.Bracket, error) {
	n := len(teams)
	if n < 2 {
		return nil, ErrInsufficientTeams
	}

	ordered := make([]models.Team, n)
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seed < ordered[j].Seed
	})

	// Odd team counts get a placeholder opponent; a team drawn against it
	// simply sits the round out.
	circle := make([]*models.Team, 0, n+1)
	for i := range ordered {
		circle = append(circle, &ordered[i])
	}
	if n%2 != 0 {
		circle = append(circle, nil)
	}

	b := &models.Bracket{
		Format:      models.FormatRoundRobin,
		Teams:       ordered,
		TotalRounds: len(circle) - 1,
	}

	for r := 1; r <= len(circle)-1; r++ {
		position := 0
		for i := 0; i < len(circle)/2; i++ {
			home := circle[i]
			away := circle[len(circle)-1-i]
			if home == nil || away == nil {
				continue
			}
			node := &models.BracketNode{
				ID:       nodeUID(false, r, position),
				Round:    r,
				Position: position,
				Status:   models.StatusReady,
				SlotA:    models.Slot{TeamID: &home.ID},
				SlotB:    models.Slot{TeamID: &away.ID},
			}
			b.Nodes = append(b.Nodes, node)
			position++
		}

		// Rotate everyone but the first entry one step clockwise.
		last := circle[len(circle)-1]
		copy(circle[2:], circle[1:len(circle)-1])
		circle[1] = last
	}

	b.TotalMatches = len(b.Nodes)
	return b, nil
}
