package models

type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "single_elimination"
	FormatRoundRobin        BracketFormat = "round_robin"
)

type NodeStatus string

const (
	StatusPending    NodeStatus = "pending"
	StatusReady      NodeStatus = "ready"
	StatusInProgress NodeStatus = "in_progress"
	StatusCompleted  NodeStatus = "completed"
)

// Slot is one side of a bracket node. Exactly one of TeamID/SourceNodeID/Bye
// is meaningful: a concrete team, "winner (or loser) of node X", or an
// automatic advance. A slot with a SourceNodeID gets its TeamID filled in by
// the progression engine when the source node completes.
type Slot struct {
	TeamID       *string `json:"team_id,omitempty"`
	SourceNodeID *string `json:"source_node_id,omitempty"`
	Bye          bool    `json:"bye,omitempty"`
}

// Resolved reports whether the slot holds a concrete team.
func (s *Slot) Resolved() bool {
	return s.TeamID != nil
}

type MatchResult struct {
	ScoreA   int    `json:"score_a"`
	ScoreB   int    `json:"score_b"`
	WinnerID string `json:"winner_id"`
}

// BracketNode is one scheduled or potential match. Nodes are kept in a flat
// arena on the Bracket and cross-reference each other by ID, which keeps the
// structure trivially serializable.
type BracketNode struct {
	ID              string       `json:"id"`
	Round           int          `json:"round"`    // 1-based, round 1 earliest
	Position        int          `json:"position"` // 0-based slot within round
	Consolation     bool         `json:"consolation,omitempty"`
	SlotA           Slot         `json:"slot_a"`
	SlotB           Slot         `json:"slot_b"`
	Status          NodeStatus   `json:"status"`
	Result          *MatchResult `json:"result,omitempty"`
	NextNodeID      *string      `json:"next_node_id,omitempty"`
	NextLoserNodeID *string      `json:"next_loser_node_id,omitempty"`
	Bye             bool         `json:"bye,omitempty"` // completed at generation time, no result to undo
}

// ResolvedTeams returns the concrete team IDs currently occupying the node's
// slots, slot A first.
func (n *BracketNode) ResolvedTeams() []string {
	teams := make([]string, 0, 2)
	if n.SlotA.TeamID != nil {
		teams = append(teams, *n.SlotA.TeamID)
	}
	if n.SlotB.TeamID != nil {
		teams = append(teams, *n.SlotB.TeamID)
	}
	return teams
}

// Bracket is the complete tournament structure. It is created once at
// generation time; afterwards only the progression engine mutates its nodes.
type Bracket struct {
	ID           string         `json:"id"`
	TournamentID int            `json:"tournament_id"`
	Format       BracketFormat  `json:"format"`
	Teams        []Team         `json:"teams"`
	Nodes        []*BracketNode `json:"nodes"`
	TotalRounds  int            `json:"total_rounds"`
	TotalMatches int            `json:"total_matches"`
}

// Node looks a node up by ID. The arena stays small (hundreds of nodes for
// hundreds of teams), so a linear scan is fine.
func (b *Bracket) Node(id string) *BracketNode {
	for _, n := range b.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Team looks a team up by ID.
func (b *Bracket) Team(id string) *Team {
	for i := range b.Teams {
		if b.Teams[i].ID == id {
			return &b.Teams[i]
		}
	}
	return nil
}

// FinalNode returns the single main-bracket node without a follow-up match.
// Round robin brackets have no node links and therefore no final.
func (b *Bracket) FinalNode() *BracketNode {
	if b.Format != FormatSingleElimination {
		return nil
	}
	for _, n := range b.Nodes {
		if !n.Consolation && n.NextNodeID == nil {
			return n
		}
	}
	return nil
}
