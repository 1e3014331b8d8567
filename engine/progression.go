package engine

import (
	"github.com/courtside/league-system/models"
)

// SubmitResult records a completed match and advances the winner (and, for
// consolation brackets, the loser) downstream. Validation happens before any
// mutation, so a failed call leaves the bracket untouched.
func SubmitResult(b *models.Bracket, nodeID string, scoreA, scoreB int, winnerID string) error {
	node := b.Node(nodeID)
	if node == nil {
		return ErrNodeNotFound
	}
	if node.Status != models.StatusReady && node.Status != models.StatusInProgress {
		return ErrNodeNotReady
	}
	loserID, ok := opponentOf(node, winnerID)
	if !ok {
		return ErrInvalidWinner
	}

	node.Status = models.StatusCompleted
	node.Result = &models.MatchResult{ScoreA: scoreA, ScoreB: scoreB, WinnerID: winnerID}

	queue := make([]string, 0, 2)
	if node.NextNodeID != nil {
		placeTeam(b, *node.NextNodeID, node.ID, winnerID)
		queue = append(queue, *node.NextNodeID)
	}
	if node.NextLoserNodeID != nil {
		placeTeam(b, *node.NextLoserNodeID, node.ID, loserID)
		queue = append(queue, *node.NextLoserNodeID)
	}
	autoResolve(b, queue)
	return nil
}

// StartMatch flips a node from ready to in_progress so the query layer can
// surface it as live.
func StartMatch(b *models.Bracket, nodeID string) error {
	node := b.Node(nodeID)
	if node == nil {
		return ErrNodeNotFound
	}
	if node.Status != models.StatusReady {
		return ErrNodeNotReady
	}
	node.Status = models.StatusInProgress
	return nil
}

// UndoResult is the only backward transition. It clears the node's result
// and walks every downstream node that had consumed the departed teams,
// clearing slots and reverting statuses with an explicit worklist so the
// cascade never recurses.
func UndoResult(b *models.Bracket, nodeID string) error {
	node := b.Node(nodeID)
	if node == nil {
		return ErrNodeNotFound
	}
	// Bye nodes complete at generation time; there is nothing submitted to
	// take back.
	if node.Status != models.StatusCompleted || node.Bye || node.Result == nil {
		return ErrNoResultToUndo
	}

	winnerID := node.Result.WinnerID
	loserID, _ := opponentOf(node, winnerID)
	node.Result = nil
	node.Status = models.StatusReady

	type removal struct {
		nodeID string
		teamID string
	}
	queue := make([]removal, 0, 4)
	if node.NextNodeID != nil {
		queue = append(queue, removal{*node.NextNodeID, winnerID})
	}
	if node.NextLoserNodeID != nil {
		queue = append(queue, removal{*node.NextLoserNodeID, loserID})
	}

	for len(queue) > 0 {
		rm := queue[0]
		queue = queue[1:]

		target := b.Node(rm.nodeID)
		if target == nil {
			continue
		}
		slot := slotHolding(target, rm.teamID)
		if slot == nil {
			// The team never actually reached this node; nothing to clear.
			continue
		}

		if target.Status == models.StatusCompleted {
			// A stale winner further downstream is a correctness bug, so a
			// completed consumer loses its result and pulls its own
			// advancements back too.
			if target.Result != nil {
				w := target.Result.WinnerID
				l, _ := opponentOf(target, w)
				if target.NextNodeID != nil {
					queue = append(queue, removal{*target.NextNodeID, w})
				}
				if target.NextLoserNodeID != nil && l != "" {
					queue = append(queue, removal{*target.NextLoserNodeID, l})
				}
				target.Result = nil
			}
			target.Bye = false
		}

		slot.TeamID = nil
		refreshStatus(target)
	}
	return nil
}

// placeTeam writes a team into the downstream node's slot, preferring the
// slot wired to the source node and falling back to slot A before slot B.
func placeTeam(b *models.Bracket, targetID, fromNodeID, teamID string) {
	target := b.Node(targetID)
	if target == nil {
		return
	}
	slot := slotFromSource(target, fromNodeID)
	if slot == nil || slot.TeamID != nil {
		slot = firstOpenSlot(target)
	}
	if slot == nil {
		return
	}
	id := teamID
	slot.TeamID = &id
}

// autoResolve drains a worklist of node IDs, completing bye pairings and
// refreshing statuses. It runs at generation time to settle initial byes and
// after each submission to settle consolation slots that turned into byes.
func autoResolve(b *models.Bracket, queue []string) {
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		node := b.Node(id)
		if node == nil || node.Status == models.StatusCompleted || node.Status == models.StatusInProgress {
			continue
		}

		switch {
		case node.SlotA.Bye && node.SlotB.Bye:
			// Two byes met (possible in a consolation entry round); the
			// pairing collapses and forwards a bye with no result.
			node.Status = models.StatusCompleted
			node.Bye = true
			if node.NextNodeID != nil {
				markBye(b, *node.NextNodeID, node.ID)
				queue = append(queue, *node.NextNodeID)
			}
			if node.NextLoserNodeID != nil {
				markBye(b, *node.NextLoserNodeID, node.ID)
				queue = append(queue, *node.NextLoserNodeID)
			}

		case node.SlotA.Bye && node.SlotB.Resolved(), node.SlotB.Bye && node.SlotA.Resolved():
			teamID := node.ResolvedTeams()[0]
			node.Status = models.StatusCompleted
			node.Bye = true
			node.Result = &models.MatchResult{WinnerID: teamID}
			if node.NextNodeID != nil {
				placeTeam(b, *node.NextNodeID, node.ID, teamID)
				queue = append(queue, *node.NextNodeID)
			}
			if node.NextLoserNodeID != nil {
				markBye(b, *node.NextLoserNodeID, node.ID)
				queue = append(queue, *node.NextLoserNodeID)
			}

		default:
			refreshStatus(node)
		}
	}
}

// markBye flags the downstream slot wired to the source node as a bye.
func markBye(b *models.Bracket, targetID, fromNodeID string) {
	target := b.Node(targetID)
	if target == nil {
		return
	}
	if slot := slotFromSource(target, fromNodeID); slot != nil {
		slot.Bye = true
	}
}

// refreshStatus recomputes pending/ready from slot state. Completed and
// in-progress nodes are left alone; the undo cascade resets those
// explicitly before calling this.
func refreshStatus(n *models.BracketNode) {
	if n.Status == models.StatusInProgress {
		if n.SlotA.Resolved() && n.SlotB.Resolved() {
			return
		}
		n.Status = models.StatusPending
		return
	}
	if n.Status == models.StatusCompleted && n.Result == nil && !n.Bye {
		n.Status = models.StatusPending
	}
	if n.Status == models.StatusCompleted {
		return
	}
	if n.SlotA.Resolved() && n.SlotB.Resolved() {
		n.Status = models.StatusReady
	} else {
		n.Status = models.StatusPending
	}
}

func slotFromSource(n *models.BracketNode, fromNodeID string) *models.Slot {
	if n.SlotA.SourceNodeID != nil && *n.SlotA.SourceNodeID == fromNodeID {
		return &n.SlotA
	}
	if n.SlotB.SourceNodeID != nil && *n.SlotB.SourceNodeID == fromNodeID {
		return &n.SlotB
	}
	return nil
}

func firstOpenSlot(n *models.BracketNode) *models.Slot {
	if n.SlotA.TeamID == nil && !n.SlotA.Bye {
		return &n.SlotA
	}
	if n.SlotB.TeamID == nil && !n.SlotB.Bye {
		return &n.SlotB
	}
	return nil
}

func slotHolding(n *models.BracketNode, teamID string) *models.Slot {
	if n.SlotA.TeamID != nil && *n.SlotA.TeamID == teamID {
		return &n.SlotA
	}
	if n.SlotB.TeamID != nil && *n.SlotB.TeamID == teamID {
		return &n.SlotB
	}
	return nil
}

// opponentOf returns the other resolved team on the node, reporting whether
// the given team participates at all. A bye opponent yields an empty ID.
func opponentOf(n *models.BracketNode, teamID string) (string, bool) {
	a, bTeam := n.SlotA.TeamID, n.SlotB.TeamID
	switch {
	case a != nil && *a == teamID:
		if bTeam != nil {
			return *bTeam, true
		}
		return "", true
	case bTeam != nil && *bTeam == teamID:
		if a != nil {
			return *a, true
		}
		return "", true
	}
	return "", false
}
