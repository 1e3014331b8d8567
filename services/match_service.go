package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courtside/league-system/engine"
	"github.com/courtside/league-system/models"
	"github.com/courtside/league-system/realtime"
	"github.com/courtside/league-system/repositories"
	"github.com/courtside/league-system/storage"
)

// SubmitResultParams carries a match outcome from the handler layer.
type SubmitResultParams struct {
	ScoreA   int    `json:"score_a"`
	ScoreB   int    `json:"score_b"`
	WinnerID string `json:"winner_id"`
}

type MatchService interface {
	StartMatch(ctx context.Context, tournamentID int, nodeID string) (*models.Bracket, error)
	SubmitResult(ctx context.Context, tournamentID int, nodeID string, params SubmitResultParams) (*models.Bracket, error)
	UndoResult(ctx context.Context, tournamentID int, nodeID string) (*models.Bracket, error)
}

type matchService struct {
	bracketRepo repositories.BracketRepository
	broadcaster Broadcaster
	archiver    storage.SnapshotArchiver
	logger      *slog.Logger
	locks       *bracketLocks
}

func NewMatchService(
	bracketRepo repositories.BracketRepository,
	broadcaster Broadcaster,
	archiver storage.SnapshotArchiver,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		bracketRepo: bracketRepo,
		broadcaster: broadcaster,
		archiver:    archiver,
		logger:      logger,
		locks:       newBracketLocks(),
	}
}

func (s *matchService) StartMatch(ctx context.Context, tournamentID int, nodeID string) (*models.Bracket, error) {
	return s.mutate(ctx, tournamentID, realtime.EventMatchStarted, func(b *models.Bracket) error {
		if err := engine.StartMatch(b, nodeID); err != nil {
			return err
		}
		s.logger.Info("match started", "tournament_id", tournamentID, "node_id", nodeID)
		return nil
	})
}

func (s *matchService) SubmitResult(ctx context.Context, tournamentID int, nodeID string, params SubmitResultParams) (*models.Bracket, error) {
	bracket, err := s.mutate(ctx, tournamentID, realtime.EventMatchResult, func(b *models.Bracket) error {
		if err := engine.SubmitResult(b, nodeID, params.ScoreA, params.ScoreB, params.WinnerID); err != nil {
			return err
		}
		s.logger.Info("match result submitted",
			"tournament_id", tournamentID,
			"node_id", nodeID,
			"winner_id", params.WinnerID,
			"score", fmt.Sprintf("%d-%d", params.ScoreA, params.ScoreB),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if champion := engine.Champion(bracket); champion != nil {
		s.onChampionDecided(ctx, bracket, champion)
	}
	return bracket, nil
}

func (s *matchService) UndoResult(ctx context.Context, tournamentID int, nodeID string) (*models.Bracket, error) {
	return s.mutate(ctx, tournamentID, realtime.EventResultUndone, func(b *models.Bracket) error {
		if err := engine.UndoResult(b, nodeID); err != nil {
			return err
		}
		s.logger.Info("match result undone", "tournament_id", tournamentID, "node_id", nodeID)
		return nil
	})
}

// mutate runs one engine operation under the tournament's lock: load the
// snapshot, apply, persist, broadcast. A failed apply leaves the stored
// snapshot untouched.
func (s *matchService) mutate(ctx context.Context, tournamentID int, eventType string, apply func(*models.Bracket) error) (*models.Bracket, error) {
	unlock := s.locks.Acquire(TournamentRoom(tournamentID))
	defer unlock()

	bracket, err := s.bracketRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrBracketNotFound
		}
		return nil, err
	}

	if err := apply(bracket); err != nil {
		return nil, err
	}

	if err := s.bracketRepo.Update(ctx, bracket); err != nil {
		return nil, fmt.Errorf("failed to persist bracket %s: %w", bracket.ID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(TournamentRoom(tournamentID), realtime.Message{
			Type:    eventType,
			Payload: bracket,
		})
	}
	return bracket, nil
}

// onChampionDecided announces the winner and archives the finished snapshot.
// Archiving is best-effort: the result is already persisted, so a storage
// failure only costs the export.
func (s *matchService) onChampionDecided(ctx context.Context, bracket *models.Bracket, champion *models.Team) {
	s.logger.Info("champion decided",
		"tournament_id", bracket.TournamentID,
		"bracket_id", bracket.ID,
		"champion_id", champion.ID,
		"champion_name", champion.Name,
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(TournamentRoom(bracket.TournamentID), realtime.Message{
			Type: realtime.EventChampionDecided,
			Payload: map[string]interface{}{
				"tournament_id": bracket.TournamentID,
				"champion":      champion,
			},
		})
	}

	if s.archiver == nil {
		return
	}
	data, err := json.Marshal(bracket)
	if err != nil {
		s.logger.Error("failed to marshal bracket for archive", "bracket_id", bracket.ID, "error", err)
		return
	}
	key := fmt.Sprintf("brackets/tournament_%d/%s.json", bracket.TournamentID, bracket.ID)
	result, err := s.archiver.Upload(ctx, key, "application/json", data)
	if err != nil {
		s.logger.Error("failed to archive bracket snapshot", "bracket_id", bracket.ID, "error", err)
		return
	}
	s.logger.Info("bracket snapshot archived", "bracket_id", bracket.ID, "location", result.Location)
}
