package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/courtside/league-system/engine"
	"github.com/courtside/league-system/models"
	"github.com/courtside/league-system/realtime"
	"github.com/courtside/league-system/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Broadcaster is the realtime fan-out the services publish bracket events to.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// TournamentRoom names the websocket room for a tournament.
func TournamentRoom(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

// GenerateBracketParams carries the caller's format and seeding choices.
type GenerateBracketParams struct {
	Format        models.BracketFormat `json:"format"`
	SeedingMethod models.SeedingMethod `json:"seeding_method"`
	ManualSeeds   map[string]int       `json:"manual_seeds,omitempty"`
	Consolation   bool                 `json:"consolation,omitempty"`
}

// TournamentOverview is the aggregate read model for a tournament page: the
// bracket plus everything the query layer can derive from it.
type TournamentOverview struct {
	Bracket   *models.Bracket       `json:"bracket"`
	Roster    []models.Team         `json:"roster"`
	Live      []*models.BracketNode `json:"live_matches"`
	Upcoming  []*models.BracketNode `json:"upcoming_matches"`
	Completed []*models.BracketNode `json:"completed_matches"`
	Standings []models.Standing     `json:"standings,omitempty"`
	Champion  *models.Team          `json:"champion,omitempty"`
}

type BracketService interface {
	GenerateBracket(ctx context.Context, tournamentID int, params GenerateBracketParams) (*models.Bracket, error)
	GetBracket(ctx context.Context, tournamentID int) (*models.Bracket, error)
	GetOverview(ctx context.Context, tournamentID int) (*TournamentOverview, error)
	DeleteBracket(ctx context.Context, tournamentID int) error
}

type bracketService struct {
	bracketRepo repositories.BracketRepository
	teamRepo    repositories.TeamRepository
	broadcaster Broadcaster
	logger      *slog.Logger
	rand        *rand.Rand
}

func NewBracketService(
	bracketRepo repositories.BracketRepository,
	teamRepo repositories.TeamRepository,
	broadcaster Broadcaster,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		bracketRepo: bracketRepo,
		teamRepo:    teamRepo,
		broadcaster: broadcaster,
		logger:      logger,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *bracketService) GenerateBracket(ctx context.Context, tournamentID int, params GenerateBracketParams) (*models.Bracket, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	if len(teams) == 0 {
		return nil, ErrNoTeamsRegistered
	}

	bracket, err := engine.Generate(teams, params.Format, engine.GenerateOptions{
		SeedingMethod: params.SeedingMethod,
		ManualSeeds:   params.ManualSeeds,
		Rand:          s.rand,
		Consolation:   params.Consolation,
	})
	if err != nil {
		return nil, err
	}
	bracket.ID = uuid.New().String()
	bracket.TournamentID = tournamentID

	if err := s.bracketRepo.Create(ctx, bracket); err != nil {
		if errors.Is(err, repositories.ErrBracketConflict) {
			return nil, ErrBracketExists
		}
		return nil, err
	}

	s.logger.Info("bracket generated",
		"tournament_id", tournamentID,
		"bracket_id", bracket.ID,
		"format", bracket.Format,
		"teams", len(bracket.Teams),
		"matches", bracket.TotalMatches,
	)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(TournamentRoom(tournamentID), realtime.Message{
			Type:    realtime.EventBracketGenerated,
			Payload: bracket,
		})
	}
	return bracket, nil
}

func (s *bracketService) GetBracket(ctx context.Context, tournamentID int) (*models.Bracket, error) {
	bracket, err := s.bracketRepo.GetByTournament(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrBracketNotFound
		}
		return nil, err
	}
	return bracket, nil
}

// GetOverview assembles the tournament page in one call. The bracket and the
// roster load concurrently; the derived views are pure functions over the
// snapshot.
func (s *bracketService) GetOverview(ctx context.Context, tournamentID int) (*TournamentOverview, error) {
	var (
		bracket *models.Bracket
		teams   []models.Team
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bracket, err = s.bracketRepo.GetByTournament(gCtx, tournamentID)
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return ErrBracketNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The snapshot's team list is authoritative for the bracket itself; the
	// roster carries the registration subsystem's current records alongside.
	overview := &TournamentOverview{
		Bracket:   bracket,
		Roster:    teams,
		Live:      engine.LiveMatches(bracket),
		Upcoming:  engine.UpcomingMatches(bracket),
		Completed: engine.CompletedMatches(bracket),
	}
	if bracket.Format == models.FormatRoundRobin {
		overview.Standings = engine.Standings(bracket)
	}
	overview.Champion = engine.Champion(bracket)
	return overview, nil
}

func (s *bracketService) DeleteBracket(ctx context.Context, tournamentID int) error {
	err := s.bracketRepo.DeleteByTournament(ctx, tournamentID)
	if errors.Is(err, repositories.ErrBracketNotFound) {
		return ErrBracketNotFound
	}
	if err != nil {
		return err
	}
	s.logger.Info("bracket deleted", "tournament_id", tournamentID)
	return nil
}
