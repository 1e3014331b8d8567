package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside/league-system/models"
)

var ErrTeamNotFound = errors.New("team not found")

// TeamRepository is the read-only view onto the registration subsystem's
// roster. The engine never writes teams.
type TeamRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
}

type postgresTeamRepository struct {
	db SQLExecutor
}

func NewPostgresTeamRepository(db SQLExecutor) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT id, name, power_rating, wins, losses
		FROM teams
		WHERE tournament_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `SELECT id, name, power_rating, wins, losses FROM teams WHERE id = $1`
	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func scanTeam(scanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var team models.Team
	var rating sql.NullFloat64
	var wins, losses sql.NullInt64
	if err := scanner.Scan(&team.ID, &team.Name, &rating, &wins, &losses); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan team row: %w", err)
	}
	if rating.Valid {
		v := rating.Float64
		team.PowerRating = &v
	}
	if wins.Valid || losses.Valid {
		team.Record = &models.TeamRecord{Wins: int(wins.Int64), Losses: int(losses.Int64)}
	}
	return &team, nil
}
