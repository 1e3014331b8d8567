package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrBracketNotFound = errors.New("bracket not found")
	ErrBracketConflict = errors.New("tournament already has a bracket")
)

// BracketRepository stores whole bracket snapshots. The engine mutates the
// in-memory structure; the repository persists it as one JSON document after
// every mutation, which keeps the node arena and its ID cross-references
// intact without a relational mapping.
type BracketRepository interface {
	Create(ctx context.Context, bracket *models.Bracket) error
	GetByID(ctx context.Context, id string) (*models.Bracket, error)
	GetByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error)
	Update(ctx context.Context, bracket *models.Bracket) error
	DeleteByTournament(ctx context.Context, tournamentID int) error
}

type postgresBracketRepository struct {
	db SQLExecutor
}

func NewPostgresBracketRepository(db SQLExecutor) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) Create(ctx context.Context, bracket *models.Bracket) error {
	data, err := json.Marshal(bracket)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket %s: %w", bracket.ID, err)
	}

	query := `
		INSERT INTO brackets (id, tournament_id, format, data, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query,
		bracket.ID, bracket.TournamentID, string(bracket.Format), data, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrBracketConflict
		}
		return fmt.Errorf("failed to insert bracket %s: %w", bracket.ID, err)
	}
	return nil
}

func (r *postgresBracketRepository) GetByID(ctx context.Context, id string) (*models.Bracket, error) {
	query := `SELECT data FROM brackets WHERE id = $1`
	return r.scanBracket(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresBracketRepository) GetByTournament(ctx context.Context, tournamentID int) (*models.Bracket, error) {
	query := `SELECT data FROM brackets WHERE tournament_id = $1`
	return r.scanBracket(r.db.QueryRowContext(ctx, query, tournamentID))
}

func (r *postgresBracketRepository) Update(ctx context.Context, bracket *models.Bracket) error {
	data, err := json.Marshal(bracket)
	if err != nil {
		return fmt.Errorf("failed to marshal bracket %s: %w", bracket.ID, err)
	}

	query := `UPDATE brackets SET data = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, bracket.ID, data, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update bracket %s: %w", bracket.ID, err)
	}
	return checkAffectedRows(result, ErrBracketNotFound)
}

func (r *postgresBracketRepository) DeleteByTournament(ctx context.Context, tournamentID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brackets WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete bracket for tournament %d: %w", tournamentID, err)
	}
	return checkAffectedRows(result, ErrBracketNotFound)
}

func (r *postgresBracketRepository) scanBracket(row *sql.Row) (*models.Bracket, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to scan bracket row: %w", err)
	}
	var bracket models.Bracket
	if err := json.Unmarshal(data, &bracket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bracket snapshot: %w", err)
	}
	return &bracket, nil
}
