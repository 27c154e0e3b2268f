package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/soltecla/solarops-api/internal/domain"
	"github.com/soltecla/solarops-api/internal/domain/entity"
	"github.com/soltecla/solarops-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

const teamColumns = `id, enterprise_id, name, description, created_at, updated_at`

// TeamRepo implementación del puerto TeamRepository sobre PostgreSQL
// (usable con pool o tx).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste una nueva cuadrilla.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	query := `
		INSERT INTO teams (` + teamColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.EnterpriseID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByIDAndEnterprise carga la cuadrilla SOLO si pertenece al tenant.
func (r *TeamRepo) GetByIDAndEnterprise(ctx context.Context, id, enterpriseID string) (*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1 AND enterprise_id = $2`
	return r.getOne(ctx, query, id, enterpriseID)
}

// GetByIDAndEnterpriseForUpdate carga la cuadrilla y bloquea la fila (SELECT
// FOR UPDATE): serializa reconciliaciones concurrentes de miembros.
func (r *TeamRepo) GetByIDAndEnterpriseForUpdate(ctx context.Context, id, enterpriseID string) (*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1 AND enterprise_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, id, enterpriseID)
}

func (r *TeamRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.EnterpriseID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// ListByEnterprise lista las cuadrillas del tenant.
func (r *TeamRepo) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*entity.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE enterprise_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.EnterpriseID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *TeamRepo) Update(ctx context.Context, t *entity.Team) error {
	query := `UPDATE teams SET name = $2, description = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Description, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// Delete elimina la cuadrilla; team_members cae en cascada.
func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// ListMemberIDs devuelve los user_id de los miembros de la cuadrilla.
func (r *TeamRepo) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT user_id FROM team_members WHERE team_id = $1 ORDER BY user_id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list member ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddMember inserta la asociación. Un user_id inexistente viola la FK.
func (r *TeamRepo) AddMember(ctx context.Context, teamID, userID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id, created_at) VALUES ($1, $2, now())`,
		teamID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrChildNotFound
		}
		return fmt.Errorf("add team member: %w", err)
	}
	return nil
}

// RemoveMember elimina la asociación.
func (r *TeamRepo) RemoveMember(ctx context.Context, teamID, userID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	return nil
}
