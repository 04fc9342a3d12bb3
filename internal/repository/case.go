package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/service"
)

type CaseRepository struct {
	db *pgxpool.Pool
}

func NewCaseRepository(db *pgxpool.Pool) service.CaseRepository {
	return &CaseRepository{db: db}
}

// Create записывает новый кейс эскалации в архив
func (r *CaseRepository) Create(ctx context.Context, c *models.EscalationCase) error {
	var lat, lng *float64
	if c.Location != nil {
		lat = &c.Location.Latitude
		lng = &c.Location.Longitude
	}

	query := `
		INSERT INTO escalation_cases
			(id, user_id, cause, state, resolution, message, latitude, longitude,
			 opened_at, contacts_notified_at, authorities_contacted_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.UserID,
		c.Cause,
		c.State,
		c.Resolution,
		c.Message,
		lat,
		lng,
		c.OpenedAt,
		c.ContactsNotifiedAt,
		c.AuthoritiesContactedAt,
		c.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create escalation case: %w", err)
	}
	return nil
}

// Update обновляет состояние архивированного кейса. Кейсы не удаляются.
func (r *CaseRepository) Update(ctx context.Context, c *models.EscalationCase) error {
	query := `
		UPDATE escalation_cases SET
			state = $1,
			resolution = $2,
			contacts_notified_at = $3,
			authorities_contacted_at = $4,
			resolved_at = $5
		WHERE id = $6;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		c.State,
		c.Resolution,
		c.ContactsNotifiedAt,
		c.AuthoritiesContactedAt,
		c.ResolvedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update escalation case: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("escalation case %s not found for update", c.ID)
	}
	return nil
}

// GetByID возвращает кейс по его UUID
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EscalationCase, error) {
	c := &models.EscalationCase{}
	var lat, lng *float64

	query := `
		SELECT id, user_id, cause, state, resolution, message, latitude, longitude,
		       opened_at, contacts_notified_at, authorities_contacted_at, resolved_at
		FROM escalation_cases
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Cause,
		&c.State,
		&c.Resolution,
		&c.Message,
		&lat,
		&lng,
		&c.OpenedAt,
		&c.ContactsNotifiedAt,
		&c.AuthoritiesContactedAt,
		&c.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("escalation case %s not found", id)
		}
		return nil, fmt.Errorf("failed to get escalation case: %w", err)
	}

	if lat != nil && lng != nil {
		c.Location = &models.Location{Latitude: *lat, Longitude: *lng}
	}
	return c, nil
}

// ListByUser возвращает архив кейсов пользователя с пагинацией
func (r *CaseRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*models.EscalationCase, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT id, user_id, cause, state, resolution, message, latitude, longitude,
		       opened_at, contacts_notified_at, authorities_contacted_at, resolved_at
		FROM escalation_cases
		WHERE user_id = $1
		ORDER BY opened_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list escalation cases: %w", err)
	}
	defer rows.Close()

	cases := make([]*models.EscalationCase, 0)
	for rows.Next() {
		c := &models.EscalationCase{}
		var lat, lng *float64
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Cause,
			&c.State,
			&c.Resolution,
			&c.Message,
			&lat,
			&lng,
			&c.OpenedAt,
			&c.ContactsNotifiedAt,
			&c.AuthoritiesContactedAt,
			&c.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan escalation case row: %w", err)
		}
		if lat != nil && lng != nil {
			c.Location = &models.Location{Latitude: *lat, Longitude: *lng}
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error case list iteration: %w", err)
	}
	return cases, nil
}
