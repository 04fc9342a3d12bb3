package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/service"
)

type TelemetryRepository struct {
	db *pgxpool.Pool
}

func NewTelemetryRepository(db *pgxpool.Pool) service.TelemetryRepository {
	return &TelemetryRepository{db: db}
}

// SavePing сохраняет запись телеметрии местоположения поездки
func (r *TelemetryRepository) SavePing(ctx context.Context, ping *models.JourneyPing) error {
	query := `
		INSERT INTO journey_pings (user_id, latitude, longitude, risk_level)
		VALUES ($1, $2, $3, $4) RETURNING id, recorded_at;
	`
	err := r.db.QueryRow(ctx, query,
		ping.UserID,
		ping.Latitude,
		ping.Longitude,
		ping.RiskLevel,
	).Scan(&ping.ID, &ping.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save journey ping: %w", err)
	}
	return nil
}

// CountActiveUsers возвращает количество уникальных пользователей с телеметрией
// за последние minutes минут
func (r *TelemetryRepository) CountActiveUsers(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT user_id)
		FROM journey_pings
		WHERE recorded_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return count, nil
}
