package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/service"
)

type ProfileRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewProfileRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ProfileRepository {
	return &ProfileRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Save создает или обновляет профиль пользователя
func (r *ProfileRepository) Save(ctx context.Context, profile *models.UserProfile) error {
	contacts, err := json.Marshal(profile.EmergencyContacts)
	if err != nil {
		return fmt.Errorf("failed to marshal emergency contacts: %w", err)
	}

	query := `
		INSERT INTO user_profiles (user_id, name, phone, risk_threshold, check_in_interval, off_route_tolerance, emergency_contacts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			risk_threshold = EXCLUDED.risk_threshold,
			check_in_interval = EXCLUDED.check_in_interval,
			off_route_tolerance = EXCLUDED.off_route_tolerance,
			emergency_contacts = EXCLUDED.emergency_contacts,
			updated_at = NOW()
		RETURNING created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Phone,
		profile.RiskThreshold,
		profile.CheckInInterval,
		profile.OffRouteTolerance,
		contacts,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	return nil
}

// GetByUserID возвращает профиль пользователя из бд
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	var contacts []byte

	query := `
		SELECT user_id, name, phone, risk_threshold, check_in_interval, off_route_tolerance, emergency_contacts, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1;
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Phone,
		&profile.RiskThreshold,
		&profile.CheckInInterval,
		&profile.OffRouteTolerance,
		&contacts,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user profile %s not found", userID)
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	if err := json.Unmarshal(contacts, &profile.EmergencyContacts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal emergency contacts: %w", err)
	}
	return profile, nil
}

// GetProfileFromCache пытается получить профиль из Redis
func (r *ProfileRepository) GetProfileFromCache(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := fmt.Sprintf("profile:%s", userID)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}

	profile := &models.UserProfile{}
	if err := json.Unmarshal(val, profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile from cache: %w", err)
	}
	return profile, nil
}

// SetProfileCache сохраняет профиль в Redis
func (r *ProfileRepository) SetProfileCache(ctx context.Context, profile *models.UserProfile) error {
	key := fmt.Sprintf("profile:%s", profile.UserID)
	val, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set profile in cache: %w", err)
	}
	return nil
}

// InvalidateProfileCache удаляет профиль из Redis кэша
func (r *ProfileRepository) InvalidateProfileCache(ctx context.Context, userID string) error {
	key := fmt.Sprintf("profile:%s", userID)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile cache: %w", err)
	}
	return nil
}
