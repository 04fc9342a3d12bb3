package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	alertQueueKey = "alert_events"
)

// Kind - тип экстренного уведомления
type Kind string

const (
	KindContactAlert     Kind = "contact_alert"
	KindAuthoritiesAlert Kind = "authorities_alert"
	KindResolutionUpdate Kind = "resolution_update"
)

// Event - событие экстренного уведомления для очереди доставки.
// Каждое событие привязано к ровно одному кейсу эскалации, чтобы любой
// контакт властей был аудируем до кейса и причины.
type Event struct {
	Kind         Kind      `json:"kind"`
	CaseID       uuid.UUID `json:"case_id"`
	UserID       string    `json:"user_id"`
	Cause        string    `json:"cause"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Message      string    `json:"message"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher - интерфейс для публикации экстренных уведомлений
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая очередь в Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие уведомления в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}
