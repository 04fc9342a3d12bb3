package alert

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/sirupsen/logrus"
)

// Worker - воркер доставки экстренных уведомлений. Читает события из очереди
// Redis и отправляет их на шлюз уведомлений (SMS-провайдер или интеграция
// экстренных служб) с HMAC-подписью и экспоненциальными повторами.
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.AlertTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting alert delivery worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping alert delivery worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка (очереди)
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, alertQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop alert event from Redis")
					time.Sleep(w.cfg.AlertTimeout) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				payload := result[1]
				var event Event
				if err := json.Unmarshal([]byte(payload), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal alert event from Redis")
					continue
				}

				w.processAlertEvent(ctx, event, payload)
			}
		}
	}()
}

func (w *Worker) processAlertEvent(ctx context.Context, event Event, rawPayload string) {
	log := w.logger.WithFields(logrus.Fields{
		"case_id":    event.CaseID,
		"alert_kind": event.Kind,
		"user_id":    event.UserID,
	})
	log.Debug("Processing alert event...")

	if w.cfg.AlertWebhookURL == "" {
		log.Warn("Alert gateway URL is not configured. Skipping alert delivery.")
		return
	}

	maxRetries := w.cfg.AlertMaxRetries
	baseDelay := w.cfg.AlertBaseDelay

	for i := 0; i < maxRetries; i++ {
		req, err := http.NewRequestWithContext(ctx, "POST", w.cfg.AlertWebhookURL, bytes.NewBufferString(rawPayload))
		if err != nil {
			log.WithError(err).Errorf("Failed to create alert request. Retries left: %d", maxRetries-1-i)
			continue
		}

		req.Header.Set("Content-Type", "application/json")

		// Добавляем HMAC подпись, если ALERT_WEBHOOK_SECRET задан
		if w.cfg.AlertWebhookSecret != "" {
			signature := generateHMACSHA256(rawPayload, w.cfg.AlertWebhookSecret)
			req.Header.Set("X-Alert-Signature", signature)
		}

		resp, err := w.httpClient.Do(req)
		if err != nil {
			log.WithError(err).Warnf("Failed to send alert. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
			time.Sleep(baseDelay)
			baseDelay *= 2 // Экспоненциальная задержка
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			resp.Body.Close()
			log.Info("Alert delivered successfully.")
			return
		}
		resp.Body.Close()
		log.Warnf("Alert delivery failed with status code %d. Retrying in %v. Retries left: %d", resp.StatusCode, baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver alert after %d retries.", maxRetries)
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
