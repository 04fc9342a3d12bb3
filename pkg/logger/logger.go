package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер с заданным уровнем
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})

	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}

// ForSession возвращает логгер с полем user_id для логов одной сессии мониторинга
func ForSession(log *logrus.Logger, userID string) *logrus.Entry {
	return log.WithField("user_id", userID)
}
