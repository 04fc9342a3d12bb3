package risk

import (
	"bytes"
	"testing"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine() *Machine {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return NewMachine(logger.WithField("test", true))
}

func TestMachine_InitialLevel(t *testing.T) {
	m := newTestMachine()
	assert.Equal(t, models.RiskLow, m.Current())
}

func TestMachine_SetValidLevel(t *testing.T) {
	m := newTestMachine()

	err := m.Set(models.RiskHigh)
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, m.Current())
}

func TestMachine_RejectInvalidLevel(t *testing.T) {
	m := newTestMachine()
	require.NoError(t, m.Set(models.RiskMedium))

	// Неизвестное значение отклоняется, текущий уровень не меняется
	err := m.Set(models.RiskLevel("critical"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidRiskLevel)
	assert.Equal(t, models.RiskMedium, m.Current())
}

func TestMachine_NotifyOnlyOnChange(t *testing.T) {
	// Подготовка
	m := newTestMachine()
	var calls []models.RiskLevel
	m.Subscribe(func(old, new models.RiskLevel) {
		calls = append(calls, new)
	})

	// Действие: повторная установка того же значения - no-op
	require.NoError(t, m.Set(models.RiskMedium))
	require.NoError(t, m.Set(models.RiskMedium))
	require.NoError(t, m.Set(models.RiskHigh))

	// Проверки: ровно одно уведомление на фактическую смену
	assert.Equal(t, []models.RiskLevel{models.RiskMedium, models.RiskHigh}, calls)
}

func TestMachine_SubscriberSeesOldAndNew(t *testing.T) {
	m := newTestMachine()
	var gotOld, gotNew models.RiskLevel
	m.Subscribe(func(old, new models.RiskLevel) {
		gotOld = old
		gotNew = new
	})

	require.NoError(t, m.Set(models.RiskHigh))

	assert.Equal(t, models.RiskLow, gotOld)
	assert.Equal(t, models.RiskHigh, gotNew)
}

func TestMachine_LastWriteWins(t *testing.T) {
	m := newTestMachine()

	require.NoError(t, m.Set(models.RiskHigh))
	require.NoError(t, m.Set(models.RiskLow))
	require.NoError(t, m.Set(models.RiskMedium))

	assert.Equal(t, models.RiskMedium, m.Current())
}
