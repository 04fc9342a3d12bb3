package models

import (
	"time"

	"github.com/google/uuid"
)

// EscalationCause - причина открытия кейса эскалации
type EscalationCause string

const (
	CauseManual            EscalationCause = "manual"
	CauseMissedCheckIn     EscalationCause = "missed_check_in"
	CauseSustainedHighRisk EscalationCause = "sustained_high_risk"
)

// EscalationState - состояние кейса эскалации
type EscalationState string

const (
	EscalationOpened               EscalationState = "opened"
	EscalationContactsNotified     EscalationState = "contacts_notified"
	EscalationAuthoritiesContacted EscalationState = "authorities_contacted"
	EscalationResolved             EscalationState = "resolved"
)

// EscalationResolution - итог закрытия кейса
type EscalationResolution string

const (
	ResolutionUserCancelled        EscalationResolution = "user_cancelled"
	ResolutionAuthoritiesContacted EscalationResolution = "authorities_contacted"
)

// EscalationCase - кейс экстренной эскалации. На сессию может быть открыт
// максимум один кейс; попытка открыть второй отклоняется, а не ставится в очередь.
// Закрытый кейс архивируется, не удаляется.
type EscalationCase struct {
	ID                     uuid.UUID             `json:"id"`
	UserID                 string                `json:"user_id"`
	Cause                  EscalationCause       `json:"cause"`
	State                  EscalationState       `json:"state"`
	Message                string                `json:"message,omitempty"`
	Location               *Location             `json:"location,omitempty"`
	OpenedAt               time.Time             `json:"opened_at"`
	ContactsNotifiedAt     *time.Time            `json:"contacts_notified_at,omitempty"`
	AuthoritiesContactedAt *time.Time            `json:"authorities_contacted_at,omitempty"`
	ResolvedAt             *time.Time            `json:"resolved_at,omitempty"`
	Resolution             *EscalationResolution `json:"resolution,omitempty"`
}

// Open сообщает, открыт ли еще кейс (не достиг терминального закрытия)
func (c *EscalationCase) Open() bool {
	return c.ResolvedAt == nil
}

// Cancellable сообщает, можно ли еще отменить кейс. После выхода на
// authorities_contacted кейс заморожен и отмена должна отклоняться.
func (c *EscalationCase) Cancellable() bool {
	return c.State == EscalationOpened || c.State == EscalationContactsNotified
}

// Clone возвращает копию кейса для безопасной передачи за пределы цикла сессии
func (c *EscalationCase) Clone() *EscalationCase {
	cp := *c
	return &cp
}
