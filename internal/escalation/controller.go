package escalation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safetrail_monitoring/internal/alert"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrAlreadyOpen возвращается при попытке открыть кейс, пока другой открыт.
	// Дубликат отклоняется, а не ставится в очередь, чтобы UI мог перенаправить
	// пользователя на существующий кейс.
	ErrAlreadyOpen = fmt.Errorf("escalation: case already open")
	// ErrNotCancellable возвращается при отмене после выхода на власти
	ErrNotCancellable = fmt.Errorf("escalation: case is no longer cancellable")
	// ErrNotResolvable возвращается при Resolve кейса, который еще можно отменить
	ErrNotResolvable = fmt.Errorf("escalation: case is still cancellable, use cancel")
	// ErrNoOpenCase возвращается для операций над отсутствующим или чужим кейсом
	ErrNoOpenCase = fmt.Errorf("escalation: no matching open case")
)

// Loop - управляющий цикл, на который сериализуются переходы кейса
type Loop interface {
	Post(fn func()) bool
}

// CaseArchiver архивирует кейсы эскалации. Кейсы никогда не удаляются.
type CaseArchiver interface {
	Create(ctx context.Context, c *models.EscalationCase) error
	Update(ctx context.Context, c *models.EscalationCase) error
}

// Controller - контроллер экстренной эскалации одной сессии. Единственный
// компонент, которому разрешено объявлять чрезвычайную ситуацию активной или
// разрешенной, и единственный путь к запросу контакта экстренных служб:
// каждый такой запрос аудируем до ровно одного кейса и одной причины.
//
// Машина состояний кейса: opened -> contacts_notified (синхронный best-effort
// фан-аут по доверенным контактам) -> authorities_contacted по таймеру, если
// не было отмены -> закрытие через Resolve. Отмена до таймера закрывает кейс
// как user_cancelled.
type Controller struct {
	loop      Loop
	log       *logrus.Entry
	publisher alert.Publisher
	archiver  CaseArchiver

	userID           string
	contacts         []models.EmergencyContact
	authoritiesDelay time.Duration

	open      *models.EscalationCase
	authTimer *time.Timer

	archiveJobs chan archiveJob
	archiveStop sync.Once

	// onEvent вызывается на каждом переходе кейса (для UI-уведомлений)
	onEvent func(c *models.EscalationCase)
	// onClosed вызывается после закрытия кейса (возобновление check-in)
	onClosed func(c *models.EscalationCase)
}

// NewController создает контроллер эскалации для одной сессии
func NewController(userID string, contacts []models.EmergencyContact, authoritiesDelay time.Duration,
	publisher alert.Publisher, archiver CaseArchiver, log *logrus.Entry, loop Loop,
) *Controller {
	c := &Controller{
		loop:             loop,
		log:              log.WithField("component", "escalation"),
		publisher:        publisher,
		archiver:         archiver,
		userID:           userID,
		contacts:         contacts,
		authoritiesDelay: authoritiesDelay,
		onEvent:          func(*models.EscalationCase) {},
		onClosed:         func(*models.EscalationCase) {},
	}
	if archiver != nil {
		c.archiveJobs = make(chan archiveJob, 16)
		go c.archiveLoop()
	}
	return c
}

// OnEvent задает обработчик переходов кейса
func (c *Controller) OnEvent(cb func(*models.EscalationCase)) { c.onEvent = cb }

// OnClosed задает обработчик закрытия кейса
func (c *Controller) OnClosed(cb func(*models.EscalationCase)) { c.onClosed = cb }

// HasOpen сообщает, открыт ли сейчас кейс. Вызывается только с цикла сессии.
func (c *Controller) HasOpen() bool { return c.open != nil }

// OpenCase возвращает копию открытого кейса или nil.
// Вызывается только с цикла сессии.
func (c *Controller) OpenCase() *models.EscalationCase {
	if c.open == nil {
		return nil
	}
	return c.open.Clone()
}

// Trigger открывает новый кейс эскалации. На сессию допускается максимум один
// открытый кейс; повторный триггер любой причины отклоняется с ErrAlreadyOpen.
// Вызывается только с цикла сессии.
func (c *Controller) Trigger(cause models.EscalationCause, loc *models.Location, message string) (*models.EscalationCase, error) {
	if c.open != nil {
		c.log.WithField("cause", cause).Warn("Escalation trigger rejected, case already open")
		return nil, ErrAlreadyOpen
	}

	now := time.Now()
	esc := &models.EscalationCase{
		ID:       uuid.New(),
		UserID:   c.userID,
		Cause:    cause,
		State:    models.EscalationOpened,
		Message:  message,
		Location: loc,
		OpenedAt: now,
	}
	c.open = esc

	log := c.log.WithFields(logrus.Fields{"case_id": esc.ID, "cause": cause})
	log.Warn("Emergency escalation case opened")

	// Этап 1: best-effort уведомление доверенных контактов. Частичные сбои
	// логируются по каждому контакту и не блокируют продвижение кейса.
	c.notifyContacts(esc)
	notifiedAt := time.Now()
	esc.ContactsNotifiedAt = &notifiedAt
	esc.State = models.EscalationContactsNotified
	c.archive(esc, true)
	c.onEvent(esc.Clone())

	// Этап 2: контакт властей по таймеру, если не будет отмены
	c.authTimer = time.AfterFunc(c.authoritiesDelay, func() {
		c.loop.Post(func() { c.contactAuthorities(esc.ID) })
	})
	log.WithField("delay", c.authoritiesDelay.String()).Info("Authorities contact timer armed")

	return esc.Clone(), nil
}

// Cancel отменяет открытый кейс. Разрешена только до контакта властей;
// после authorities_contacted кейс заморожен и отмена отклоняется громко,
// чтобы UI не мог утверждать, что отмена еще возможна.
// Вызывается только с цикла сессии.
func (c *Controller) Cancel(caseID uuid.UUID) error {
	if c.open == nil || c.open.ID != caseID {
		return ErrNoOpenCase
	}
	if !c.open.Cancellable() {
		c.log.WithField("case_id", caseID).Warn("Cancel rejected, authorities already contacted")
		return ErrNotCancellable
	}
	if c.authTimer != nil {
		c.authTimer.Stop()
		c.authTimer = nil
	}

	resolution := models.ResolutionUserCancelled
	c.closeCase(resolution)
	c.log.WithField("case_id", caseID).Info("Escalation case cancelled by user")
	return nil
}

// Resolve закрывает кейс после контакта властей. Для еще отменяемого кейса
// возвращает ErrNotResolvable: правильный путь закрытия - Cancel.
// Вызывается только с цикла сессии.
func (c *Controller) Resolve(caseID uuid.UUID) error {
	if c.open == nil || c.open.ID != caseID {
		return ErrNoOpenCase
	}
	if c.open.State != models.EscalationAuthoritiesContacted {
		return ErrNotResolvable
	}

	c.closeCase(models.ResolutionAuthoritiesContacted)
	c.log.WithField("case_id", caseID).Info("Escalation case resolved")
	return nil
}

// Shutdown останавливает таймер властей при разборе сессии. Открытый кейс
// остается в архиве в своем последнем состоянии; очередь архива дописывает
// уже принятые снимки и завершается.
func (c *Controller) Shutdown() {
	if c.authTimer != nil {
		c.authTimer.Stop()
		c.authTimer = nil
	}
	if c.archiveJobs != nil {
		c.archiveStop.Do(func() { close(c.archiveJobs) })
	}
}

func (c *Controller) contactAuthorities(caseID uuid.UUID) {
	if c.open == nil || c.open.ID != caseID || c.open.State != models.EscalationContactsNotified {
		return
	}
	esc := c.open
	now := time.Now()
	esc.AuthoritiesContactedAt = &now
	esc.State = models.EscalationAuthoritiesContacted
	c.authTimer = nil

	c.log.WithFields(logrus.Fields{"case_id": esc.ID, "cause": esc.Cause}).
		Warn("No cancellation before deadline, contacting authorities")

	event := alert.Event{
		Kind:      alert.KindAuthoritiesAlert,
		CaseID:    esc.ID,
		UserID:    esc.UserID,
		Cause:     string(esc.Cause),
		Message:   authoritiesMessage(esc),
		Timestamp: now,
	}
	if esc.Location != nil {
		event.Latitude = &esc.Location.Latitude
		event.Longitude = &esc.Location.Longitude
	}
	if err := c.publisher.Publish(context.Background(), event); err != nil {
		c.log.WithError(err).Error("Failed to publish authorities alert")
	}

	c.archive(esc, false)
	c.onEvent(esc.Clone())
}

func (c *Controller) closeCase(resolution models.EscalationResolution) {
	esc := c.open
	now := time.Now()
	esc.ResolvedAt = &now
	esc.Resolution = &resolution
	esc.State = models.EscalationResolved
	c.open = nil

	// Контакты получают уведомление о разрешении ситуации
	c.publishResolutionUpdate(esc)
	c.archive(esc, false)
	c.onEvent(esc.Clone())
	c.onClosed(esc.Clone())
}

func (c *Controller) notifyContacts(esc *models.EscalationCase) {
	if len(c.contacts) == 0 {
		c.log.WithField("case_id", esc.ID).Warn("No emergency contacts configured for user")
		return
	}
	for _, contact := range c.contacts {
		event := alert.Event{
			Kind:         alert.KindContactAlert,
			CaseID:       esc.ID,
			UserID:       esc.UserID,
			Cause:        string(esc.Cause),
			ContactName:  contact.Name,
			ContactPhone: contact.Phone,
			Message:      contactMessage(esc),
			Timestamp:    time.Now(),
		}
		if esc.Location != nil {
			event.Latitude = &esc.Location.Latitude
			event.Longitude = &esc.Location.Longitude
		}
		if err := c.publisher.Publish(context.Background(), event); err != nil {
			// Сбой доставки одному контакту не блокирует остальных
			c.log.WithError(err).WithField("contact", contact.Name).Error("Failed to publish contact alert")
			continue
		}
		c.log.WithFields(logrus.Fields{"case_id": esc.ID, "contact": contact.Name}).Info("Emergency alert queued for contact")
	}
}

func (c *Controller) publishResolutionUpdate(esc *models.EscalationCase) {
	for _, contact := range c.contacts {
		event := alert.Event{
			Kind:         alert.KindResolutionUpdate,
			CaseID:       esc.ID,
			UserID:       esc.UserID,
			Cause:        string(esc.Cause),
			ContactName:  contact.Name,
			ContactPhone: contact.Phone,
			Message:      fmt.Sprintf("SafeTrail update: RESOLVED (%s).", *esc.Resolution),
			Timestamp:    time.Now(),
		}
		if err := c.publisher.Publish(context.Background(), event); err != nil {
			c.log.WithError(err).WithField("contact", contact.Name).Error("Failed to publish resolution update")
		}
	}
}

type archiveJob struct {
	snapshot *models.EscalationCase
	created  bool
}

// archive ставит снимок кейса в очередь архива. Запись в БД не блокирует
// переходы состояния. Вызывается только с цикла сессии.
func (c *Controller) archive(esc *models.EscalationCase, created bool) {
	if c.archiver == nil {
		return
	}
	c.archiveJobs <- archiveJob{snapshot: esc.Clone(), created: created}
}

// archiveLoop пишет снимки строго в порядке переходов кейса: поздний снимок
// не может обогнать ранний и затереть разрешение кейса устаревшим состоянием.
func (c *Controller) archiveLoop() {
	for job := range c.archiveJobs {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		var err error
		if job.created {
			err = c.archiver.Create(ctx, job.snapshot)
		} else {
			err = c.archiver.Update(ctx, job.snapshot)
		}
		cancel()
		if err != nil {
			c.log.WithError(err).WithField("case_id", job.snapshot.ID).Error("Failed to archive escalation case")
		}
	}
}

func contactMessage(esc *models.EscalationCase) string {
	msg := "SAFETRAIL EMERGENCY ALERT\n\n" + esc.Message
	if esc.Location != nil {
		msg += fmt.Sprintf("\n\nLast known location:\nLatitude: %f\nLongitude: %f\nGoogle Maps: https://maps.google.com/?q=%f,%f",
			esc.Location.Latitude, esc.Location.Longitude, esc.Location.Latitude, esc.Location.Longitude)
	}
	msg += "\n\nPlease check on this person immediately or contact local authorities."
	return msg
}

func authoritiesMessage(esc *models.EscalationCase) string {
	return fmt.Sprintf(
		"AUTOMATED SAFETY ALERT - SafeTrail\n\nUser ID: %s\nReason: %s\nDetails: %s\n\nThis is an automated alert from the SafeTrail safety monitoring system. The user was unresponsive to safety check-ins or triggered an emergency.",
		esc.UserID, esc.Cause, esc.Message)
}
