package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/pkg/config"
)

// Event selects the notification template.
type Event string

const (
	EventUserRegistration      Event = "user_reg"
	EventTaskRegistration      Event = "task_reg"
	EventStudentRegistration   Event = "student_reg"
	EventStudentUnregistration Event = "student_unreg"
	EventMentorVerification    Event = "mentor_verification"
	EventMentorVerified        Event = "mentor_verified"
	EventAdminVerified         Event = "admin_verified"
)

// ParseEvent maps a wire value onto a known Event.
func ParseEvent(raw string) (Event, bool) {
	switch Event(raw) {
	case EventUserRegistration, EventTaskRegistration, EventStudentRegistration,
		EventStudentUnregistration, EventMentorVerification, EventMentorVerified,
		EventAdminVerified:
		return Event(raw), true
	}
	return "", false
}

// Message describes one outbound notification. ActorEmail parametrizes
// templates that mention the other party; TaskTitle and Text fill the
// event-specific slots.
type Message struct {
	Recipient  string
	Event      Event
	ActorEmail string
	TaskTitle  string
	Text       string
}

// Sender dispatches notification mail. Implementations must never block or
// fail the calling mutation.
type Sender interface {
	Send(msg Message)
}

// Metrics counts delivery outcomes.
type Metrics interface {
	MailSent()
	MailFailed()
}

// Mailer sends templated notification mail over SMTP. Delivery is
// fire-and-forget: failures are logged and counted, never propagated. The
// circuit breaker keeps a dead relay from accumulating dial attempts.
type Mailer struct {
	cfg     config.SMTPConfig
	logger  *zap.Logger
	breaker *gobreaker.CircuitBreaker
	metrics Metrics
}

// New constructs a Mailer.
func New(cfg config.SMTPConfig, logger *zap.Logger, metrics Metrics) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("mail breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Mailer{cfg: cfg, logger: logger, breaker: breaker, metrics: metrics}
}

// Send dispatches the message asynchronously.
func (m *Mailer) Send(msg Message) {
	if !m.cfg.Enabled {
		m.logger.Debug("mail disabled, dropping notification",
			zap.String("event", string(msg.Event)),
			zap.String("recipient", msg.Recipient),
		)
		return
	}

	go m.deliver(msg)
}

func (m *Mailer) deliver(msg Message) {
	subject, body := Compose(msg)

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.push(msg.Recipient, subject, body)
	})
	if err != nil {
		if m.metrics != nil {
			m.metrics.MailFailed()
		}
		m.logger.Warn("sending notification mail failed",
			zap.String("event", string(msg.Event)),
			zap.String("recipient", msg.Recipient),
			zap.Error(err),
		)
		return
	}

	if m.metrics != nil {
		m.metrics.MailSent()
	}
	m.logger.Info("notification mail sent",
		zap.String("event", string(msg.Event)),
		zap.String("recipient", msg.Recipient),
	)
}

func (m *Mailer) push(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: \"Open Source Contest\" <" + m.cfg.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, message); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
