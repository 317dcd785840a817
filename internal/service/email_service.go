package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/mailer"
	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

type emailMentorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error)
}

// EmailService exposes the sendVerificationEmail operation used by the
// mentor verification flow.
type EmailService struct {
	mentors emailMentorRepository
	mail    mailer.Sender
	logger  *zap.Logger
}

// NewEmailService constructs an EmailService instance.
func NewEmailService(mentors emailMentorRepository, mail mailer.Sender, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{mentors: mentors, mail: mail, logger: logger}
}

// SendVerificationEmail dispatches a verification-flow notification. The
// "verified" confirmation types are admin only; the request type is open to
// authenticated mentors who are unverified or admins. A verified non-admin
// mentor has nothing left to request and is rejected.
func (s *EmailService) SendVerificationEmail(ctx context.Context, viewer *models.Claims, recipient, emailType, text string) (string, error) {
	event, ok := mailer.ParseEvent(emailType)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown email type")
	}

	if event == mailer.EventAdminVerified || event == mailer.EventMentorVerified {
		if viewer == nil || !viewer.IsAdmin {
			return "", appErrors.ErrUnauthenticated
		}
	}
	if viewer == nil || !viewer.IsMentor || (!viewer.IsAdmin && viewer.IsVerified) {
		return "", appErrors.ErrUnauthenticated
	}

	var actorEmail string
	if event == mailer.EventMentorVerification {
		id, err := parseID(viewer.UserID, "mentor")
		if err != nil {
			return "", err
		}
		mentor, err := s.mentors.FindByID(ctx, id)
		if err != nil {
			if isNoDocuments(err) {
				return "", appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
			}
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
		}
		actorEmail = mentor.Email
	}

	s.mail.Send(mailer.Message{
		Recipient:  recipient,
		Event:      event,
		ActorEmail: actorEmail,
		Text:       text,
	})

	return "Success", nil
}
