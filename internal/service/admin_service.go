package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/mailer"
	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

type adminStudentRepository interface {
	All(ctx context.Context) ([]models.Student, error)
	ClearRegisteredTask(ctx context.Context, id primitive.ObjectID) error
}

type adminTaskRepository interface {
	ClearRegistration(ctx context.Context, id primitive.ObjectID) error
}

type adminMentorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error)
	SetRights(ctx context.Context, id primitive.ObjectID, isVerified, isAdmin bool) error
}

// AdminService covers the admin-only bulk and rights operations.
type AdminService struct {
	students adminStudentRepository
	tasks    adminTaskRepository
	mentors  adminMentorRepository
	tx       transactionRunner
	mail     mailer.Sender
	logger   *zap.Logger
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(students adminStudentRepository, tasks adminTaskRepository, mentors adminMentorRepository, tx transactionRunner, mail mailer.Sender, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{students: students, tasks: tasks, mentors: mentors, tx: tx, mail: mail, logger: logger}
}

// UnregisterAllStudents clears every registration pair and returns one audit
// tuple per cleared pair. The whole sweep runs in one transaction; intended
// for moderate student populations, there is no batching.
func (s *AdminService) UnregisterAllStudents(ctx context.Context, viewer *models.Claims) ([]models.UnregRecord, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You do not have admin rights!")
	}

	records := []models.UnregRecord{}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		students, err := s.students.All(ctx)
		if err != nil {
			return err
		}

		for _, student := range students {
			if student.RegisteredTask == nil {
				continue
			}
			taskID := *student.RegisteredTask

			if err := s.tasks.ClearRegistration(ctx, taskID); err != nil {
				return err
			}
			if err := s.students.ClearRegisteredTask(ctx, student.ID); err != nil {
				return err
			}

			records = append(records, models.UnregRecord{
				StudentID: student.ID.Hex(),
				TaskID:    taskID.Hex(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unregister students")
	}

	return records, nil
}

// ChangeMentorRights overwrites both rights flags and notifies the mentor
// when verification or admin status is newly granted.
func (s *AdminService) ChangeMentorRights(ctx context.Context, viewer *models.Claims, mentorID string, isVerified, isAdmin bool) (*models.Mentor, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You do not have Admin rights!")
	}

	id, err := parseID(mentorID, "mentor")
	if err != nil {
		return nil, err
	}

	mentor, err := s.mentors.FindByID(ctx, id)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
	}

	if err := s.mentors.SetRights(ctx, id, isVerified, isAdmin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to change mentor rights")
	}

	if !mentor.IsAdmin && isAdmin {
		s.mail.Send(mailer.Message{
			Recipient: mentor.Email,
			Event:     mailer.EventAdminVerified,
			Text:      "You are now an Admin!",
		})
	} else if !mentor.IsVerified && isVerified {
		s.mail.Send(mailer.Message{
			Recipient: mentor.Email,
			Event:     mailer.EventMentorVerified,
			Text:      "You are now a verified Mentor!",
		})
	}

	mentor.IsVerified = isVerified
	mentor.IsAdmin = isAdmin
	return mentor, nil
}
