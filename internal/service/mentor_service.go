package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/mailer"
	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

type mentorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error)
	FindByEmail(ctx context.Context, email string) (*models.Mentor, error)
	All(ctx context.Context) ([]models.Mentor, error)
	Insert(ctx context.Context, mentor *models.Mentor) (primitive.ObjectID, error)
}

type mentorTaskRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Task, error)
}

type mentorStudentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
}

// MentorService covers mentor self-registration, lookups and the mailing
// lists derived from mentor-created tasks.
type MentorService struct {
	mentors   mentorRepository
	tasks     mentorTaskRepository
	students  mentorStudentRepository
	mail      mailer.Sender
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMentorService constructs a MentorService instance.
func NewMentorService(mentors mentorRepository, tasks mentorTaskRepository, students mentorStudentRepository, mail mailer.Sender, validate *validator.Validate, logger *zap.Logger) *MentorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MentorService{mentors: mentors, tasks: tasks, students: students, mail: mail, validator: validate, logger: logger}
}

// Mentor returns a single mentor with created tasks loaded.
func (s *MentorService) Mentor(ctx context.Context, mentorID string) (*MentorView, error) {
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

	return s.mentorView(ctx, *mentor)
}

// Mentors returns every mentor with created tasks loaded.
func (s *MentorService) Mentors(ctx context.Context) ([]MentorView, error) {
	mentors, err := s.mentors.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentors")
	}

	views := make([]MentorView, 0, len(mentors))
	for _, mentor := range mentors {
		view, err := s.mentorView(ctx, mentor)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// CreateMentor self-registers a new, unverified mentor and sends the welcome
// notification.
func (s *MentorService) CreateMentor(ctx context.Context, input models.MentorInput) (*models.Mentor, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and uid are required")
	}

	existing, err := s.mentors.FindByEmail(ctx, input.Email)
	if err != nil && !isNoDocuments(err) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for existing mentor")
	}
	if existing != nil {
		return nil, appErrors.Clonef(appErrors.ErrConflict,
			"Mentor with email %s already exists.", input.Email)
	}

	mentor := &models.Mentor{
		Email:        input.Email,
		UID:          input.UID,
		IsVerified:   false,
		IsAdmin:      false,
		CreatedTasks: []primitive.ObjectID{},
	}
	if _, err := s.mentors.Insert(ctx, mentor); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mentor")
	}

	s.mail.Send(mailer.Message{
		Recipient: mentor.Email,
		Event:     mailer.EventUserRegistration,
	})

	return mentor, nil
}

// StudentEmails returns the emails of students registered to the given
// mentor's tasks.
func (s *MentorService) StudentEmails(ctx context.Context, mentorID string) ([]string, error) {
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

	emails := []string{}
	for _, taskID := range mentor.CreatedTasks {
		task, err := s.tasks.FindByID(ctx, taskID)
		if err != nil {
			if isNoDocuments(err) {
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task")
		}
		if task.RegisteredStudent == nil {
			continue
		}

		student, err := s.students.FindByID(ctx, *task.RegisteredStudent)
		if err != nil {
			if isNoDocuments(err) {
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
		}
		emails = append(emails, student.Email)
	}
	return emails, nil
}

// AllMentorEmails returns the email of every mentor.
func (s *MentorService) AllMentorEmails(ctx context.Context) ([]string, error) {
	mentors, err := s.mentors.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list mentors")
	}

	emails := make([]string, 0, len(mentors))
	for _, mentor := range mentors {
		emails = append(emails, mentor.Email)
	}
	return emails, nil
}

func (s *MentorService) mentorView(ctx context.Context, mentor models.Mentor) (*MentorView, error) {
	tasks, err := s.tasks.FindByIDs(ctx, mentor.CreatedTasks)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch created tasks")
	}
	return &MentorView{Mentor: mentor, CreatedTasks: tasks}, nil
}
