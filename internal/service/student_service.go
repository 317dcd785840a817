package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

type studentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	All(ctx context.Context) ([]models.Student, error)
	Insert(ctx context.Context, student *models.Student) (primitive.ObjectID, error)
}

type studentTaskRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
}

type studentMentorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error)
}

// StudentService covers student self-registration and lookups.
type StudentService struct {
	students  studentRepository
	tasks     studentTaskRepository
	mentors   studentMentorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(students studentRepository, tasks studentTaskRepository, mentors studentMentorRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, tasks: tasks, mentors: mentors, validator: validate, logger: logger}
}

// Student returns a single student with the registered task loaded.
func (s *StudentService) Student(ctx context.Context, studentID string) (*StudentView, error) {
	id, err := parseID(studentID, "student")
	if err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}

	return s.studentView(ctx, *student)
}

// Students returns every student with registered tasks loaded.
func (s *StudentService) Students(ctx context.Context) ([]StudentView, error) {
	students, err := s.students.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	views := make([]StudentView, 0, len(students))
	for _, student := range students {
		view, err := s.studentView(ctx, student)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// CreateStudent self-registers a new student. There is no approval gate.
func (s *StudentService) CreateStudent(ctx context.Context, input models.StudentInput) (*models.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "email and uid are required")
	}

	existing, err := s.students.FindByEmail(ctx, input.Email)
	if err != nil && !isNoDocuments(err) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for existing student")
	}
	if existing != nil {
		return nil, appErrors.Clonef(appErrors.ErrConflict,
			"Student with email %s already exists.", input.Email)
	}

	student := &models.Student{Email: input.Email, UID: input.UID}
	if _, err := s.students.Insert(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	return student, nil
}

// AllStudentEmails returns the email of every student.
func (s *StudentService) AllStudentEmails(ctx context.Context) ([]string, error) {
	students, err := s.students.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	emails := make([]string, 0, len(students))
	for _, student := range students {
		emails = append(emails, student.Email)
	}
	return emails, nil
}

func (s *StudentService) studentView(ctx context.Context, student models.Student) (*StudentView, error) {
	view := &StudentView{Student: student}
	if student.RegisteredTask == nil {
		return view, nil
	}

	task, err := s.tasks.FindByID(ctx, *student.RegisteredTask)
	if err != nil {
		if isNoDocuments(err) {
			return view, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch registered task")
	}
	view.RegisteredTask = task

	creator, err := s.mentors.FindByID(ctx, task.Creator)
	if err != nil {
		if isNoDocuments(err) {
			return view, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task creator")
	}
	view.TaskCreator = creator

	return view, nil
}
