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

type taskRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	All(ctx context.Context) ([]models.Task, error)
	Free(ctx context.Context) ([]models.Task, error)
	Taken(ctx context.Context) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, title, details, link string) error
	SetRegisteredStudent(ctx context.Context, id, studentID primitive.ObjectID) error
	ClearRegistration(ctx context.Context, id primitive.ObjectID) error
	SetProgress(ctx context.Context, id primitive.ObjectID, isSolved, isBeingSolved bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type taskStudentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	SetRegisteredTask(ctx context.Context, id, taskID primitive.ObjectID) error
	ClearRegisteredTask(ctx context.Context, id primitive.ObjectID) error
}

type taskMentorRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error)
	PushCreatedTask(ctx context.Context, id, taskID primitive.ObjectID) error
	PullCreatedTask(ctx context.Context, id, taskID primitive.ObjectID) error
}

// TaskService implements the task lifecycle: creation by verified mentors,
// the free/taken registration state machine, progress tracking and deletion.
// Every guard runs before the first write, and paired cross-document writes
// run inside one transaction.
type TaskService struct {
	tasks     taskRepository
	students  taskStudentRepository
	mentors   taskMentorRepository
	tx        transactionRunner
	mail      mailer.Sender
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs a TaskService instance.
func NewTaskService(tasks taskRepository, students taskStudentRepository, mentors taskMentorRepository, tx transactionRunner, mail mailer.Sender, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{tasks: tasks, students: students, mentors: mentors, tx: tx, mail: mail, validator: validate, logger: logger}
}

// Task returns a single task with creator and registered student loaded.
func (s *TaskService) Task(ctx context.Context, taskID string) (*TaskView, error) {
	id, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task")
	}

	return s.taskView(ctx, *task)
}

// AllTasks returns every task.
func (s *TaskService) AllTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := s.tasks.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	return s.taskViews(ctx, tasks)
}

// FreeTasks returns tasks without a registered student.
func (s *TaskService) FreeTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := s.tasks.Free(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list free tasks")
	}
	return s.taskViews(ctx, tasks)
}

// TakenTasks returns tasks with a registered student.
func (s *TaskService) TakenTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := s.tasks.Taken(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list taken tasks")
	}
	return s.taskViews(ctx, tasks)
}

// CreateTask inserts a task for a verified mentor and appends it to the
// mentor's createdTasks, both inside one transaction.
func (s *TaskService) CreateTask(ctx context.Context, viewer *models.Claims, input models.TaskInput) (*TaskView, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsMentor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Only Mentors can create Tasks!")
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and details are required")
	}

	creatorID, err := parseID(viewer.UserID, "mentor")
	if err != nil {
		return nil, err
	}

	creator, err := s.mentors.FindByID(ctx, creatorID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Mentor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch mentor")
	}
	if !creator.IsVerified {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You are not verified Mentor")
	}

	task := &models.Task{
		Title:         input.Title,
		Details:       input.Details,
		Link:          input.Link,
		IsSolved:      false,
		IsBeingSolved: false,
		Creator:       creatorID,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		taskID, err := s.tasks.Insert(ctx, task)
		if err != nil {
			return err
		}
		return s.mentors.PushCreatedTask(ctx, creatorID, taskID)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}

	return &TaskView{Task: *task, Creator: creator}, nil
}

// UpdateTask overwrites title, details and link. Non-admin mentors may only
// update their own tasks.
func (s *TaskService) UpdateTask(ctx context.Context, viewer *models.Claims, input models.TaskInput) (*TaskView, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsMentor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Only Mentors can update Tasks!")
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "title and details are required")
	}

	id, err := parseID(input.ID, "task")
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task")
	}

	if !viewer.IsAdmin && task.Creator.Hex() != viewer.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden,
			"You aren't creator of this Task and don't have Admin rights.")
	}

	if err := s.tasks.UpdateDetails(ctx, id, input.Title, input.Details, input.Link); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}

	task.Title = input.Title
	task.Details = input.Details
	task.Link = input.Link
	return s.taskView(ctx, *task)
}

// RegisterTask moves a free task into the taken state for the named student.
// Students may only register themselves; admins may register anyone; plain
// mentors are rejected. Both reference writes run inside one transaction and
// both existence/conflict checks are re-run there, so two concurrent
// registrations cannot both commit.
func (s *TaskService) RegisterTask(ctx context.Context, viewer *models.Claims, studentID, taskID string) (*TaskView, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsAdmin && viewer.IsMentor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Only Students and Admins can register to Tasks!")
	}
	if !viewer.IsMentor && viewer.UserID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Students cannot register Tasks for others!")
	}

	sID, err := parseID(studentID, "student")
	if err != nil {
		return nil, err
	}
	tID, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}

	var (
		student *models.Student
		task    *models.Task
	)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		student, err = s.students.FindByID(ctx, sID)
		if err != nil {
			if isNoDocuments(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "Student not found.")
			}
			return err
		}
		if student.RegisteredTask != nil {
			return appErrors.Clone(appErrors.ErrConflict, "Student can only have one Task at a time.")
		}

		task, err = s.tasks.FindByID(ctx, tID)
		if err != nil {
			if isNoDocuments(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "Task not found.")
			}
			return err
		}
		if task.RegisteredStudent != nil {
			return appErrors.Clone(appErrors.ErrConflict, "Task has already been taken.")
		}

		if err := s.students.SetRegisteredTask(ctx, sID, tID); err != nil {
			return err
		}
		return s.tasks.SetRegisteredStudent(ctx, tID, sID)
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	task.RegisteredStudent = &sID
	student.RegisteredTask = &tID

	creator, err := s.mentors.FindByID(ctx, task.Creator)
	if err != nil {
		s.logger.Warn("failed to load task creator for notification", zap.Error(err))
	} else {
		s.mail.Send(mailer.Message{
			Recipient:  creator.Email,
			Event:      mailer.EventTaskRegistration,
			ActorEmail: student.Email,
			TaskTitle:  task.Title,
		})
	}
	s.mail.Send(mailer.Message{
		Recipient: student.Email,
		Event:     mailer.EventStudentRegistration,
		TaskTitle: task.Title,
	})

	return &TaskView{Task: *task, Creator: creator, RegisteredStudent: student}, nil
}

// UnregisterTask reverses a registration. Both sides must still reference
// each other, which rejects stale or mismatched requests. Progress flags are
// reset so the freed task starts from scratch.
func (s *TaskService) UnregisterTask(ctx context.Context, viewer *models.Claims, studentID, taskID string) (*TaskView, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsAdmin && viewer.IsMentor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Only Students and Admins can unregister from Tasks!")
	}
	if !viewer.IsMentor && viewer.UserID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Students can unregister only their own Task!")
	}

	sID, err := parseID(studentID, "student")
	if err != nil {
		return nil, err
	}
	tID, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}

	var (
		student *models.Student
		task    *models.Task
	)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		student, err = s.students.FindByID(ctx, sID)
		if err != nil {
			if isNoDocuments(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "Student not found.")
			}
			return err
		}
		if student.RegisteredTask == nil || *student.RegisteredTask != tID {
			return appErrors.Clonef(appErrors.ErrConflict,
				"Student %s is not registered to Task %s", studentID, taskID)
		}

		task, err = s.tasks.FindByID(ctx, tID)
		if err != nil {
			if isNoDocuments(err) {
				return appErrors.Clone(appErrors.ErrNotFound, "Task not found.")
			}
			return err
		}
		if task.RegisteredStudent == nil || *task.RegisteredStudent != sID {
			return appErrors.Clonef(appErrors.ErrConflict,
				"Task %s doesn't have registered Student %s", taskID, studentID)
		}

		if err := s.students.ClearRegisteredTask(ctx, sID); err != nil {
			return err
		}
		return s.tasks.ClearRegistration(ctx, tID)
	})
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	task.RegisteredStudent = nil
	task.IsSolved = false
	task.IsBeingSolved = false
	student.RegisteredTask = nil

	creator, err := s.mentors.FindByID(ctx, task.Creator)
	if err != nil {
		s.logger.Warn("failed to load task creator for notification", zap.Error(err))
	} else {
		s.mail.Send(mailer.Message{
			Recipient:  creator.Email,
			Event:      mailer.EventStudentUnregistration,
			ActorEmail: student.Email,
			TaskTitle:  task.Title,
		})
	}

	return &TaskView{Task: *task, Creator: creator}, nil
}

// DeleteTask removes a free task. The task id is pulled from the creator's
// createdTasks and the document deleted inside one transaction.
func (s *TaskService) DeleteTask(ctx context.Context, viewer *models.Claims, taskID string) (*TaskView, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if !viewer.IsMentor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Only Mentors and Admins can delete Tasks!")
	}

	tID, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, tID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clonef(appErrors.ErrNotFound, "Task %s does not exist.", taskID)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task")
	}

	if task.RegisteredStudent != nil {
		registered, err := s.students.FindByID(ctx, *task.RegisteredStudent)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrConflict, "A Student is registered to this Task")
		}
		return nil, appErrors.Clonef(appErrors.ErrConflict,
			"Student %s is registered to this Task", registered.Email)
	}

	if !viewer.IsAdmin && task.Creator.Hex() != viewer.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden,
			"You aren't creator of this Task and don't have Admin rights.")
	}

	creator, err := s.mentors.FindByID(ctx, task.Creator)
	if err != nil && !isNoDocuments(err) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task creator")
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.mentors.PullCreatedTask(ctx, task.Creator, tID); err != nil {
			return err
		}
		return s.tasks.Delete(ctx, tID)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}

	return &TaskView{Task: *task, Creator: creator}, nil
}

// EditTaskProgress sets the progress flags of the caller's own registered
// task. Mentors are rejected outright, and the flags may not both be true.
func (s *TaskService) EditTaskProgress(ctx context.Context, viewer *models.Claims, taskID string, isSolved, isBeingSolved bool) (*TaskView, error) {
	if viewer == nil {
		return nil, appErrors.ErrUnauthenticated
	}
	if viewer.IsMentor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Only for Students.")
	}
	if isSolved && isBeingSolved {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			"A Task cannot be solved and being solved at the same time.")
	}

	studentID, err := parseID(viewer.UserID, "student")
	if err != nil {
		return nil, err
	}
	tID, err := parseID(taskID, "task")
	if err != nil {
		return nil, err
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Student not found.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	if student.RegisteredTask == nil || *student.RegisteredTask != tID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "You are not registered to this Task!")
	}

	task, err := s.tasks.FindByID(ctx, tID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Task not found.")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task")
	}

	if err := s.tasks.SetProgress(ctx, tID, isSolved, isBeingSolved); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task progress")
	}

	task.IsSolved = isSolved
	task.IsBeingSolved = isBeingSolved
	return s.taskView(ctx, *task)
}

func (s *TaskService) taskView(ctx context.Context, task models.Task) (*TaskView, error) {
	view := &TaskView{Task: task}

	creator, err := s.mentors.FindByID(ctx, task.Creator)
	if err != nil {
		if !isNoDocuments(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch task creator")
		}
	} else {
		view.Creator = creator
	}

	if task.RegisteredStudent != nil {
		student, err := s.students.FindByID(ctx, *task.RegisteredStudent)
		if err != nil {
			if !isNoDocuments(err) {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch registered student")
			}
		} else {
			view.RegisteredStudent = student
		}
	}

	return view, nil
}

func (s *TaskService) taskViews(ctx context.Context, tasks []models.Task) ([]TaskView, error) {
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		view, err := s.taskView(ctx, task)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
