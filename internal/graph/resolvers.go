package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/osc-dev/contest-api/internal/models"
	"github.com/osc-dev/contest-api/internal/service"
)

type authService interface {
	Login(ctx context.Context, email, uid string, isMentor bool) (*models.AuthData, error)
	Verify(viewer *models.Claims) (*models.AuthData, error)
}

type taskService interface {
	Task(ctx context.Context, taskID string) (*service.TaskView, error)
	AllTasks(ctx context.Context) ([]service.TaskView, error)
	FreeTasks(ctx context.Context) ([]service.TaskView, error)
	TakenTasks(ctx context.Context) ([]service.TaskView, error)
	CreateTask(ctx context.Context, viewer *models.Claims, input models.TaskInput) (*service.TaskView, error)
	UpdateTask(ctx context.Context, viewer *models.Claims, input models.TaskInput) (*service.TaskView, error)
	RegisterTask(ctx context.Context, viewer *models.Claims, studentID, taskID string) (*service.TaskView, error)
	UnregisterTask(ctx context.Context, viewer *models.Claims, studentID, taskID string) (*service.TaskView, error)
	DeleteTask(ctx context.Context, viewer *models.Claims, taskID string) (*service.TaskView, error)
	EditTaskProgress(ctx context.Context, viewer *models.Claims, taskID string, isSolved, isBeingSolved bool) (*service.TaskView, error)
}

type studentService interface {
	Student(ctx context.Context, studentID string) (*service.StudentView, error)
	Students(ctx context.Context) ([]service.StudentView, error)
	CreateStudent(ctx context.Context, input models.StudentInput) (*models.Student, error)
	AllStudentEmails(ctx context.Context) ([]string, error)
}

type mentorService interface {
	Mentor(ctx context.Context, mentorID string) (*service.MentorView, error)
	Mentors(ctx context.Context) ([]service.MentorView, error)
	CreateMentor(ctx context.Context, input models.MentorInput) (*models.Mentor, error)
	StudentEmails(ctx context.Context, mentorID string) ([]string, error)
	AllMentorEmails(ctx context.Context) ([]string, error)
}

type adminService interface {
	UnregisterAllStudents(ctx context.Context, viewer *models.Claims) ([]models.UnregRecord, error)
	ChangeMentorRights(ctx context.Context, viewer *models.Claims, mentorID string, isVerified, isAdmin bool) (*models.Mentor, error)
}

type runService interface {
	Run(ctx context.Context) (*models.Run, error)
	SetRun(ctx context.Context, viewer *models.Claims, input models.RunInput) (*models.Run, error)
}

type emailService interface {
	SendVerificationEmail(ctx context.Context, viewer *models.Claims, recipient, emailType, text string) (string, error)
}

func (r *Resolver) resolveTask(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Tasks.Task(p.Context, stringArg(p, "taskId"))
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveAllTasks(p graphql.ResolveParams) (interface{}, error) {
	views, err := r.Tasks.AllTasks(p.Context)
	if err != nil {
		return nil, err
	}
	return marshalTaskViews(views), nil
}

func (r *Resolver) resolveFreeTasks(p graphql.ResolveParams) (interface{}, error) {
	views, err := r.Tasks.FreeTasks(p.Context)
	if err != nil {
		return nil, err
	}
	return marshalTaskViews(views), nil
}

func (r *Resolver) resolveTakenTasks(p graphql.ResolveParams) (interface{}, error) {
	views, err := r.Tasks.TakenTasks(p.Context)
	if err != nil {
		return nil, err
	}
	return marshalTaskViews(views), nil
}

func (r *Resolver) resolveStudent(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Students.Student(p.Context, stringArg(p, "studentId"))
	if err != nil {
		return nil, err
	}
	return marshalStudentView(view), nil
}

func (r *Resolver) resolveStudents(p graphql.ResolveParams) (interface{}, error) {
	views, err := r.Students.Students(p.Context)
	if err != nil {
		return nil, err
	}
	return marshalStudentViews(views), nil
}

func (r *Resolver) resolveMentor(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Mentors.Mentor(p.Context, stringArg(p, "mentorId"))
	if err != nil {
		return nil, err
	}
	return marshalMentorView(view), nil
}

func (r *Resolver) resolveMentors(p graphql.ResolveParams) (interface{}, error) {
	views, err := r.Mentors.Mentors(p.Context)
	if err != nil {
		return nil, err
	}
	return marshalMentorViews(views), nil
}

func (r *Resolver) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	auth, err := r.Auth.Login(p.Context, stringArg(p, "email"), stringArg(p, "uid"), boolArg(p, "isMentor"))
	if err != nil {
		return nil, err
	}
	return marshalAuthData(auth), nil
}

func (r *Resolver) resolveVerify(p graphql.ResolveParams) (interface{}, error) {
	auth, err := r.Auth.Verify(viewer(p))
	if err != nil {
		return nil, err
	}
	return marshalAuthData(auth), nil
}

func (r *Resolver) resolveStudentEmails(p graphql.ResolveParams) (interface{}, error) {
	return r.Mentors.StudentEmails(p.Context, stringArg(p, "mentorId"))
}

func (r *Resolver) resolveAllStudentEmails(p graphql.ResolveParams) (interface{}, error) {
	return r.Students.AllStudentEmails(p.Context)
}

func (r *Resolver) resolveAllMentorEmails(p graphql.ResolveParams) (interface{}, error) {
	return r.Mentors.AllMentorEmails(p.Context)
}

func (r *Resolver) resolveRun(p graphql.ResolveParams) (interface{}, error) {
	run, err := r.Runs.Run(p.Context)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, nil
	}
	return marshalRun(run), nil
}

func (r *Resolver) resolveCreateTask(p graphql.ResolveParams) (interface{}, error) {
	input := objectArg(p, "taskInput")
	view, err := r.Tasks.CreateTask(p.Context, viewer(p), models.TaskInput{
		Title:   stringField(input, "title"),
		Details: stringField(input, "details"),
		Link:    stringField(input, "link"),
	})
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveUpdateTask(p graphql.ResolveParams) (interface{}, error) {
	input := objectArg(p, "taskInput")
	view, err := r.Tasks.UpdateTask(p.Context, viewer(p), models.TaskInput{
		ID:      stringField(input, "_id"),
		Title:   stringField(input, "title"),
		Details: stringField(input, "details"),
		Link:    stringField(input, "link"),
	})
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveRegisterTask(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Tasks.RegisterTask(p.Context, viewer(p), stringArg(p, "studentId"), stringArg(p, "taskId"))
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveUnregisterTask(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Tasks.UnregisterTask(p.Context, viewer(p), stringArg(p, "studentId"), stringArg(p, "taskId"))
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveDeleteTask(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Tasks.DeleteTask(p.Context, viewer(p), stringArg(p, "taskId"))
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveEditTaskProgress(p graphql.ResolveParams) (interface{}, error) {
	view, err := r.Tasks.EditTaskProgress(p.Context, viewer(p),
		stringArg(p, "taskId"), boolArg(p, "isSolved"), boolArg(p, "isBeingSolved"))
	if err != nil {
		return nil, err
	}
	return marshalTaskView(view), nil
}

func (r *Resolver) resolveCreateStudent(p graphql.ResolveParams) (interface{}, error) {
	input := objectArg(p, "studentInput")
	student, err := r.Students.CreateStudent(p.Context, models.StudentInput{
		Email: stringField(input, "email"),
		UID:   stringField(input, "uid"),
	})
	if err != nil {
		return nil, err
	}
	return marshalStudentStub(*student), nil
}

func (r *Resolver) resolveCreateMentor(p graphql.ResolveParams) (interface{}, error) {
	input := objectArg(p, "mentorInput")
	mentor, err := r.Mentors.CreateMentor(p.Context, models.MentorInput{
		Email: stringField(input, "email"),
		UID:   stringField(input, "uid"),
	})
	if err != nil {
		return nil, err
	}
	return marshalMentorStub(*mentor), nil
}

func (r *Resolver) resolveChangeMentorRights(p graphql.ResolveParams) (interface{}, error) {
	mentor, err := r.Admin.ChangeMentorRights(p.Context, viewer(p),
		stringArg(p, "mentorId"), boolArg(p, "isVerified"), boolArg(p, "isAdmin"))
	if err != nil {
		return nil, err
	}
	return marshalMentorStub(*mentor), nil
}

func (r *Resolver) resolveUnregisterAllStudents(p graphql.ResolveParams) (interface{}, error) {
	records, err := r.Admin.UnregisterAllStudents(p.Context, viewer(p))
	if err != nil {
		return nil, err
	}
	return marshalUnregRecords(records), nil
}

func (r *Resolver) resolveSendVerificationEmail(p graphql.ResolveParams) (interface{}, error) {
	return r.Email.SendVerificationEmail(p.Context, viewer(p),
		stringArg(p, "recipient"), stringArg(p, "emailType"), stringArg(p, "text"))
}

func (r *Resolver) resolveSetRun(p graphql.ResolveParams) (interface{}, error) {
	input := objectArg(p, "runInput")
	run, err := r.Runs.SetRun(p.Context, viewer(p), models.RunInput{
		Title:    stringField(input, "title"),
		Deadline: stringField(input, "deadline"),
	})
	if err != nil {
		return nil, err
	}
	return marshalRun(run), nil
}
