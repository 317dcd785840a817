package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osc-dev/contest-api/internal/mailer"
	"github.com/osc-dev/contest-api/internal/models"
)

type mockTaskRepo struct {
	tasks map[primitive.ObjectID]models.Task
	err   error
}

func newMockTaskRepo(tasks ...models.Task) *mockTaskRepo {
	m := &mockTaskRepo{tasks: make(map[primitive.ObjectID]models.Task)}
	for _, task := range tasks {
		m.tasks[task.ID] = task
	}
	return m
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	if task, ok := m.tasks[id]; ok {
		copied := task
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTaskRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	tasks := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		if task, ok := m.tasks[id]; ok {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskRepo) All(ctx context.Context) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	tasks := make([]models.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (m *mockTaskRepo) Free(ctx context.Context) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	tasks := []models.Task{}
	for _, task := range m.tasks {
		if task.RegisteredStudent == nil {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskRepo) Taken(ctx context.Context) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	tasks := []models.Task{}
	for _, task := range m.tasks {
		if task.RegisteredStudent != nil {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskRepo) Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	m.tasks[task.ID] = *task
	return task.ID, nil
}

func (m *mockTaskRepo) UpdateDetails(ctx context.Context, id primitive.ObjectID, title, details, link string) error {
	task, ok := m.tasks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	task.Title = title
	task.Details = details
	task.Link = link
	m.tasks[id] = task
	return nil
}

func (m *mockTaskRepo) SetRegisteredStudent(ctx context.Context, id, studentID primitive.ObjectID) error {
	task, ok := m.tasks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	task.RegisteredStudent = &studentID
	m.tasks[id] = task
	return nil
}

func (m *mockTaskRepo) ClearRegistration(ctx context.Context, id primitive.ObjectID) error {
	task, ok := m.tasks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	task.RegisteredStudent = nil
	task.IsSolved = false
	task.IsBeingSolved = false
	m.tasks[id] = task
	return nil
}

func (m *mockTaskRepo) SetProgress(ctx context.Context, id primitive.ObjectID, isSolved, isBeingSolved bool) error {
	task, ok := m.tasks[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	task.IsSolved = isSolved
	task.IsBeingSolved = isBeingSolved
	m.tasks[id] = task
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := m.tasks[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.tasks, id)
	return nil
}

type mockStudentRepo struct {
	students map[primitive.ObjectID]models.Student
	err      error
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{students: make(map[primitive.ObjectID]models.Student)}
	for _, student := range students {
		m.students[student.ID] = student
	}
	return m
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	if student, ok := m.students[id]; ok {
		copied := student
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockStudentRepo) FindByEmailUID(ctx context.Context, email, uid string) (*models.Student, error) {
	for _, student := range m.students {
		if student.Email == email && student.UID == uid {
			copied := student
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockStudentRepo) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, student := range m.students {
		if student.Email == email {
			copied := student
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockStudentRepo) All(ctx context.Context) ([]models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	students := make([]models.Student, 0, len(m.students))
	for _, student := range m.students {
		students = append(students, student)
	}
	return students, nil
}

func (m *mockStudentRepo) Insert(ctx context.Context, student *models.Student) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	m.students[student.ID] = *student
	return student.ID, nil
}

func (m *mockStudentRepo) SetRegisteredTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	student, ok := m.students[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	student.RegisteredTask = &taskID
	m.students[id] = student
	return nil
}

func (m *mockStudentRepo) ClearRegisteredTask(ctx context.Context, id primitive.ObjectID) error {
	student, ok := m.students[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	student.RegisteredTask = nil
	m.students[id] = student
	return nil
}

type mockMentorRepo struct {
	mentors map[primitive.ObjectID]models.Mentor
	err     error
}

func newMockMentorRepo(mentors ...models.Mentor) *mockMentorRepo {
	m := &mockMentorRepo{mentors: make(map[primitive.ObjectID]models.Mentor)}
	for _, mentor := range mentors {
		m.mentors[mentor.ID] = mentor
	}
	return m
}

func (m *mockMentorRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error) {
	if m.err != nil {
		return nil, m.err
	}
	if mentor, ok := m.mentors[id]; ok {
		copied := mentor
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockMentorRepo) FindByEmailUID(ctx context.Context, email, uid string) (*models.Mentor, error) {
	for _, mentor := range m.mentors {
		if mentor.Email == email && mentor.UID == uid {
			copied := mentor
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockMentorRepo) FindByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	for _, mentor := range m.mentors {
		if mentor.Email == email {
			copied := mentor
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockMentorRepo) All(ctx context.Context) ([]models.Mentor, error) {
	if m.err != nil {
		return nil, m.err
	}
	mentors := make([]models.Mentor, 0, len(m.mentors))
	for _, mentor := range m.mentors {
		mentors = append(mentors, mentor)
	}
	return mentors, nil
}

func (m *mockMentorRepo) Insert(ctx context.Context, mentor *models.Mentor) (primitive.ObjectID, error) {
	if m.err != nil {
		return primitive.NilObjectID, m.err
	}
	if mentor.ID.IsZero() {
		mentor.ID = primitive.NewObjectID()
	}
	m.mentors[mentor.ID] = *mentor
	return mentor.ID, nil
}

func (m *mockMentorRepo) PushCreatedTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	mentor, ok := m.mentors[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	mentor.CreatedTasks = append(mentor.CreatedTasks, taskID)
	m.mentors[id] = mentor
	return nil
}

func (m *mockMentorRepo) PullCreatedTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	mentor, ok := m.mentors[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	kept := make([]primitive.ObjectID, 0, len(mentor.CreatedTasks))
	for _, existing := range mentor.CreatedTasks {
		if existing != taskID {
			kept = append(kept, existing)
		}
	}
	mentor.CreatedTasks = kept
	m.mentors[id] = mentor
	return nil
}

func (m *mockMentorRepo) SetRights(ctx context.Context, id primitive.ObjectID, isVerified, isAdmin bool) error {
	mentor, ok := m.mentors[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	mentor.IsVerified = isVerified
	mentor.IsAdmin = isAdmin
	m.mentors[id] = mentor
	return nil
}

type mockRunRepo struct {
	run *models.Run
}

func (m *mockRunRepo) Get(ctx context.Context) (*models.Run, error) {
	if m.run == nil {
		return nil, mongo.ErrNoDocuments
	}
	copied := *m.run
	return &copied, nil
}

func (m *mockRunRepo) Upsert(ctx context.Context, title string, deadline *time.Time) (*models.Run, error) {
	now := time.Now().UTC()
	if m.run == nil {
		m.run = &models.Run{ID: primitive.NewObjectID(), CreatedAt: now}
	}
	m.run.Title = title
	m.run.Deadline = deadline
	m.run.UpdatedAt = now
	copied := *m.run
	return &copied, nil
}

// mockTx runs the callback directly; calls counts invocations so tests can
// assert that paired writes went through the transaction path.
type mockTx struct {
	calls int
	err   error
}

func (m *mockTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type mockMailer struct {
	sent []mailer.Message
}

func (m *mockMailer) Send(msg mailer.Message) {
	m.sent = append(m.sent, msg)
}

func mentorClaims(mentor models.Mentor) *models.Claims {
	return &models.Claims{
		UserID:     mentor.ID.Hex(),
		Email:      mentor.Email,
		IsMentor:   true,
		IsAdmin:    mentor.IsAdmin,
		IsVerified: mentor.IsVerified,
	}
}

func studentClaims(student models.Student) *models.Claims {
	return &models.Claims{
		UserID: student.ID.Hex(),
		Email:  student.Email,
	}
}
