package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/osc-dev/contest-api/internal/models"
)

func newStudentService(students *mockStudentRepo, tasks *mockTaskRepo, mentors *mockMentorRepo) *StudentService {
	return NewStudentService(students, tasks, mentors, nil, zap.NewNop())
}

func TestCreateStudent(t *testing.T) {
	students := newMockStudentRepo()
	svc := newStudentService(students, newMockTaskRepo(), newMockMentorRepo())

	student, err := svc.CreateStudent(context.Background(), models.StudentInput{Email: "s@example.com", UID: "uid"})
	require.NoError(t, err)

	assert.False(t, student.ID.IsZero())
	assert.Nil(t, student.RegisteredTask)
	assert.Len(t, students.students, 1)
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	existing := models.Student{ID: primitive.NewObjectID(), Email: "s@example.com", UID: "uid"}
	students := newMockStudentRepo(existing)
	svc := newStudentService(students, newMockTaskRepo(), newMockMentorRepo())

	_, err := svc.CreateStudent(context.Background(), models.StudentInput{Email: "s@example.com", UID: "other"})
	require.Error(t, err)
	assert.Equal(t, "Student with email s@example.com already exists.", err.Error())
	assert.Len(t, students.students, 1)
}

func TestCreateStudentValidatesInput(t *testing.T) {
	svc := newStudentService(newMockStudentRepo(), newMockTaskRepo(), newMockMentorRepo())

	_, err := svc.CreateStudent(context.Background(), models.StudentInput{Email: "s@example.com"})
	require.Error(t, err)
}

func TestStudentNotFound(t *testing.T) {
	svc := newStudentService(newMockStudentRepo(), newMockTaskRepo(), newMockMentorRepo())

	_, err := svc.Student(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, "Student not found.", err.Error())
}

func TestStudentLoadsRegisteredTaskWithCreator(t *testing.T) {
	mentor := models.Mentor{ID: primitive.NewObjectID(), Email: "m@example.com", IsVerified: true}
	task := models.Task{ID: primitive.NewObjectID(), Title: "T", Details: "D", Creator: mentor.ID}
	student := models.Student{ID: primitive.NewObjectID(), Email: "s@example.com", RegisteredTask: &task.ID}
	task.RegisteredStudent = &student.ID

	svc := newStudentService(newMockStudentRepo(student), newMockTaskRepo(task), newMockMentorRepo(mentor))

	view, err := svc.Student(context.Background(), student.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, view.RegisteredTask)
	require.NotNil(t, view.TaskCreator)
	assert.Equal(t, task.ID, view.RegisteredTask.ID)
	assert.Equal(t, mentor.Email, view.TaskCreator.Email)
}

func TestAllStudentEmails(t *testing.T) {
	a := models.Student{ID: primitive.NewObjectID(), Email: "a@example.com"}
	b := models.Student{ID: primitive.NewObjectID(), Email: "b@example.com"}
	svc := newStudentService(newMockStudentRepo(a, b), newMockTaskRepo(), newMockMentorRepo())

	emails, err := svc.AllStudentEmails(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, emails)
}
