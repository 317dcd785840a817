package graph

import (
	"time"

	"github.com/osc-dev/contest-api/internal/models"
	"github.com/osc-dev/contest-api/internal/service"
)

// restrictedUID replaces mentor and student uids in responses. The uid
// doubles as a login credential, so it never leaves the API.
const restrictedUID = "*restricted*"

// Resolvers return plain maps so the default field resolver can walk them.
// References are materialized one level deep; anything deeper resolves to an
// id-only stub or null, and clients issue a follow-up query when they need
// more.

func marshalTaskView(v *service.TaskView) map[string]interface{} {
	m := marshalTask(v.Task)
	if v.Creator != nil {
		m["creator"] = marshalMentorStub(*v.Creator)
	}
	if v.RegisteredStudent != nil {
		m["registeredStudent"] = marshalStudentStub(*v.RegisteredStudent)
	}
	return m
}

func marshalTaskViews(views []service.TaskView) []interface{} {
	out := make([]interface{}, 0, len(views))
	for i := range views {
		out = append(out, marshalTaskView(&views[i]))
	}
	return out
}

func marshalTask(t models.Task) map[string]interface{} {
	return map[string]interface{}{
		"_id":               t.ID.Hex(),
		"title":             t.Title,
		"details":           t.Details,
		"link":              t.Link,
		"isSolved":          t.IsSolved,
		"isBeingSolved":     t.IsBeingSolved,
		"creator":           nil,
		"registeredStudent": nil,
	}
}

func marshalMentorView(v *service.MentorView) map[string]interface{} {
	m := marshalMentorStub(v.Mentor)

	tasks := make([]interface{}, 0, len(v.CreatedTasks))
	for _, task := range v.CreatedTasks {
		tm := marshalTask(task)
		tm["creator"] = marshalMentorStub(v.Mentor)
		tasks = append(tasks, tm)
	}
	m["createdTasks"] = tasks
	return m
}

func marshalMentorViews(views []service.MentorView) []interface{} {
	out := make([]interface{}, 0, len(views))
	for i := range views {
		out = append(out, marshalMentorView(&views[i]))
	}
	return out
}

func marshalMentorStub(m models.Mentor) map[string]interface{} {
	return map[string]interface{}{
		"_id":          m.ID.Hex(),
		"email":        m.Email,
		"uid":          restrictedUID,
		"isVerified":   m.IsVerified,
		"isAdmin":      m.IsAdmin,
		"createdTasks": []interface{}{},
	}
}

func marshalStudentView(v *service.StudentView) map[string]interface{} {
	m := marshalStudentStub(v.Student)
	// creator is non-null on the wire, so a registration whose task lost its
	// mentor record is reported as unregistered rather than as a malformed
	// task.
	if v.RegisteredTask != nil && v.TaskCreator != nil {
		tm := marshalTask(*v.RegisteredTask)
		tm["creator"] = marshalMentorStub(*v.TaskCreator)
		tm["registeredStudent"] = marshalStudentStub(v.Student)
		m["registeredTask"] = tm
	}
	return m
}

func marshalStudentViews(views []service.StudentView) []interface{} {
	out := make([]interface{}, 0, len(views))
	for i := range views {
		out = append(out, marshalStudentView(&views[i]))
	}
	return out
}

func marshalStudentStub(s models.Student) map[string]interface{} {
	return map[string]interface{}{
		"_id":            s.ID.Hex(),
		"email":          s.Email,
		"uid":            restrictedUID,
		"registeredTask": nil,
	}
}

func marshalAuthData(a *models.AuthData) map[string]interface{} {
	m := map[string]interface{}{
		"userId":          a.UserID,
		"token":           a.Token,
		"tokenExpiration": a.TokenExpiration,
		"isMentor":        a.IsMentor,
		"isAdmin":         nil,
		"isVerified":      nil,
	}
	if a.IsAdmin != nil {
		m["isAdmin"] = *a.IsAdmin
	}
	if a.IsVerified != nil {
		m["isVerified"] = *a.IsVerified
	}
	return m
}

func marshalRun(r *models.Run) map[string]interface{} {
	m := map[string]interface{}{
		"_id":      r.ID.Hex(),
		"title":    r.Title,
		"deadline": nil,
	}
	if r.Deadline != nil {
		m["deadline"] = r.Deadline.UTC().Format(time.RFC3339)
	}
	return m
}

func marshalUnregRecords(records []models.UnregRecord) []interface{} {
	out := make([]interface{}, 0, len(records))
	for _, record := range records {
		out = append(out, map[string]interface{}{
			"studentId": record.StudentID,
			"taskId":    record.TaskID,
		})
	}
	return out
}
