package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	for _, raw := range []string{
		"user_reg", "task_reg", "student_reg", "student_unreg",
		"mentor_verification", "mentor_verified", "admin_verified",
	} {
		event, ok := ParseEvent(raw)
		require.True(t, ok, raw)
		assert.Equal(t, Event(raw), event)
	}

	_, ok := ParseEvent("password_reset")
	assert.False(t, ok)
}

func TestComposeTaskRegistration(t *testing.T) {
	subject, body := Compose(Message{
		Event:      EventTaskRegistration,
		ActorEmail: "student@example.com",
		TaskTitle:  "Fix parser",
	})

	assert.Equal(t, "Open Source Contest - New Task registration", subject)
	assert.Contains(t, body, "Your Task has a Student now!")
	assert.Contains(t, body, "student@example.com")
	assert.Contains(t, body, "<b>Fix parser</b>")
}

func TestComposeStudentRegistration(t *testing.T) {
	subject, body := Compose(Message{Event: EventStudentRegistration, TaskTitle: "Fix parser"})

	assert.Equal(t, "Open Source Contest - New Task registration", subject)
	assert.Contains(t, body, "You successfully registered to new Task!")
	assert.Contains(t, body, "Happy coding!")
}

func TestComposeVerificationRequestCarriesText(t *testing.T) {
	subject, body := Compose(Message{
		Event:      EventMentorVerification,
		ActorEmail: "mentor@example.com",
		Text:       "I maintain the foo project.",
	})

	assert.Equal(t, "Open Source Contest - Mentor Verification Request", subject)
	assert.Contains(t, body, "Mentor: mentor@example.com")
	assert.Contains(t, body, "I maintain the foo project.")
}

func TestComposeSubjectsDiffer(t *testing.T) {
	verified, _ := Compose(Message{Event: EventMentorVerified, Text: "x"})
	admin, _ := Compose(Message{Event: EventAdminVerified, Text: "x"})
	welcome, _ := Compose(Message{Event: EventUserRegistration})

	assert.NotEqual(t, verified, admin)
	assert.Equal(t, "Open Source Contest - New registration", welcome)
}
