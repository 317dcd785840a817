package mailer

import "fmt"

// Compose renders the subject and HTML body for a message.
func Compose(msg Message) (subject, body string) {
	var header, content string

	switch msg.Event {
	case EventUserRegistration:
		subject = "Open Source Contest - New registration"
		header = "Welcome to<br />Open Source Contest."
		content = "<p>You have successfully created a new account!</p>"
	case EventTaskRegistration:
		subject = "Open Source Contest - New Task registration"
		header = "Your Task has a Student now!"
		content = fmt.Sprintf("<p>Student %s has registered to your task <b>%s</b>.</p>",
			msg.ActorEmail, msg.TaskTitle)
	case EventStudentRegistration:
		subject = "Open Source Contest - New Task registration"
		header = "You successfully registered to new Task!"
		content = fmt.Sprintf("<p>Task<b> %s</b> now belongs to you. Happy coding!</p>", msg.TaskTitle)
	case EventStudentUnregistration:
		subject = "Open Source Contest - Task registration cancelled"
		header = "Your Task is now free."
		content = fmt.Sprintf("<p>Student %s has unregistered the task <b>%s</b>.</p>",
			msg.ActorEmail, msg.TaskTitle)
	case EventMentorVerification:
		subject = "Open Source Contest - Mentor Verification Request"
		header = "Mentor verification request"
		content = fmt.Sprintf("<p>Mentor: %s</p><p style=\"text-align: left\">%s</p>",
			msg.ActorEmail, msg.Text)
	case EventMentorVerified:
		subject = "Open Source Contest - Mentor Verification Completed"
		header = "Mentor verification completed"
		content = fmt.Sprintf("<p>%s</p>", msg.Text)
	case EventAdminVerified:
		subject = "Open Source Contest - Admin Verification Completed"
		header = "Admin verification completed"
		content = fmt.Sprintf("<p>%s</p>", msg.Text)
	}

	body = fmt.Sprintf(`
      <div style="width: 500px; color: black;">
        <div style="background-color: #404040; color: white;">
          <center>
            <h1>%s</h1>
          </center>
        </div>
        <center>
          %s
        </center>
        <hr />
      </div>
    `, header, content)

	return subject, body
}
