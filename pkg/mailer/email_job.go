package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// WelcomeJob builds the registration welcome email.
func WelcomeJob(to, name string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to DevLink",
		Text:    fmt.Sprintf("Hi %s,\n\nYour DevLink account is ready. Set up your profile and start connecting with other developers.\n", name),
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Your DevLink account is ready. Set up your profile and start connecting with other developers.</p>", name),
	}
}
