// Package email sends plain text mail over SMTP.
package email

import (
	"gopkg.in/mail.v2"
)

// Client sends messages through one SMTP server with a fixed sender and subject.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
	subject  string
}

// NewClient falls back to a generic subject when none is configured.
func NewClient(smtpHost string, smtpPort int, username, password, from, subject string) *Client {
	if subject == "" {
		subject = "Notification"
	}

	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
		subject:  subject,
	}
}

// Message builds the mail sent to a single recipient.
func (c *Client) Message(to string, msg string) *mail.Message {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", c.subject)

	message.SetBody("text/plain", msg)

	return message
}

// Send opens a new SMTP session for every message.
func (c *Client) Send(to string, msg string) error {
	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	return dialer.DialAndSend(c.Message(to, msg))
}
