// Package mailer decouples the core from email delivery. Services only
// enqueue; a single worker goroutine drains the queue and hands messages to
// a Sender. Delivery is best-effort, at most once, and failures are never
// surfaced to the request that triggered them.
package mailer

import (
	"fmt"
	"log/slog"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender performs the actual delivery.
type Sender interface {
	Send(msg Message) error
}

// Enqueuer is the only capability the core depends on.
type Enqueuer interface {
	Enqueue(msg Message)
}

// Queue buffers messages and delivers them off the request path.
type Queue struct {
	sender Sender
	ch     chan Message
	done   chan struct{}
}

func NewQueue(sender Sender) *Queue {
	q := &Queue{
		sender: sender,
		ch:     make(chan Message, 256),
		done:   make(chan struct{}),
	}
	go q.worker()
	return q
}

// Enqueue never blocks a request: when the buffer is full the message is
// dropped and logged.
func (q *Queue) Enqueue(msg Message) {
	select {
	case q.ch <- msg:
	default:
		slog.Error("mail queue full, dropping message", "to", msg.To, "subject", msg.Subject)
	}
}

func (q *Queue) worker() {
	for {
		select {
		case msg := <-q.ch:
			if err := q.sender.Send(msg); err != nil {
				slog.Error("email delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
			}
		case <-q.done:
			// Drain what is already buffered, then exit.
			for {
				select {
				case msg := <-q.ch:
					if err := q.sender.Send(msg); err != nil {
						slog.Error("email delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
					}
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) Stop() {
	close(q.done)
}

// LogSender is the default when SMTP is not configured; messages end up in
// the structured log instead of a mailbox.
type LogSender struct{}

func (LogSender) Send(msg Message) error {
	slog.Info("email (not delivered, SMTP unconfigured)", "to", msg.To, "subject", msg.Subject)
	return nil
}

// --- message builders ---

func PropertyInvitation(to, inviterName, address, role, url string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s invited you to %s", inviterName, address),
		HTML: fmt.Sprintf(
			"<h1>Property Invitation</h1>"+
				"<p>%s has invited you to join <strong>%s</strong> as a %s.</p>"+
				"<p><a href=%q>Accept or decline the invitation</a></p>",
			inviterName, address, role, url),
	}
}

func RegistrationInvitation(to, inviterName, address, role, url string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("%s invited you to PropDesk", inviterName),
		HTML: fmt.Sprintf(
			"<h1>You're invited</h1>"+
				"<p>%s has invited you to join <strong>%s</strong> as a %s.</p>"+
				"<p>Create an account to accept:</p>"+
				"<p><a href=%q>Register</a></p>"+
				"<p>This invitation expires in 7 days.</p>",
			inviterName, address, role, url),
	}
}

func Welcome(to, firstName string) Message {
	name := firstName
	if name == "" {
		name = "there"
	}
	return Message{
		To:      to,
		Subject: "Welcome to PropDesk",
		HTML: fmt.Sprintf(
			"<h1>Welcome!</h1>"+
				"<p>Hello %s, your PropDesk account is ready.</p>", name),
	}
}

func PasswordReset(to, firstName, url string) Message {
	name := firstName
	if name == "" {
		name = "there"
	}
	return Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML: fmt.Sprintf(
			"<h1>Password Reset</h1>"+
				"<p>Hello %s,</p>"+
				"<p><a href=%q>Reset your password</a></p>"+
				"<p>If you did not request this, ignore this email. The link expires in 60 minutes.</p>",
			name, url),
	}
}
