// Package mailer delivers outcome emails in the background. Messages
// are queued on a channel and sent by a worker goroutine; the sender
// never blocks and never learns about delivery failures, which are
// logged only.
package mailer

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	gomail "gopkg.in/gomail.v2"
)

const queueSize = 64

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type message struct {
	id      uuid.UUID
	to      string
	subject string
	body    string
}

type Mailer struct {
	config Config
	dialer *gomail.Dialer
	queue  chan message
	group  errgroup.Group
}

// New starts the background worker. A Config with an empty Host puts
// the mailer in log-only mode: messages are logged instead of sent.
func New(cfg Config) *Mailer {
	m := &Mailer{
		config: cfg,
		queue:  make(chan message, queueSize),
	}
	if cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	m.group.Go(m.run)
	return m
}

// Notify enqueues a message without blocking. When the queue is full
// the message is dropped with a log line.
func (m *Mailer) Notify(to, subject, body string) {
	msg := message{id: uuid.New(), to: to, subject: subject, body: body}
	select {
	case m.queue <- msg:
	default:
		log.Printf("mailer: queue full, dropping message %s to %s", msg.id, to)
	}
}

// Close stops intake and drains the queue before returning. Call after
// the HTTP server has stopped accepting requests.
func (m *Mailer) Close() {
	close(m.queue)
	_ = m.group.Wait()
}

func (m *Mailer) run() error {
	for msg := range m.queue {
		m.send(msg)
	}
	return nil
}

func (m *Mailer) send(msg message) {
	if m.dialer == nil {
		log.Printf("mailer: SMTP not configured, skipping message %s to %s (%s)", msg.id, msg.to, msg.subject)
		return
	}

	email := gomail.NewMessage()
	email.SetHeader("From", m.config.Sender)
	email.SetHeader("To", msg.to)
	email.SetHeader("Subject", msg.subject)
	email.SetBody("text/html", msg.body)

	if err := m.dialer.DialAndSend(email); err != nil {
		log.Printf("mailer: failed to send message %s to %s: %v", msg.id, msg.to, err)
		return
	}
	log.Printf("mailer: sent message %s to %s", msg.id, msg.to)
}
