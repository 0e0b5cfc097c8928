package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotify_LogOnlyMode(t *testing.T) {
	// No host: messages are logged and dropped, never dialed.
	m := New(Config{})

	for i := 0; i < 10; i++ {
		m.Notify("user@lab.test", "Component Approved: Resistor", "<p>Hi user</p>")
	}

	// Close drains the queue and returns.
	done := make(chan struct{})
	go func() {
		m.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not drain the queue in time")
	}
}

func TestNotify_NeverBlocks(t *testing.T) {
	m := New(Config{})
	defer m.Close()

	// Well beyond queue capacity; overflow is dropped, not blocked on.
	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize*4; i++ {
			m.Notify("user@lab.test", "subject", "body")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked the caller")
	}
}

func TestNew_ConfiguredDialer(t *testing.T) {
	m := New(Config{Host: "smtp.lab.test", Port: 587, Username: "mailer", Password: "pw", Sender: "lab@lab.test"})
	// Nothing is queued, so Close returns without dialing.
	defer m.Close()

	assert.NotNil(t, m.dialer)
}
