package notifier

import (
	"errors"
	"sync"
	"testing"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	calls int
}

func (m *recordingMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("relay unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestDispatcherDeliversQueuedEvents(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, 8)

	d.Enqueue("a@example.com", "subject one", "<p>one</p>")
	d.Enqueue("b@example.com", "subject two", "<p>two</p>")
	d.Close()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(mailer.sent))
	}
}

func TestDispatcherDropsEmptyRecipient(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, 8)

	d.Enqueue("", "subject", "<p>body</p>")
	d.Close()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.calls != 0 {
		t.Fatalf("mailer called %d times for empty recipient, want 0", mailer.calls)
	}
}

// A failing mailer must never propagate beyond the worker; Close still
// drains cleanly.
func TestDispatcherSwallowsSendFailures(t *testing.T) {
	mailer := &recordingMailer{fail: true}
	d := NewDispatcher(mailer, 8)

	d.Enqueue("a@example.com", "subject", "<p>body</p>")
	d.Close()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if mailer.calls != 1 {
		t.Fatalf("mailer called %d times, want 1", mailer.calls)
	}
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingMailer{}, 2)
	d.Close()
	d.Close()
}
