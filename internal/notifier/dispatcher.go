package notifier

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/metrics"
)

// Event is one outbound email queued after a committed mutation.
type Event struct {
	ID      string
	To      string
	Subject string
	HTML    string
}

// Dispatcher delivers events on a background worker. Enqueue never blocks the
// caller's request path beyond a buffered channel send, and delivery failures
// are logged and swallowed: a flaky mail relay must never surface into an
// already-committed operation.
type Dispatcher struct {
	mailer Mailer
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewDispatcher starts the worker goroutine.
func NewDispatcher(mailer Mailer, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		mailer: mailer,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for ev := range d.events {
		if err := d.mailer.Send(ev.To, ev.Subject, ev.HTML); err != nil {
			metrics.EmailSendErrorsTotal.Inc()
			log.Error().Err(err).
				Str("event_id", ev.ID).
				Str("to", ev.To).
				Str("subject", ev.Subject).
				Msg("Email dispatch failed")
		}
	}
}

// Enqueue queues an email for best-effort delivery. Events without a
// recipient are dropped quietly. When the buffer is full the event is dropped
// rather than blocking the request path.
func (d *Dispatcher) Enqueue(to, subject, html string) {
	if to == "" {
		return
	}
	ev := Event{ID: uuid.NewString(), To: to, Subject: subject, HTML: html}
	select {
	case d.events <- ev:
		metrics.EmailsQueuedTotal.Inc()
	default:
		log.Warn().Str("event_id", ev.ID).Str("to", to).Msg("Email queue full, dropping event")
	}
}

// Close stops accepting events and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.events)
	})
	<-d.done
}
