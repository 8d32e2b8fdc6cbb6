// Package session ties an interpreter run together: it owns the session
// lifecycle, fans mode and status updates out over pubsub, traces key
// handling, and records a summary when the session ends.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/keytrain/internal/interp"
	"github.com/zjrosen/keytrain/internal/log"
	"github.com/zjrosen/keytrain/internal/pubsub"
	"github.com/zjrosen/keytrain/internal/stats"
	"github.com/zjrosen/keytrain/internal/tracing"
)

// Notification is the payload published for every mode or status change.
type Notification struct {
	Mode     interp.Mode
	Previous interp.Mode
	Status   string
}

// Config configures a Session.
type Config struct {
	// Buffer and Clipboard are the host surfaces handed to the interpreter.
	Buffer    interp.Buffer
	Clipboard interp.Clipboard

	// Policy selects interpreter edge-case behaviors. Nil means defaults.
	Policy *interp.Policy

	// Tracing provides the span source. Nil disables tracing.
	Tracing *tracing.Provider

	// Store receives the session summary on Stop. Nil disables recording.
	Store *stats.Store

	// Broker receives Notifications. Created internally when nil.
	Broker *pubsub.Broker[Notification]
}

// Session is one practice run of the interpreter, from Start to Stop.
type Session struct {
	id     string
	interp *interp.Interpreter
	broker *pubsub.Broker[Notification]
	tracer trace.Tracer
	store  *stats.Store

	startedAt time.Time
	running   bool
	rootCtx   context.Context
	rootSpan  trace.Span
}

// New creates a Session over the given buffer and clipboard. The
// interpreter starts inactive; call Start to begin handling keys.
func New(cfg Config) *Session {
	broker := cfg.Broker
	if broker == nil {
		broker = pubsub.NewBroker[Notification]()
	}
	tracer := noop.NewTracerProvider().Tracer("keytrain")
	if cfg.Tracing != nil {
		tracer = cfg.Tracing.Tracer()
	}
	s := &Session{
		id:     uuid.NewString(),
		broker: broker,
		tracer: tracer,
		store:  cfg.Store,
	}
	s.interp = interp.New(cfg.Buffer, cfg.Clipboard, interp.Config{
		Notifier: s,
		Policy:   cfg.Policy,
	})
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Broker returns the notification broker for subscribers.
func (s *Session) Broker() *pubsub.Broker[Notification] {
	return s.broker
}

// Interpreter returns the underlying interpreter.
func (s *Session) Interpreter() *interp.Interpreter {
	return s.interp
}

// Running reports whether the session is active.
func (s *Session) Running() bool {
	return s.running
}

// Start activates the interpreter and opens the session span.
// Starting a running session is a no-op.
func (s *Session) Start(ctx context.Context) {
	if s.running {
		return
	}
	s.startedAt = time.Now()
	s.rootCtx, s.rootSpan = s.tracer.Start(ctx, tracing.SpanSession,
		trace.WithAttributes(attribute.String(tracing.AttrSessionID, s.id)))
	s.interp.Activate()
	s.running = true
	log.Info(log.CatSession, "session started", "id", s.id)
}

// Stop deactivates the interpreter, closes the session span, and records
// the summary. Stopping a stopped session is a no-op.
func (s *Session) Stop() error {
	if !s.running {
		return nil
	}
	s.interp.Deactivate()
	s.running = false

	m := s.interp.Metrics()
	s.rootSpan.SetAttributes(
		attribute.Int("session.keys_handled", m.KeysHandled),
		attribute.Int("session.edits_applied", m.EditsApplied),
		attribute.Int("session.mode_switches", m.ModeSwitches),
	)
	s.rootSpan.End()

	log.Info(log.CatSession, "session stopped",
		"id", s.id,
		"keys", m.KeysHandled,
		"edits", m.EditsApplied,
		"switches", m.ModeSwitches)

	if s.store == nil {
		return nil
	}
	sum := &stats.Summary{
		SessionID:    s.id,
		StartedAt:    s.startedAt,
		EndedAt:      time.Now(),
		KeysHandled:  m.KeysHandled,
		EditsApplied: m.EditsApplied,
		ModeSwitches: m.ModeSwitches,
	}
	if err := s.store.Save(sum); err != nil {
		log.ErrorErr(log.CatSession, "failed to record session summary", err)
		return err
	}
	return nil
}

// Toggle starts the session if stopped, stops it if running.
func (s *Session) Toggle(ctx context.Context) error {
	if s.running {
		return s.Stop()
	}
	s.Start(ctx)
	return nil
}

// Calibrate is a reserved control command. It has no effect on session or
// interpreter state.
func (s *Session) Calibrate() {
	log.Debug(log.CatSession, "calibrate requested", "id", s.id, "running", s.running)
}

// HandleKey traces and forwards one key event to the interpreter.
func (s *Session) HandleKey(ev interp.KeyEvent) {
	if !s.running {
		return
	}
	_, span := s.tracer.Start(s.rootCtx, tracing.SpanKey,
		trace.WithAttributes(
			attribute.String(tracing.AttrKey, ev.Canonical()),
			attribute.String(tracing.AttrKeyMode, s.interp.Mode().String()),
		))
	s.interp.Handle(ev)
	span.End()
}

// ModeChanged implements interp.Notifier.
func (s *Session) ModeChanged(mode, previous interp.Mode) {
	s.broker.Publish(pubsub.UpdatedEvent, Notification{
		Mode:     mode,
		Previous: previous,
		Status:   s.interp.StatusText(),
	})
}

// Status implements interp.Notifier.
func (s *Session) Status(text string) {
	s.broker.Publish(pubsub.UpdatedEvent, Notification{
		Mode:   s.interp.Mode(),
		Status: text,
	})
}
