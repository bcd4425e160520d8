package service

import (
	"context"
	"fmt"
	"time"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/store"
)

// CaregiverMessageSink consumes caregiver-message events. Sinks run
// synchronously inside the send operation, so a send is not complete until
// every sink has accepted the event.
type CaregiverMessageSink interface {
	HandleCaregiverMessage(ctx context.Context, ev domain.CaregiverMessage) error
}

// MessageService owns the per-subject message threads. A thread is an
// append-only chronological log keyed by the patient's user id; nothing in
// the system edits or deletes individual messages.
//
// MessageService knows nothing about tickets. The caregiver send flow
// publishes a domain event instead, and whoever subscribed (in practice the
// ticket queue) reacts to it.
type MessageService struct {
	Store *records.Store

	sinks []CaregiverMessageSink
	now   func() time.Time
}

// Subscribe registers a sink for caregiver-message events. Not safe to call
// concurrently with sends; wire sinks up at construction time.
func (s *MessageService) Subscribe(sink CaregiverMessageSink) {
	s.sinks = append(s.sinks, sink)
}

// List returns the subject's thread in chronological (append) order.
func (s *MessageService) List(ctx context.Context, subjectID string) []domain.Message {
	return records.Read[domain.Message](ctx, s.Store, store.MessagesKey(subjectID))
}

// RenderOrder returns the subject's thread most-recent-first. It is a derived
// view for display: the persisted order is untouched.
func (s *MessageService) RenderOrder(ctx context.Context, subjectID string) []domain.Message {
	return reversed(s.List(ctx, subjectID))
}

// Add appends one message to the subject's thread and persists it.
func (s *MessageService) Add(ctx context.Context, subjectID string, sender domain.Sender, text string) error {
	msg := domain.Message{
		Sender:    sender,
		Text:      text,
		Timestamp: s.timeNow(),
	}
	return records.Update(ctx, s.Store, store.MessagesKey(subjectID), func(msgs []domain.Message) []domain.Message {
		return append(msgs, msg)
	})
}

// SendFromCaregiver is the caregiver-initiated send flow: it appends the
// message to the patient's thread and, in the same logical operation,
// publishes exactly one caregiver-message event. Every registered sink must
// accept the event for the send to report success.
func (s *MessageService) SendFromCaregiver(ctx context.Context, caregiver, patient domain.User, text string) error {
	if err := s.Add(ctx, patient.ID, domain.SenderCaregiver, text); err != nil {
		return err
	}

	ev := domain.CaregiverMessage{
		CaregiverID:   caregiver.ID,
		CaregiverName: caregiver.FullName,
		PatientID:     patient.ID,
		PatientName:   patient.FullName,
		Text:          text,
		SentAt:        s.timeNow(),
	}

	for _, sink := range s.sinks {
		if err := sink.HandleCaregiverMessage(ctx, ev); err != nil {
			return fmt.Errorf("caregiver message sink: %w", err)
		}
	}
	return nil
}

// SendFromPatient appends a patient-authored message. Patient messages never
// publish an event, so they never raise a ticket.
func (s *MessageService) SendFromPatient(ctx context.Context, patient domain.User, text string) error {
	return s.Add(ctx, patient.ID, domain.SenderPatient, text)
}

func (s *MessageService) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
