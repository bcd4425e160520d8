package service

import (
	"context"
	"time"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/store"
	"github.com/myhealth/portal/pkg/idx"
)

// TicketService owns the global administrative ticket queue. Tickets start
// open, can be toggled between open and resolved in either direction, and can
// be deleted regardless of resolution state. Deleting a ticket never touches
// the message that raised it.
type TicketService struct {
	Store *records.Store

	now func() time.Time
}

// List returns the queue in append order.
func (s *TicketService) List(ctx context.Context) []domain.Ticket {
	return records.Read[domain.Ticket](ctx, s.Store, store.KeyTickets)
}

// RenderOrder returns the queue most-recent-first for display.
func (s *TicketService) RenderOrder(ctx context.Context) []domain.Ticket {
	return reversed(s.List(ctx))
}

// Add appends a ticket built from the caller-supplied reference fields. The
// id, timestamp and the initial open state are synthesized here and caller
// values for them are ignored.
func (s *TicketService) Add(ctx context.Context, data domain.Ticket) error {
	data.ID = idx.New(idx.KindTicket).String()
	data.Timestamp = s.timeNow()
	data.Resolved = false

	return records.Update(ctx, s.Store, store.KeyTickets, func(tickets []domain.Ticket) []domain.Ticket {
		return append(tickets, data)
	})
}

// ToggleResolved flips the resolved flag of the matching ticket in whichever
// direction it currently points. Absent ids are a silent no-op.
func (s *TicketService) ToggleResolved(ctx context.Context, id string) error {
	return records.Update(ctx, s.Store, store.KeyTickets, func(tickets []domain.Ticket) []domain.Ticket {
		for i := range tickets {
			if tickets[i].ID == id {
				tickets[i].Resolved = !tickets[i].Resolved
			}
		}
		return tickets
	})
}

// Delete removes the matching ticket from the queue. Absent ids are a silent
// no-op.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	return records.Update(ctx, s.Store, store.KeyTickets, func(tickets []domain.Ticket) []domain.Ticket {
		out := tickets[:0]
		for _, t := range tickets {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	})
}

// HandleCaregiverMessage turns one caregiver-message event into exactly one
// open ticket referencing the sending caregiver, the patient and the message
// text. This is the subscribing end of the message-to-ticket fan-out.
func (s *TicketService) HandleCaregiverMessage(ctx context.Context, ev domain.CaregiverMessage) error {
	name := ev.CaregiverName
	if name == "" {
		name = "Caregiver"
	}

	return s.Add(ctx, domain.Ticket{
		FromCaregiverID:   ev.CaregiverID,
		FromCaregiverName: name,
		PatientID:         ev.PatientID,
		PatientName:       ev.PatientName,
		Text:              ev.Text,
	})
}

func (s *TicketService) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}
