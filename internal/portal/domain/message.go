package domain

import "time"

// Sender identifies which side of a thread authored a message.
type Sender string

const (
	SenderCaregiver Sender = "caregiver"
	SenderPatient   Sender = "patient"
)

// Message is one entry in a subject's thread. Threads are append-only: there
// is no edit or per-message delete operation anywhere in the system.
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (m Message) Valid() bool {
	return m.Sender != "" && !m.Timestamp.IsZero()
}

// CaregiverMessage is the domain event published when a caregiver-initiated
// send appends a message to a patient's thread. Consumers (the ticket queue)
// subscribe to it; the messaging side knows nothing about who listens.
type CaregiverMessage struct {
	CaregiverID   string
	CaregiverName string
	PatientID     string
	PatientName   string
	Text          string
	SentAt        time.Time
}
