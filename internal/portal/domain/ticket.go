package domain

import "time"

// Ticket is one entry in the global administrative queue. Caregiver and
// patient ids are soft references into the user directory: deleting a user
// does not cascade here, and deleting a ticket never touches the message
// that spawned it.
type Ticket struct {
	ID                string    `json:"id"`
	FromCaregiverID   string    `json:"fromCaregiverId"`
	FromCaregiverName string    `json:"fromCaregiverName"`
	PatientID         string    `json:"patientId"`
	PatientName       string    `json:"patientName"`
	Text              string    `json:"text"`
	Timestamp         time.Time `json:"timestamp"`
	Resolved          bool      `json:"resolved"`
}

func (t Ticket) Valid() bool {
	return t.ID != ""
}
