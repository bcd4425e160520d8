package domain

import "time"

// Issue is one reported problem in a subject's issue thread. Reporter is a
// free-form label rather than a closed role; current call sites only ever
// write "caregiver", but the store imposes no such restriction. Append-only,
// same as messages.
type Issue struct {
	Reporter  string    `json:"reporter"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (i Issue) Valid() bool {
	return i.Reporter != "" && !i.Timestamp.IsZero()
}
