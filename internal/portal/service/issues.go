package service

import (
	"context"
	"time"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/store"
)

// IssueService owns the per-subject issue threads. Same append-only shape as
// messages, but the reporter is a free-form label and nothing downstream
// reacts to an issue being filed.
type IssueService struct {
	Store *records.Store

	now func() time.Time
}

// List returns the subject's issues in chronological (append) order.
func (s *IssueService) List(ctx context.Context, subjectID string) []domain.Issue {
	return records.Read[domain.Issue](ctx, s.Store, store.IssuesKey(subjectID))
}

// RenderOrder returns the subject's issues most-recent-first without touching
// the persisted order.
func (s *IssueService) RenderOrder(ctx context.Context, subjectID string) []domain.Issue {
	return reversed(s.List(ctx, subjectID))
}

// Add appends one issue to the subject's thread and persists it.
func (s *IssueService) Add(ctx context.Context, subjectID, reporter, text string) error {
	issue := domain.Issue{
		Reporter:  reporter,
		Text:      text,
		Timestamp: s.timeNow(),
	}
	return records.Update(ctx, s.Store, store.IssuesKey(subjectID), func(issues []domain.Issue) []domain.Issue {
		return append(issues, issue)
	})
}

func (s *IssueService) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}
