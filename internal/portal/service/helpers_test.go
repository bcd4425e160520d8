package service

import (
	"testing"

	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/store/drivers/memory"
)

func newTestStore(t *testing.T) *records.Store {
	t.Helper()
	return records.NewStore(memory.NewStore())
}
