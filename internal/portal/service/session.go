package service

import (
	"context"
	"strconv"

	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/store"
)

// Font size bounds, in px. The default sits in the middle of the readable
// range and the toggles step by one.
const (
	FontSizeMin     = 14
	FontSizeMax     = 24
	FontSizeDefault = 18
)

// SessionService keeps the presentation-support state that lives alongside
// the domain collections: who is signed in, which patient a caregiver is
// looking at, and the accessibility preferences. Values are plain string
// scalars under their own keys, read fail-soft like everything else.
type SessionService struct {
	Store *records.Store
}

func (s *SessionService) CurrentUserID(ctx context.Context) string {
	return s.get(ctx, store.KeyCurrentUser)
}

func (s *SessionService) SetCurrentUser(ctx context.Context, userID string) error {
	return s.Store.KV().Set(ctx, store.KeyCurrentUser, []byte(userID))
}

func (s *SessionService) CurrentPatientID(ctx context.Context) string {
	return s.get(ctx, store.KeyCurrentPatient)
}

func (s *SessionService) SetCurrentPatient(ctx context.Context, patientID string) error {
	return s.Store.KV().Set(ctx, store.KeyCurrentPatient, []byte(patientID))
}

func (s *SessionService) AdminLoggedIn(ctx context.Context) bool {
	return s.get(ctx, store.KeyAdminLogged) == "1"
}

func (s *SessionService) SetAdminLoggedIn(ctx context.Context) error {
	return s.Store.KV().Set(ctx, store.KeyAdminLogged, []byte("1"))
}

// Logout clears every session marker. Preferences survive a logout.
func (s *SessionService) Logout(ctx context.Context) error {
	for _, key := range []string{store.KeyCurrentUser, store.KeyCurrentPatient, store.KeyAdminLogged} {
		if err := s.Store.KV().Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// FontSize returns the saved font size, or the default when unset or
// unparsable.
func (s *SessionService) FontSize(ctx context.Context) int {
	n, err := strconv.Atoi(s.get(ctx, store.KeyFontSize))
	if err != nil {
		return FontSizeDefault
	}
	return clampFontSize(n)
}

// IncreaseFontSize bumps the saved size by one up to the maximum and returns
// the new value.
func (s *SessionService) IncreaseFontSize(ctx context.Context) (int, error) {
	return s.setFontSize(ctx, s.FontSize(ctx)+1)
}

// DecreaseFontSize lowers the saved size by one down to the minimum and
// returns the new value.
func (s *SessionService) DecreaseFontSize(ctx context.Context) (int, error) {
	return s.setFontSize(ctx, s.FontSize(ctx)-1)
}

func (s *SessionService) setFontSize(ctx context.Context, n int) (int, error) {
	n = clampFontSize(n)
	if err := s.Store.KV().Set(ctx, store.KeyFontSize, []byte(strconv.Itoa(n))); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *SessionService) DarkMode(ctx context.Context) bool {
	return s.get(ctx, store.KeyDarkMode) == "1"
}

func (s *SessionService) SetDarkMode(ctx context.Context, on bool) error {
	return s.setFlag(ctx, store.KeyDarkMode, on)
}

func (s *SessionService) HighContrast(ctx context.Context) bool {
	return s.get(ctx, store.KeyContrast) == "1"
}

func (s *SessionService) SetHighContrast(ctx context.Context, on bool) error {
	return s.setFlag(ctx, store.KeyContrast, on)
}

func (s *SessionService) setFlag(ctx context.Context, key string, on bool) error {
	if !on {
		return s.Store.KV().Delete(ctx, key)
	}
	return s.Store.KV().Set(ctx, key, []byte("1"))
}

// get reads a scalar, treating absence or any substrate failure as "".
func (s *SessionService) get(ctx context.Context, key string) string {
	v, err := s.Store.KV().Get(ctx, key)
	if err != nil {
		return ""
	}
	return string(v)
}

func clampFontSize(n int) int {
	if n < FontSizeMin {
		return FontSizeMin
	}
	if n > FontSizeMax {
		return FontSizeMax
	}
	return n
}
