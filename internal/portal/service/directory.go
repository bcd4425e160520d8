package service

import (
	"context"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/internal/portal/records"
	"github.com/myhealth/portal/internal/portal/store"
	"github.com/myhealth/portal/pkg/idx"
)

// DirectoryService owns the single user collection: identity, uniqueness and
// role-scoped queries. Validation of required fields (non-empty username and
// password, a known role) is the caller's responsibility; the directory does
// not re-check and will persist whatever it is handed.
type DirectoryService struct {
	Store *records.Store
}

// List returns every user in insertion order.
func (s *DirectoryService) List(ctx context.Context) []domain.User {
	return records.Read[domain.User](ctx, s.Store, store.KeyUsers)
}

// FindByID returns the user with the given id, or store.ErrNotFound.
func (s *DirectoryService) FindByID(ctx context.Context, id string) (domain.User, error) {
	return s.find(ctx, func(u domain.User) bool { return u.ID == id })
}

// FindByField returns the first user whose named field exactly matches value.
// Field names are the persisted JSON names. This is a point lookup, not a
// query engine: unknown fields simply never match.
func (s *DirectoryService) FindByField(ctx context.Context, field, value string) (domain.User, error) {
	return s.find(ctx, func(u domain.User) bool {
		v, ok := fieldValue(u, field)
		return ok && v == value
	})
}

// FindByRole returns all users holding the given role, in insertion order.
func (s *DirectoryService) FindByRole(ctx context.Context, role domain.Role) []domain.User {
	users := s.List(ctx)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// Authenticate performs the role-scoped login check: exact username and
// password match within the role. A miss is store.ErrNotFound; the
// presentation layer owns any user-facing failure message.
func (s *DirectoryService) Authenticate(ctx context.Context, role domain.Role, username, password string) (domain.User, error) {
	return s.find(ctx, func(u domain.User) bool {
		return u.Role == role && u.Username == username && u.Password == password
	})
}

// UpsertByUsername looks up an existing record by data.Username. If found, it
// merges data's set fields into the record in place, preserving the id, the
// role, and any field data leaves empty. Otherwise it creates a fresh record
// with a new id and appends it. This is the only path that deduplicates by
// username.
func (s *DirectoryService) UpsertByUsername(ctx context.Context, data domain.User) (domain.User, error) {
	var result domain.User

	err := records.Update(ctx, s.Store, store.KeyUsers, func(users []domain.User) []domain.User {
		for i := range users {
			if users[i].Username == data.Username {
				mergeUser(&users[i], data)
				result = users[i]
				return users
			}
		}

		result = data
		result.ID = idx.New(idx.KindUser).String()
		return append(users, result)
	})
	if err != nil {
		return domain.User{}, err
	}
	return result, nil
}

// Update replaces the record whose id matches user.ID. If no record matches,
// nothing happens; Update never creates. Unlike UpsertByUsername this path
// performs no username-uniqueness check, so a caller can introduce a
// duplicate username here. That asymmetry is long-standing behavior that
// administrative tooling may rely on, so both entry points keep their own
// guarantees.
func (s *DirectoryService) Update(ctx context.Context, user domain.User) error {
	return records.Update(ctx, s.Store, store.KeyUsers, func(users []domain.User) []domain.User {
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = user
			}
		}
		return users
	})
}

// Delete removes the user with the given id. Deleting is a soft operation
// with respect to threads and tickets: records referencing the id stay put.
// Absent ids are a silent no-op.
func (s *DirectoryService) Delete(ctx context.Context, id string) error {
	return records.Update(ctx, s.Store, store.KeyUsers, func(users []domain.User) []domain.User {
		out := users[:0]
		for _, u := range users {
			if u.ID != id {
				out = append(out, u)
			}
		}
		return out
	})
}

func (s *DirectoryService) find(ctx context.Context, match func(domain.User) bool) (domain.User, error) {
	for _, u := range s.List(ctx) {
		if match(u) {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

// mergeUser copies data's set fields onto dst. ID and Role are never merged:
// the id is assigned once at creation and the role is fixed at creation.
func mergeUser(dst *domain.User, data domain.User) {
	if data.FullName != "" {
		dst.FullName = data.FullName
	}
	if data.Username != "" {
		dst.Username = data.Username
	}
	if data.Password != "" {
		dst.Password = data.Password
	}
	if data.MRN != "" {
		dst.MRN = data.MRN
	}
	if data.DOB != "" {
		dst.DOB = data.DOB
	}
	if data.Blood != "" {
		dst.Blood = data.Blood
	}
	if data.Allergies != "" {
		dst.Allergies = data.Allergies
	}
	if data.Meds != nil {
		dst.Meds = data.Meds
	}
}

func fieldValue(u domain.User, field string) (string, bool) {
	switch field {
	case "id":
		return u.ID, true
	case "role":
		return string(u.Role), true
	case "fullName":
		return u.FullName, true
	case "username":
		return u.Username, true
	case "password":
		return u.Password, true
	case "mrn":
		return u.MRN, true
	case "dob":
		return u.DOB, true
	case "blood":
		return u.Blood, true
	case "allergies":
		return u.Allergies, true
	}
	return "", false
}
