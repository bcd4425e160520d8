package service

import (
	"context"

	"github.com/myhealth/portal/internal/portal/domain"
	"github.com/myhealth/portal/pkg/slogx"
)

// Seed installs the demo accounts the portal ships with. It only runs against
// an empty directory, so calling it on every startup is safe.
func (s *DirectoryService) Seed(ctx context.Context) error {
	if len(s.List(ctx)) > 0 {
		return nil
	}

	demo := []domain.User{
		{
			Role:     domain.RoleAdmin,
			FullName: "Site Admin",
			Username: "admin",
			Password: "admin123",
		},
		{
			Role:     domain.RoleCaregiver,
			FullName: "Caregiver One",
			Username: "caregiver",
			Password: "password123",
		},
		{
			Role:      domain.RolePatient,
			FullName:  "Patrick Tobe",
			Username:  "ptobe",
			Password:  "patient123",
			MRN:       "00298371",
			DOB:       "2005-07-22",
			Blood:     "O+",
			Allergies: "Penicillin",
			Meds: []string{
				"Loratadine 10 mg — Take 1 tablet daily · 30 tabs · 2 refills",
				"Metformin 500 mg — Take 1 tablet twice daily",
			},
		},
	}

	for _, u := range demo {
		if _, err := s.UpsertByUsername(ctx, u); err != nil {
			return err
		}
	}

	slogx.FromContext(ctx).Info("directory seeded with demo accounts", "count", len(demo))
	return nil
}
