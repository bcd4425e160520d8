package domain

// Role is assigned when a user record is created and never changes afterwards.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCaregiver Role = "caregiver"
	RolePatient   Role = "patient"
)

// Known reports whether r is one of the three portal roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleCaregiver, RolePatient:
		return true
	}
	return false
}

// User is one directory record. The JSON field names are the persisted
// storage contract. Patient-only fields are omitted for admin and caregiver
// records. Each meds entry is a single pre-formatted line (name, dosing,
// quantity, refills joined into text); there is no structured medication
// sub-record.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`

	// Patient-only fields.
	MRN       string   `json:"mrn,omitempty"`
	DOB       string   `json:"dob,omitempty"`
	Blood     string   `json:"blood,omitempty"`
	Allergies string   `json:"allergies,omitempty"`
	Meds      []string `json:"meds,omitempty"`
}

// Valid reports whether a decoded record is structurally usable. Records
// missing an id or username can never be addressed and are skipped on read.
func (u User) Valid() bool {
	return u.ID != "" && u.Username != ""
}
