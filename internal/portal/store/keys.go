package store

// Persisted key namespace. These names are the external storage contract:
// changing one orphans every record written under the old name, so treat
// them as frozen.
const (
	KeyUsers   = "mh_users_v1"
	KeyTickets = "mh_admin_tickets"

	// Per-subject thread collections derive their key from these prefixes
	// plus the subject's user id, so the number of addressable threads is
	// unbounded without a secondary index.
	MessagesPrefix = "mh_msgs_"
	IssuesPrefix   = "mh_issues_"

	// Session markers and accessibility preferences, stored as plain
	// string scalars.
	KeyCurrentUser    = "mh_current_user"
	KeyCurrentPatient = "mh_current_patient"
	KeyAdminLogged    = "mh_admin_logged"
	KeyFontSize       = "mh_font_size"
	KeyDarkMode       = "mh_dark"
	KeyContrast       = "mh_contrast"
)

// MessagesKey returns the key holding the message thread for one subject.
func MessagesKey(subjectID string) string { return MessagesPrefix + subjectID }

// IssuesKey returns the key holding the issue thread for one subject.
func IssuesKey(subjectID string) string { return IssuesPrefix + subjectID }
