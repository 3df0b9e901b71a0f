package settings

// Preferences is the system-wide configuration block. The JSON field names are
// part of the persisted slot contract.
type Preferences struct {
	DarkMode           bool   `json:"darkMode"`
	DefaultServiceMode string `json:"defaultServiceMode"`
	Currency           string `json:"currency"`
	TimeFormat         string `json:"timeFormat"`
	Language           string `json:"language"`
}

// DefaultPreferences are applied when the preferences slot is empty.
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode:           false,
		DefaultServiceMode: "takeaway",
		Currency:           "USD",
		TimeFormat:         "12h",
		Language:           "en",
	}
}

// UpdatePreferencesRequest carries a partial update. Nil fields keep their
// prior values.
type UpdatePreferencesRequest struct {
	DarkMode           *bool   `json:"darkMode"`
	DefaultServiceMode *string `json:"defaultServiceMode"`
	Currency           *string `json:"currency"`
	TimeFormat         *string `json:"timeFormat"`
	Language           *string `json:"language"`
}

// AddNoteRequest adds one quick note.
type AddNoteRequest struct {
	Text string `json:"text"`
}
