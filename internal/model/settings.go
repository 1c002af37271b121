package model

// Profile identifies the business in invoices and exports.
type Profile struct {
	Name  string
	Email string
	GSTIN string
}

// Preferences holds display preferences.
type Preferences struct {
	Currency   string // ISO 4217 code, e.g. "USD"
	DateFormat string // Go layout string for display
}

// Settings is the per-books singleton settings record.
type Settings struct {
	Profile     Profile
	Preferences Preferences
}

// DefaultSettings returns settings for a freshly initialized books dir.
func DefaultSettings(businessName string) Settings {
	return Settings{
		Profile: Profile{Name: businessName},
		Preferences: Preferences{
			Currency:   "USD",
			DateFormat: "2006-01-02",
		},
	}
}
