package types

// NewDashboardRequest contains the configuration for creating a new Dashboard instance.
type NewDashboardRequest struct {
	// Required
	// Base URL of your Home Assistant instance, e.g. "http://192.168.86.59:8123".
	URL string

	// Required
	// Auth token generated in Home Assistant. Used
	// to connect to the Websocket API and the REST API.
	HAAuthToken string

	// Optional
	// Locale used for state display and number formatting.
	// Defaults to English with the language's own number format.
	Locale Locale

	// Optional
	// Translation overrides keyed by localization key, e.g.
	// "card.not_found" or "state.default.unavailable".
	Translations map[string]string
}
