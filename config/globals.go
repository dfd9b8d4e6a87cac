package config

// GlobalFlags contains common flags used across commands
type GlobalFlags struct {
	// Connection flags
	APIBaseURL string

	// Output flags
	Verbose bool
	NoColor bool
	JSON    bool
}

// Global is the shared instance of GlobalFlags
var Global = GlobalFlags{}
