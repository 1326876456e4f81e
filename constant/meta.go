// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "animeverse"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent identifies the application to the catalog APIs.
	UserAgent = App + "/" + Version + " (+https://github.com/animeverse/animeverse)"
)

// Build metadata, injected through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
