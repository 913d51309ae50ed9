package lingobridge

// Version information for lingobridge.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/lingobridge/lingobridge.Version=1.0.0"
const (
	// Name is the application name.
	Name = "lingobridge"

	// Description is a short description of the application.
	Description = "Translation relay for cross-language chat conversations"

	// Version is the semantic version of the application.
	// Override at build time with ldflags for releases.
	Version = "0.1.0"
)

// BuildInfo contains build-time information.
// These are typically set via ldflags during build.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
