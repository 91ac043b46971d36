package app

import "fmt"

// Build metadata, injected by the release build:
//
//	go build -ldflags "-X github.com/englearn/backend/internal/app.Version=1.2.0 ..."
//
// A plain `go build` leaves the dev defaults in place.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion renders the version line shown in startup logs and /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
