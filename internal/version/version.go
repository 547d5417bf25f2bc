// Package version holds build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/mj1618/a11y-bridge/internal/version.Version=v0.3.0"
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
