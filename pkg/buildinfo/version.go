// Package buildinfo exposes version metadata injected at build time.
package buildinfo

// Build metadata, overridden via ldflags:
//
//	go build -ldflags "-X github.com/utrgv-dp/roadmap/pkg/buildinfo.Version=v1.2.3"
var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
