// Package version reports build information for resourcekit binaries.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/resourcekit/version.Version=1.2.0" ./cmd/resourcectl
package version
