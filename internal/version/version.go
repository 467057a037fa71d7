// Package version exposes build metadata set via -ldflags.
package version

// Version and Commit are overridden at build time:
//
//	go build -ldflags "-X github.com/koda-lang/koda/internal/version.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = ""
)

// Label is the value user programs see as _VERSION.
func Label() string {
	return "Koda " + Version
}
