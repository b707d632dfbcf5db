package app

import "fmt"

// Build metadata, injected at link time via -ldflags:
//
//	go build -ldflags "-X github.com/agbru/somoscan/internal/app.Version=v1.2.3"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// BuildInfo returns a one-line description of the running build.
func BuildInfo() string {
	return fmt.Sprintf("somoscan %s (commit %s, built %s)", Version, Commit, Date)
}

// HasVersionFlag reports whether the argument list requests version output.
// It is checked before flag parsing so -version works regardless of other
// argument errors.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}
