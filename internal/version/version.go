package version

// Version is the release version, set at build time with
// -ldflags "-X github.com/doctorq/doctorq-sdk/internal/version.Version=...".
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from.
var GitCommit = ""

// Full returns the version with the commit, when known.
func Full() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
