package version

var (
	Version   = "0.1.0"
	GitCommit = "dev"
	BuildDate = "20261018000000"
)

// String returns a human-readable version string.
func String() string {
	return "whodat " + Version + " (" + GitCommit + ", " + BuildDate + ")"
}
