package version

// Set at build time, e.g.
// go build -ldflags "-X github.com/githbnaboulsi/shipcore-api/internal/version.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String renders the build metadata for logs and health checks.
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}
