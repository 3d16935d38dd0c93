package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("nip05 %s (commit=%s, date=%s)", Version, Commit, Date)
}

// UserAgent is sent with every identity endpoint request.
func UserAgent() string {
	return "nip05/" + Version
}
