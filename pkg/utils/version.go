// Package utils provides bespoke, one off utils that don't make sense to be
// their own package
package utils

import "fmt"

// Set at link time by the release build.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string
	Sha       string
	Buildtime string
}

// CurrentBuild returns the link-time build metadata.
func CurrentBuild() BuildInfo {
	return BuildInfo{Version: Version, Sha: Sha, Buildtime: Buildtime}
}

// Short renders the version and the abbreviated commit, e.g. "v0.3.1 (1a2b3c4)".
func (b BuildInfo) Short() string {
	sha := b.Sha
	if len(sha) > 7 {
		sha = sha[:7]
	}
	return fmt.Sprintf("%s (%s)", b.Version, sha)
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Version: %s\nSha: %s\nBuilt at: %s\n", b.Version, b.Sha, b.Buildtime)
}
