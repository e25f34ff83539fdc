// Package version reports build information.
package version

import (
	"fmt"

	goversion "github.com/caarlos0/go-version"
)

// Application details shown by `prismagen version`.
const (
	Application = "prismagen"
	Description = "Layered TypeScript scaffolding from Prisma schemas"
	Website     = "https://github.com/example/prismagen"
)

// These variables are set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	BuiltBy   = ""
	TreeState = ""
)

// String returns the one-line version used by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, shortCommit(), BuildTime)
}

// Info returns the full build information.
func Info() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(Application, Description, Website),
		func(i *goversion.Info) {
			if Version != "" {
				i.GitVersion = Version
			}
			if Commit != "unknown" {
				i.GitCommit = Commit
			}
			if BuildTime != "unknown" {
				i.BuildDate = BuildTime
			}
			if BuiltBy != "" {
				i.BuiltBy = BuiltBy
			}
			if TreeState != "" {
				i.GitTreeState = TreeState
			}
		},
	)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
