// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"

	"github.com/Otixa/luajs"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String describes the build and the default engine it embeds.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, engine: %s)", Version, Commit, BuildDate, luajs.Version())
}
