package grove

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// debugLogger emits tree diagnostics when debug mode is on. Console format:
// these are developer warnings, not production telemetry.
var debugLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Str("lib", "grove").Logger()

// globalDebug gates the per-operation consistency checks. Package-level so
// node operations (which carry no scene pointer) can check it cheaply.
var globalDebug bool

// SetDebugMode enables or disables debug mode. When enabled, tree operations
// on disposed nodes panic, and excessive tree depth or child counts are
// logged to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxTreeDepth is the depth beyond which attach operations log a warning.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn().
			Str("node", n.Name).
			Int("depth", depth).
			Msgf("tree depth exceeds %d", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count beyond which attach operations log a
// warning.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn().
			Str("node", n.Name).
			Int("children", len(n.children)).
			Msgf("child count exceeds %d", debugMaxChildCount)
	}
}
