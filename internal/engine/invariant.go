package engine

import "fmt"

// invariantf reports a broken internal invariant. Builds tagged "debug"
// panic; release builds carry on.
func invariantf(format string, args ...any) {
	if debugInvariants {
		panic(fmt.Sprintf("engine: invariant violated: "+format, args...))
	}
}
