package testkit

import (
	"sync"
	"testing"
)

// serialMu guards tests that rewire package-level seams
var serialMu sync.Mutex

// Serial holds a global lock for the whole test so seam mutations
// cannot interleave across packages
func Serial(t *testing.T) {
	t.Helper()
	serialMu.Lock()
	t.Cleanup(serialMu.Unlock)
}

// Swap replaces a package-level variable until the test ends
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	saved := *target
	*target = replacement
	t.Cleanup(func() { *target = saved })
}
