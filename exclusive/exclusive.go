// Package exclusive enforces the single-owner usage contract of the
// container packages at runtime. A Guard remembers the goroutine that
// bound it and panics when a guarded structure is touched from any
// other goroutine. It performs no synchronization itself: it is a
// misuse detector, not a lock.
package exclusive

import (
	"fmt"

	"github.com/petermattis/goid"
)

// Guard is a goroutine-identity ownership check. The zero value is
// disabled and all checks pass.
type Guard struct {
	gid     int64
	enabled bool
}

// Bind enables the guard and makes the calling goroutine the owner.
func (g *Guard) Bind() {
	g.gid = goid.Get()
	g.enabled = true
}

// Transfer makes the calling goroutine the new owner. The caller is
// responsible for ensuring the previous owner has stopped touching the
// structure; the guard cannot order that handoff.
func (g *Guard) Transfer() {
	if g.enabled {
		g.gid = goid.Get()
	}
}

// Check panics if the calling goroutine is not the owner. No-op on a
// disabled guard.
func (g *Guard) Check() {
	if !g.enabled {
		return
	}
	if id := goid.Get(); id != g.gid {
		panic(fmt.Sprintf("exclusive: access from goroutine %d, structure owned by goroutine %d", id, g.gid))
	}
}
