package accel

import "golang.org/x/sys/cpu"

// HasAVX2 reports whether the current CPU exposes the 256-bit integer and
// floating-point instructions the OBVH's 8-wide slab test is modeled on.
// This module's OBVH implementation is written in portable Go rather than
// hand-authored assembly — see the design notes for why — so HasAVX2 is
// informational today: it gates nothing internally, but BuildOBVH callers
// that care about matching real SIMD throughput should consult it before
// preferring OBVH over BVH on a target machine.
func HasAVX2() bool {
	return cpu.X86.HasAVX2
}
