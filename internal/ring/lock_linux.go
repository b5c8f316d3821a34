//go:build linux

package ring

import "golang.org/x/sys/unix"

// LockMemory page-locks the ring's backing array so the real-time output
// callback never faults a page in (spec.md §4.6: "The ring's memory is
// page-locked at creation to avoid faulting in the real-time callback").
// Failure is non-fatal: the caller logs and continues with a best-effort
// (non-locked) ring, since mlock commonly requires a privilege the process
// may not have.
func (r *Ring) LockMemory() error {
	return unix.Mlock(r.buf)
}

// UnlockMemory releases a previous LockMemory.
func (r *Ring) UnlockMemory() error {
	return unix.Munlock(r.buf)
}
